package matcher

import (
	"strings"
	"unicode"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// NormalizeReference canonicalizes a payment reference for exact-match
// comparison: whitespace is stripped and the rest uppercased. Purely numeric
// references additionally lose their leading zeros ("00123" -> "123"), with
// an all-zero reference collapsing to "0". Alphanumeric references such as
// "RF" creditor references keep their digits untouched.
//
// The empty string means "no usable reference". Two references are equal
// iff their normalized forms are identical.
func NormalizeReference(ref string) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, ref)
	cleaned = strings.ToUpper(cleaned)

	if cleaned != "" && isDigits(cleaned) {
		cleaned = strings.TrimLeft(cleaned, "0")
		if cleaned == "" {
			cleaned = "0"
		}
	}
	return cleaned
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// tokenize splits a name into lowercase alphanumeric tokens and drops the
// configured stop words. Empty input yields an empty set.
func (m *Matcher) tokenize(name string) map[string]struct{} {
	tokens := make(map[string]struct{})
	if name == "" {
		return tokens
	}
	for _, tok := range strings.FieldsFunc(name, isTokenSeparator) {
		tok = strings.ToLower(tok)
		if _, stop := m.stopWords[tok]; !stop {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}

func isTokenSeparator(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	}
	return true
}

// counterpartyNames collects the attachment's supplier, issuer and recipient
// names in that order, skipping the reconciling entity's own name.
func (m *Matcher) counterpartyNames(att *records.Attachment) []string {
	var names []string
	for _, name := range []string{att.Data.Supplier, att.Data.Issuer, att.Data.Recipient} {
		if name != "" && !strings.EqualFold(name, m.config.OwnCompanyName) {
			names = append(names, name)
		}
	}
	return names
}
