package matcher

import (
	"math"
	"time"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// noDateDistance is far outside any realistic date window, so attachments
// without a parseable date never earn a date bonus and never count as an
// exact-date match.
const noDateDistance = 10000

// nameSimilarity returns the Jaccard index of the two tokenized names:
// |intersection| / |union|, in [0,1]. Either side tokenizing to the empty
// set yields 0.
func (m *Matcher) nameSimilarity(a, b string) float64 {
	ta, tb := m.tokenize(a), m.tokenize(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for tok := range ta {
		if _, ok := tb[tok]; ok {
			inter++
		}
	}
	if inter == 0 {
		return 0
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

// bestNameSimilarity scores a transaction contact against every counterparty
// name on the attachment and keeps the best.
func (m *Matcher) bestNameSimilarity(contact string, att *records.Attachment) float64 {
	if contact == "" {
		return 0
	}
	best := 0.0
	for _, name := range m.counterpartyNames(att) {
		if sim := m.nameSimilarity(contact, name); sim > best {
			best = sim
		}
	}
	return best
}

// dateDistanceDays returns the minimum whole-day distance between refDate
// and the attachment's due/invoicing/receiving dates, or noDateDistance when
// none of them parse.
func dateDistanceDays(refDate time.Time, att *records.Attachment) int {
	best := noDateDistance
	for _, d := range att.Dates() {
		days := int(math.Abs(d.Sub(refDate).Hours()) / 24)
		if days < best {
			best = days
		}
	}
	return best
}

// dateBonus rewards temporal proximity with a linear decay inside the
// configured window: 1.0 on the exact day, 0 beyond the window.
func (m *Matcher) dateBonus(distance int) float64 {
	if distance > m.config.DateWindowDays {
		return 0
	}
	return 1 - float64(distance)/float64(m.config.DateWindowDays)
}

// isAmountMatch compares a signed bank amount against an invoice total.
// Bank debits are negative while invoices store positive totals, so both
// the raw and the absolute amount are checked, each within epsilon.
func (m *Matcher) isAmountMatch(txAmount, attTotal float64) bool {
	return math.Abs(txAmount-attTotal) < m.config.AmountEpsilon ||
		math.Abs(math.Abs(txAmount)-attTotal) < m.config.AmountEpsilon
}
