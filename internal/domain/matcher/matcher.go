// Package matcher implements the reconciliation engine that pairs bank
// transactions with invoice and receipt attachments.
//
// Matching is layered:
//   - An exact payment reference match (after normalization) is
//     authoritative and bypasses all scoring.
//   - Otherwise candidates must match on amount, then rank by a composite
//     score of name similarity and date proximity.
//   - Acceptance policies reject ambiguous candidate sets instead of
//     guessing, so an amount collision alone never produces a match.
//
// The engine is a pure function over the two lists: it holds no state
// between calls and never mutates its inputs.
//
// Example usage:
//
//	m := matcher.NewMatcher(matcher.DefaultConfig())
//	att := m.FindAttachment(tx, attachments)
//	if att != nil {
//		// Found a match!
//	}
package matcher

import (
	"math"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// scoreEpsilon guards composite score comparisons against floating point
// drift.
const scoreEpsilon = 1e-6

// Matcher pairs transactions with attachments.
type Matcher struct {
	config    Config
	stopWords map[string]struct{}
}

// NewMatcher creates a new matcher with the given config.
func NewMatcher(config Config) *Matcher {
	stopWords := make(map[string]struct{}, len(config.StopWords))
	for _, w := range config.StopWords {
		stopWords[w] = struct{}{}
	}
	return &Matcher{
		config:    config,
		stopWords: stopWords,
	}
}

// FindAttachment finds the best matching attachment for a transaction.
// Returns nil if no confident match exists.
//
// Order of evaluation:
//  1. Exact reference match, scanning attachments in input order.
//  2. Amount filter, then composite scoring by date proximity and name
//     similarity. Requires a parseable transaction date.
//  3. Acceptance: with a contact name, similarity must reach the name
//     threshold; without one, only an unambiguous same-day candidate is
//     accepted.
func (m *Matcher) FindAttachment(tx *records.Transaction, attachments []*records.Attachment) *records.Attachment {
	if ref := NormalizeReference(tx.Reference); ref != "" {
		for _, att := range attachments {
			if attRef := NormalizeReference(att.Data.Reference); attRef != "" && attRef == ref {
				return att
			}
		}
	}

	// Every scoring phase needs the transaction date.
	txDate, ok := tx.ParsedDate()
	if !ok {
		return nil
	}

	var candidates []attachmentCandidate
	for _, att := range attachments {
		if !m.isAmountMatch(tx.Amount, att.Data.TotalAmount) {
			continue
		}
		dist := dateDistanceDays(txDate, att)
		nameSim := m.bestNameSimilarity(tx.Contact, att)
		candidates = append(candidates, attachmentCandidate{
			candidate: candidate{
				id:           att.ID,
				score:        1 + nameSim + m.dateBonus(dist),
				dateDistance: dist,
			},
			attachment: att,
			nameSim:    nameSim,
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	if tx.Contact != "" {
		// A below-threshold name match on top of an amount match is an
		// unreliable coincidence; reject it rather than risk pairing
		// unrelated records that happen to share an amount.
		var filtered []attachmentCandidate
		for _, c := range candidates {
			if c.nameSim >= m.config.NameThreshold {
				filtered = append(filtered, c)
			}
		}
		if len(filtered) == 0 {
			return nil
		}
		sortAttachmentCandidates(filtered)
		return filtered[0].attachment
	}

	// No contact: name evidence is absent, so require a same-day match.
	var exactDate []attachmentCandidate
	for _, c := range candidates {
		if c.dateDistance == 0 {
			exactDate = append(exactDate, c)
		}
	}
	if len(exactDate) == 1 {
		return exactDate[0].attachment
	}
	if len(exactDate) > 1 {
		sortAttachmentCandidates(exactDate)
		// Several same-day candidates: accept the top one only when exactly
		// one of them sits at the pure amount+date score (1 + 0 + 1).
		pureScore := 0
		for _, c := range exactDate {
			if math.Abs(c.score-2.0) < scoreEpsilon {
				pureScore++
			}
		}
		if pureScore == 1 {
			return exactDate[0].attachment
		}
	}
	return nil
}

// FindTransaction finds the best matching transaction for an attachment.
// Returns nil if no confident match exists.
//
// Symmetric counterpart of FindAttachment with two deliberate asymmetries:
// transactions without a parseable date are skipped as candidates rather
// than aborting the search, and named candidates filter on the composite
// score threshold instead of raw name similarity.
func (m *Matcher) FindTransaction(att *records.Attachment, transactions []*records.Transaction) *records.Transaction {
	if ref := NormalizeReference(att.Data.Reference); ref != "" {
		for _, tx := range transactions {
			if txRef := NormalizeReference(tx.Reference); txRef != "" && txRef == ref {
				return tx
			}
		}
	}

	var candidates []transactionCandidate
	for _, tx := range transactions {
		if !m.isAmountMatch(tx.Amount, att.Data.TotalAmount) {
			continue
		}
		txDate, ok := tx.ParsedDate()
		if !ok {
			continue // undated transactions cannot be scored
		}
		dist := dateDistanceDays(txDate, att)
		nameSim := 0.0
		if tx.Contact != "" {
			nameSim = m.bestNameSimilarity(tx.Contact, att)
		}
		candidates = append(candidates, transactionCandidate{
			candidate: candidate{
				id:           tx.ID,
				score:        1 + nameSim + m.dateBonus(dist),
				dateDistance: dist,
			},
			transaction: tx,
		})
	}
	if len(candidates) == 0 {
		return nil
	}

	if len(m.counterpartyNames(att)) > 0 {
		var withContact []transactionCandidate
		for _, c := range candidates {
			if c.transaction.Contact != "" {
				withContact = append(withContact, c)
			}
		}
		if len(withContact) > 0 {
			var filtered []transactionCandidate
			for _, c := range withContact {
				if c.score >= m.config.ScoreThreshold {
					filtered = append(filtered, c)
				}
			}
			if len(filtered) > 0 {
				sortTransactionCandidates(filtered)
				return filtered[0].transaction
			}
			// Names exist but none matched confidently; fall through to
			// the strict same-day rule.
		}
	}

	var exactDate []transactionCandidate
	for _, c := range candidates {
		if c.dateDistance == 0 {
			exactDate = append(exactDate, c)
		}
	}
	if len(exactDate) == 1 {
		return exactDate[0].transaction
	}
	return nil
}
