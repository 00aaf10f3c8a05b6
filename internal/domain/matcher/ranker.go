package matcher

import (
	"sort"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// candidate holds the ranking triple shared by both match directions.
// Composite score = 1 (amount matched) + name similarity + date bonus,
// so score is always in [1,3].
type candidate struct {
	id           int64
	score        float64
	dateDistance int
}

// rankedBefore reports whether c should be selected ahead of other:
// higher score first, ties broken by smaller date distance, remaining
// ties by smaller record id. Record ids are unique per list, so the
// ordering is total and reproducible.
func (c candidate) rankedBefore(other candidate) bool {
	if c.score != other.score {
		return c.score > other.score
	}
	if c.dateDistance != other.dateDistance {
		return c.dateDistance < other.dateDistance
	}
	return c.id < other.id
}

type attachmentCandidate struct {
	candidate
	attachment *records.Attachment
	nameSim    float64
}

type transactionCandidate struct {
	candidate
	transaction *records.Transaction
}

func sortAttachmentCandidates(cands []attachmentCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].rankedBefore(cands[j].candidate)
	})
}

func sortTransactionCandidates(cands []transactionCandidate) {
	sort.Slice(cands, func(i, j int) bool {
		return cands[i].rankedBefore(cands[j].candidate)
	})
}
