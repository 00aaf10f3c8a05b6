package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// Helper to create a test transaction
func makeTransaction(id int64, amount float64, date, reference, contact string) *records.Transaction {
	return &records.Transaction{
		ID:        id,
		Amount:    amount,
		Date:      date,
		Reference: reference,
		Contact:   contact,
	}
}

// Helper to create a test attachment
func makeAttachment(id int64, data records.AttachmentData) *records.Attachment {
	return &records.Attachment{ID: id, Data: data}
}

func TestFindAttachment_ReferenceMatchIsAuthoritative(t *testing.T) {
	// Arrange - amount, date and name all disagree; only the reference lines up
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2001, -120.00, "2024-01-05", "00123", "Unrelated Name")
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{
			TotalAmount: 999.99,
			Reference:   "123 ",
			DueDate:     "2021-06-01",
			Supplier:    "Someone Else Entirely",
		}),
	}

	// Act
	att := m.FindAttachment(tx, attachments)

	// Assert
	require.NotNil(t, att)
	assert.Equal(t, int64(3001), att.ID)
}

func TestFindAttachment_ReferenceScanReturnsFirstInInputOrder(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2001, -120.00, "2024-01-05", "500", "")
	attachments := []*records.Attachment{
		makeAttachment(3009, records.AttachmentData{TotalAmount: 120.00, Reference: "0500"}),
		makeAttachment(3002, records.AttachmentData{TotalAmount: 120.00, Reference: "500"}),
	}

	att := m.FindAttachment(tx, attachments)

	require.NotNil(t, att)
	assert.Equal(t, int64(3009), att.ID)
}

func TestFindAttachment_NoDate_NoReference_ReturnsNil(t *testing.T) {
	// Without a reference hit, a transaction with no usable date cannot be scored
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2001, -120.00, "", "", "Nordic Timber")
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{
			TotalAmount: 120.00,
			Supplier:    "Nordic Timber Oy",
			DueDate:     "2024-01-05",
		}),
	}

	assert.Nil(t, m.FindAttachment(tx, attachments))
}

func TestFindAttachment_UnparsableDateTreatedAsMissing(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2001, -120.00, "05.01.2024", "", "Nordic Timber")
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{
			TotalAmount: 120.00,
			Supplier:    "Nordic Timber Oy",
			DueDate:     "2024-01-05",
		}),
	}

	assert.Nil(t, m.FindAttachment(tx, attachments))
}

func TestFindAttachment_AmountNameDateCombo(t *testing.T) {
	// Arrange
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2007, -840.50, "2024-02-10", "", "Nordic Timber")
	attachments := []*records.Attachment{
		makeAttachment(3005, records.AttachmentData{
			TotalAmount: 840.50,
			Supplier:    "Helsinki Catering Oy",
			DueDate:     "2024-02-12",
		}),
		makeAttachment(3006, records.AttachmentData{
			TotalAmount: 840.50,
			Supplier:    "Nordic Timber Oy",
			DueDate:     "2024-02-12",
		}),
	}

	// Act
	att := m.FindAttachment(tx, attachments)

	// Assert - the name-similar attachment wins over the equal-amount one
	require.NotNil(t, att)
	assert.Equal(t, int64(3006), att.ID)
}

func TestFindAttachment_NameThresholdBoundary(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	// {alpha, beta} vs {alpha, beta, gamma, delta}: similarity exactly 0.5
	atThreshold := makeAttachment(3001, records.AttachmentData{
		TotalAmount: 100.00,
		Supplier:    "Alpha Beta Gamma Delta",
		DueDate:     "2024-01-10",
	})
	// {alpha} vs {alpha, beta, gamma}: similarity 1/3
	belowThreshold := makeAttachment(3002, records.AttachmentData{
		TotalAmount: 100.00,
		Supplier:    "Alpha Beta Gamma",
		DueDate:     "2024-01-10",
	})

	txAt := makeTransaction(2001, -100.00, "2024-01-10", "", "Alpha Beta")
	txBelow := makeTransaction(2002, -100.00, "2024-01-10", "", "Alpha")

	// Exactly 0.5 is accepted
	att := m.FindAttachment(txAt, []*records.Attachment{atThreshold})
	require.NotNil(t, att)
	assert.Equal(t, int64(3001), att.ID)

	// Below 0.5 is rejected even though amount and date match
	assert.Nil(t, m.FindAttachment(txBelow, []*records.Attachment{belowThreshold}))
}

func TestFindAttachment_NoContact_UniqueSameDayMatch(t *testing.T) {
	// Outgoing payment with no contact: unique exact-date candidate is accepted
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2004, -230.00, "2024-01-15", "", "")
	attachments := []*records.Attachment{
		makeAttachment(3003, records.AttachmentData{TotalAmount: 230.00, DueDate: "2024-01-20"}),
		makeAttachment(3004, records.AttachmentData{TotalAmount: 230.00, DueDate: "2024-01-15"}),
	}

	att := m.FindAttachment(tx, attachments)

	require.NotNil(t, att)
	assert.Equal(t, int64(3004), att.ID)
}

func TestFindAttachment_NoContact_AmbiguousSameDay_ReturnsNil(t *testing.T) {
	// Two indistinguishable same-day amount matches must be rejected
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2004, -230.00, "2024-01-10", "", "")
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{TotalAmount: 230.00, DueDate: "2024-01-10"}),
		makeAttachment(3002, records.AttachmentData{TotalAmount: 230.00, DueDate: "2024-01-10"}),
	}

	assert.Nil(t, m.FindAttachment(tx, attachments))
}

func TestFindAttachment_NoContact_NearbyButNotSameDay_ReturnsNil(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2004, -230.00, "2024-01-10", "", "")
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{TotalAmount: 230.00, DueDate: "2024-01-11"}),
	}

	assert.Nil(t, m.FindAttachment(tx, attachments))
}

func TestFindAttachment_NoFalsePositiveOnWeakName(t *testing.T) {
	// A typo-heavy contact shares too few tokens with the supplier; the
	// amount collision alone must not produce a match
	m := NewMatcher(DefaultConfig())
	txGood := makeTransaction(2005, -75.00, "2024-03-01", "", "Turku Paper Mill")
	txBad := makeTransaction(2006, -75.00, "2024-03-01", "", "Turkku Papper Co")
	attachments := []*records.Attachment{
		makeAttachment(3005, records.AttachmentData{
			TotalAmount: 75.00,
			Supplier:    "Turku Paper Mill Oy",
			DueDate:     "2024-03-01",
		}),
	}

	attGood := m.FindAttachment(txGood, attachments)
	require.NotNil(t, attGood)
	assert.Equal(t, int64(3005), attGood.ID)

	assert.Nil(t, m.FindAttachment(txBad, attachments))
}

func TestFindAttachment_EmptyAttachmentList(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2001, -100.00, "2024-01-10", "555", "Nordic Timber")

	assert.Nil(t, m.FindAttachment(tx, nil))
}

func TestFindTransaction_ReferenceMatch(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3002, records.AttachmentData{
		TotalAmount: 310.00,
		Reference:   "00777",
	})
	transactions := []*records.Transaction{
		makeTransaction(2001, -310.00, "2024-01-10", "", ""),
		makeTransaction(2002, 310.00, "2024-01-12", "777", ""),
	}

	tx := m.FindTransaction(att, transactions)

	require.NotNil(t, tx)
	assert.Equal(t, int64(2002), tx.ID)
}

func TestFindTransaction_SkipsUndatedCandidates(t *testing.T) {
	// An undated transaction drops out of the candidate set without
	// aborting the search for the rest
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3001, records.AttachmentData{
		TotalAmount: 450.00,
		Supplier:    "Nordic Timber Oy",
		DueDate:     "2024-01-10",
	})
	transactions := []*records.Transaction{
		makeTransaction(2001, -450.00, "", "", "Nordic Timber"),
		makeTransaction(2002, -450.00, "2024-01-10", "", "Nordic Timber"),
	}

	tx := m.FindTransaction(att, transactions)

	require.NotNil(t, tx)
	assert.Equal(t, int64(2002), tx.ID)
}

func TestFindTransaction_ScoreThreshold(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3001, records.AttachmentData{
		TotalAmount: 450.00,
		Supplier:    "Alpha Beta Gamma Delta",
		DueDate:     "2024-01-10",
	})

	// Similarity 0.5 plus a full date bonus clears the 1.5 composite bar
	confident := []*records.Transaction{
		makeTransaction(2001, -450.00, "2024-01-10", "", "Alpha Beta"),
	}
	tx := m.FindTransaction(att, confident)
	require.NotNil(t, tx)
	assert.Equal(t, int64(2001), tx.ID)

	// Exactly 1.5: similarity 0.5 with the date bonus decayed to zero
	boundary := []*records.Transaction{
		makeTransaction(2002, -450.00, "2024-02-24", "", "Alpha Beta"), // 45 days out
	}
	tx = m.FindTransaction(att, boundary)
	require.NotNil(t, tx)
	assert.Equal(t, int64(2002), tx.ID)

	// Similarity 0.25 with no date bonus stays below 1.5, and the same-day
	// fallback cannot rescue a transaction 35 days out
	weakNameOffDate := []*records.Transaction{
		makeTransaction(2003, -450.00, "2024-02-14", "", "Alpha"),
	}
	assert.Nil(t, m.FindTransaction(att, weakNameOffDate))
}

func TestFindTransaction_NoNames_SameDayUniqueness(t *testing.T) {
	// Receipt without counterparty names: only a unique same-day amount
	// match is accepted
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3008, records.AttachmentData{
		TotalAmount:   62.40,
		ReceivingDate: "2024-04-02",
	})

	unique := []*records.Transaction{
		makeTransaction(2001, -62.40, "2024-04-02", "", ""),
		makeTransaction(2002, -62.40, "2024-04-05", "", ""),
	}
	tx := m.FindTransaction(att, unique)
	require.NotNil(t, tx)
	assert.Equal(t, int64(2001), tx.ID)

	ambiguous := []*records.Transaction{
		makeTransaction(2001, -62.40, "2024-04-02", "", ""),
		makeTransaction(2003, -62.40, "2024-04-02", "", ""),
	}
	assert.Nil(t, m.FindTransaction(att, ambiguous))
}

func TestFindTransaction_PicksBestRankedAmongConfident(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3001, records.AttachmentData{
		TotalAmount: 450.00,
		Supplier:    "Nordic Timber Oy",
		DueDate:     "2024-01-10",
	})
	transactions := []*records.Transaction{
		makeTransaction(2001, -450.00, "2024-01-20", "", "Nordic Timber"), // 10 days out
		makeTransaction(2002, -450.00, "2024-01-11", "", "Nordic Timber"), // 1 day out
	}

	tx := m.FindTransaction(att, transactions)

	require.NotNil(t, tx)
	assert.Equal(t, int64(2002), tx.ID)
}

func TestFindTransaction_TieBrokenBySmallerID(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3001, records.AttachmentData{
		TotalAmount: 450.00,
		Supplier:    "Nordic Timber Oy",
		DueDate:     "2024-01-10",
	})
	// Identical score and date distance; only the id differs
	transactions := []*records.Transaction{
		makeTransaction(2009, -450.00, "2024-01-11", "", "Nordic Timber"),
		makeTransaction(2002, -450.00, "2024-01-11", "", "Nordic Timber"),
	}

	tx := m.FindTransaction(att, transactions)

	require.NotNil(t, tx)
	assert.Equal(t, int64(2002), tx.ID)
}

func TestFindTransaction_EmptyTransactionList(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	att := makeAttachment(3001, records.AttachmentData{TotalAmount: 100.00, Reference: "42"})

	assert.Nil(t, m.FindTransaction(att, nil))
}

func TestMatch_SymmetryForConfidentPair(t *testing.T) {
	// A pair with amount, same-day date and a strong name should resolve in
	// both directions
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2003, -980.00, "2024-05-06", "", "Oulu Steel")
	att := makeAttachment(3003, records.AttachmentData{
		TotalAmount: 980.00,
		Supplier:    "Oulu Steel Oy",
		DueDate:     "2024-05-06",
	})
	transactions := []*records.Transaction{
		makeTransaction(2001, -45.00, "2024-05-01", "", "Helsinki Catering"),
		tx,
	}
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{TotalAmount: 45.00, Supplier: "Helsinki Catering Oy", DueDate: "2024-05-01"}),
		att,
	}

	foundAtt := m.FindAttachment(tx, attachments)
	require.NotNil(t, foundAtt)
	assert.Equal(t, att.ID, foundAtt.ID)

	foundTx := m.FindTransaction(att, transactions)
	require.NotNil(t, foundTx)
	assert.Equal(t, tx.ID, foundTx.ID)
}

func TestMatch_RepeatedCallsAreIdentical(t *testing.T) {
	m := NewMatcher(DefaultConfig())
	tx := makeTransaction(2001, -100.00, "2024-01-10", "", "Nordic Timber")
	attachments := []*records.Attachment{
		makeAttachment(3001, records.AttachmentData{TotalAmount: 100.00, Supplier: "Nordic Timber Oy", DueDate: "2024-01-10"}),
		makeAttachment(3002, records.AttachmentData{TotalAmount: 100.00, Supplier: "Nordic Timber Oy", DueDate: "2024-01-11"}),
	}

	first := m.FindAttachment(tx, attachments)
	require.NotNil(t, first)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first.ID, m.FindAttachment(tx, attachments).ID)
	}
}
