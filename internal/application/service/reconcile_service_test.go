package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerlink/reconcile-backend/internal/domain/matcher"
	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

func newTestService(t *testing.T) (*ReconcileService, *storage.MockRepository) {
	t.Helper()
	repo := storage.NewMockRepository()
	svc := NewReconcileService(repo, matcher.NewMatcher(matcher.DefaultConfig()), nil)
	return svc, repo
}

func TestFindAttachmentForTransaction(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, repo.SaveTransactions("b1", []*records.Transaction{
		{ID: 2001, Amount: -120.00, Date: "2024-01-05", Reference: "00123"},
	}))
	require.NoError(t, repo.SaveAttachments("b2", []*records.Attachment{
		{ID: 3001, Data: records.AttachmentData{TotalAmount: 120.00, Reference: "123"}},
		{ID: 3002, Data: records.AttachmentData{TotalAmount: 55.00, Reference: "999"}},
	}))

	att, err := svc.FindAttachmentForTransaction(2001)

	require.NoError(t, err)
	require.NotNil(t, att)
	assert.Equal(t, int64(3001), att.ID)
}

func TestFindAttachmentForTransaction_NoMatchIsNotAnError(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, repo.SaveTransactions("b1", []*records.Transaction{
		{ID: 2001, Amount: -120.00, Date: "2024-01-05"},
	}))

	att, err := svc.FindAttachmentForTransaction(2001)

	require.NoError(t, err)
	assert.Nil(t, att)
}

func TestFindAttachmentForTransaction_MissingRecord(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FindAttachmentForTransaction(42)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestFindTransactionForAttachment(t *testing.T) {
	svc, repo := newTestService(t)

	require.NoError(t, repo.SaveTransactions("b1", []*records.Transaction{
		{ID: 2001, Amount: -450.00, Date: "2024-01-10", Contact: "Nordic Timber"},
	}))
	require.NoError(t, repo.SaveAttachments("b2", []*records.Attachment{
		{ID: 3001, Data: records.AttachmentData{
			TotalAmount: 450.00,
			Supplier:    "Nordic Timber Oy",
			DueDate:     "2024-01-10",
		}},
	}))

	tx, err := svc.FindTransactionForAttachment(3001)

	require.NoError(t, err)
	require.NotNil(t, tx)
	assert.Equal(t, int64(2001), tx.ID)
}

func TestFindTransactionForAttachment_MissingRecord(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.FindTransactionForAttachment(42)

	assert.ErrorIs(t, err, ErrRecordNotFound)
}
