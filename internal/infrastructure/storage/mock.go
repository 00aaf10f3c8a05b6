package storage

import (
	"sort"
	"sync"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// MockRepository is an in-memory Repository for tests.
type MockRepository struct {
	mu           sync.Mutex
	transactions map[int64]*records.Transaction
	attachments  map[int64]*records.Attachment
	batches      map[string]string
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates an empty in-memory repository
func NewMockRepository() *MockRepository {
	return &MockRepository{
		transactions: make(map[int64]*records.Transaction),
		attachments:  make(map[int64]*records.Attachment),
		batches:      make(map[string]string),
	}
}

// SaveTransactions upserts transactions in memory
func (m *MockRepository) SaveTransactions(batchID string, txs []*records.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range txs {
		m.transactions[t.ID] = t
	}
	m.batches[batchID] = "transactions"
	return nil
}

// GetTransaction retrieves a transaction by id; nil if not found
func (m *MockRepository) GetTransaction(id int64) (*records.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transactions[id], nil
}

// ListTransactions returns all transactions ordered by id
func (m *MockRepository) ListTransactions() ([]*records.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*records.Transaction, 0, len(m.transactions))
	for _, t := range m.transactions {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// SaveAttachments upserts attachments in memory
func (m *MockRepository) SaveAttachments(batchID string, atts []*records.Attachment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range atts {
		m.attachments[a.ID] = a
	}
	m.batches[batchID] = "attachments"
	return nil
}

// GetAttachment retrieves an attachment by id; nil if not found
func (m *MockRepository) GetAttachment(id int64) (*records.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attachments[id], nil
}

// ListAttachments returns all attachments ordered by id
func (m *MockRepository) ListAttachments() ([]*records.Attachment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*records.Attachment, 0, len(m.attachments))
	for _, a := range m.attachments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Stats returns aggregate record counts
func (m *MockRepository) Stats() (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &Stats{
		TransactionCount: len(m.transactions),
		AttachmentCount:  len(m.attachments),
		ImportBatchCount: len(m.batches),
	}, nil
}

// Close is a no-op for the in-memory repository
func (m *MockRepository) Close() error {
	return nil
}
