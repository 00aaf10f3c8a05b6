package storage

import "github.com/ledgerlink/reconcile-backend/internal/domain/records"

// Repository defines the complete record store interface.
// This interface allows swapping implementations (SQLite, PostgreSQL)
// and makes testing with mocks straightforward.
//
// The store holds input records only; match results are never persisted.
type Repository interface {
	TransactionRepository
	AttachmentRepository

	// Stats returns aggregate record counts
	Stats() (*Stats, error)

	Close() error
}

// TransactionRepository handles bank transaction records
type TransactionRepository interface {
	// SaveTransactions upserts a batch of transactions under the given
	// import batch id
	SaveTransactions(batchID string, txs []*records.Transaction) error

	// GetTransaction retrieves a transaction by id; nil if not found
	GetTransaction(id int64) (*records.Transaction, error)

	// ListTransactions returns all transactions ordered by id
	ListTransactions() ([]*records.Transaction, error)
}

// AttachmentRepository handles invoice/receipt attachment records
type AttachmentRepository interface {
	// SaveAttachments upserts a batch of attachments under the given
	// import batch id
	SaveAttachments(batchID string, atts []*records.Attachment) error

	// GetAttachment retrieves an attachment by id; nil if not found
	GetAttachment(id int64) (*records.Attachment, error)

	// ListAttachments returns all attachments ordered by id
	ListAttachments() ([]*records.Attachment, error)
}

// Stats holds aggregate record counts
type Stats struct {
	TransactionCount int `json:"transaction_count"`
	AttachmentCount  int `json:"attachment_count"`
	ImportBatchCount int `json:"import_batch_count"`
}
