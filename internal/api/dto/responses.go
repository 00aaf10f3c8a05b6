package dto

import (
	"time"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a healthy response with the current time.
func NewHealthResponse() HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ImportResponse is returned after a successful record import.
type ImportResponse struct {
	BatchID string `json:"batch_id"`
	Count   int    `json:"count"`
}

// TransactionListResponse is returned when listing transactions.
type TransactionListResponse struct {
	Transactions []*records.Transaction `json:"transactions"`
	Count        int                    `json:"count"`
}

// AttachmentListResponse is returned when listing attachments.
type AttachmentListResponse struct {
	Attachments []*records.Attachment `json:"attachments"`
	Count       int                   `json:"count"`
}

// MatchAttachmentResponse is the outcome of a transaction-to-attachment
// match. The engine collapses confidence into a binary decision, so no
// score is exposed.
type MatchAttachmentResponse struct {
	Matched    bool                `json:"matched"`
	Attachment *records.Attachment `json:"attachment,omitempty"`
}

// MatchTransactionResponse is the outcome of an attachment-to-transaction
// match.
type MatchTransactionResponse struct {
	Matched     bool                 `json:"matched"`
	Transaction *records.Transaction `json:"transaction,omitempty"`
}

// StatsResponse reports aggregate record counts.
type StatsResponse struct {
	TransactionCount int `json:"transaction_count"`
	AttachmentCount  int `json:"attachment_count"`
	ImportBatchCount int `json:"import_batch_count"`
}
