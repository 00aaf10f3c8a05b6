package dto

import "github.com/ledgerlink/reconcile-backend/internal/domain/records"

// ImportTransactionsRequest carries a batch of bank transactions to store.
type ImportTransactionsRequest struct {
	Transactions []*records.Transaction `json:"transactions" binding:"required"`
}

// ImportAttachmentsRequest carries a batch of attachments to store.
type ImportAttachmentsRequest struct {
	Attachments []*records.Attachment `json:"attachments" binding:"required"`
}

// MatchAttachmentRequest asks for the best attachment for one transaction,
// with the candidate list supplied in the request body.
type MatchAttachmentRequest struct {
	Transaction *records.Transaction  `json:"transaction" binding:"required"`
	Attachments []*records.Attachment `json:"attachments"`
}

// MatchTransactionRequest asks for the best transaction for one attachment,
// with the candidate list supplied in the request body.
type MatchTransactionRequest struct {
	Attachment   *records.Attachment    `json:"attachment" binding:"required"`
	Transactions []*records.Transaction `json:"transactions"`
}
