// Package service wires the record store to the matching engine.
//
// The engine itself is a pure function over two lists; this service is the
// piece that loads those lists wholesale from the repository for a single
// given record. There is deliberately no bulk "reconcile everything"
// operation.
package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ledgerlink/reconcile-backend/internal/domain/matcher"
	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
	"github.com/ledgerlink/reconcile-backend/internal/infrastructure/storage"
)

// ErrRecordNotFound is returned when the record to reconcile does not exist
// in the store. A missing match is not an error; it returns nil, nil.
var ErrRecordNotFound = errors.New("record not found")

// ReconcileService resolves matches for stored records.
type ReconcileService struct {
	repo    storage.Repository
	matcher *matcher.Matcher
	logger  *slog.Logger
}

// NewReconcileService creates a reconcile service.
func NewReconcileService(repo storage.Repository, m *matcher.Matcher, logger *slog.Logger) *ReconcileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReconcileService{
		repo:    repo,
		matcher: m,
		logger:  logger,
	}
}

// Matcher exposes the underlying engine for stateless, request-supplied
// matching.
func (s *ReconcileService) Matcher() *matcher.Matcher {
	return s.matcher
}

// FindAttachmentForTransaction loads the stored transaction and runs the
// engine against all stored attachments. Returns nil, nil when no confident
// match exists.
func (s *ReconcileService) FindAttachmentForTransaction(txID int64) (*records.Attachment, error) {
	tx, err := s.repo.GetTransaction(txID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction %d: %w", txID, err)
	}
	if tx == nil {
		return nil, ErrRecordNotFound
	}

	attachments, err := s.repo.ListAttachments()
	if err != nil {
		return nil, fmt.Errorf("failed to load attachments: %w", err)
	}

	att := s.matcher.FindAttachment(tx, attachments)
	if att == nil {
		s.logger.Debug("no attachment match", "transaction_id", txID, "candidates", len(attachments))
		return nil, nil
	}

	s.logger.Info("matched transaction to attachment", "transaction_id", txID, "attachment_id", att.ID)
	return att, nil
}

// FindTransactionForAttachment loads the stored attachment and runs the
// engine against all stored transactions. Returns nil, nil when no confident
// match exists.
func (s *ReconcileService) FindTransactionForAttachment(attID int64) (*records.Transaction, error) {
	att, err := s.repo.GetAttachment(attID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attachment %d: %w", attID, err)
	}
	if att == nil {
		return nil, ErrRecordNotFound
	}

	transactions, err := s.repo.ListTransactions()
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	tx := s.matcher.FindTransaction(att, transactions)
	if tx == nil {
		s.logger.Debug("no transaction match", "attachment_id", attID, "candidates", len(transactions))
		return nil, nil
	}

	s.logger.Info("matched attachment to transaction", "attachment_id", attID, "transaction_id", tx.ID)
	return tx, nil
}
