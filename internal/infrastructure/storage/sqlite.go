// Package storage provides persistence for the reconciler's input records.
//
// Two implementations exist behind the Repository interface: SQLite for
// single-node deployments (the default) and PostgreSQL for shared ones.
package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// Storage provides SQLite database access for reconciliation records.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveTransactions upserts the given transactions under one import batch
func (s *Storage) SaveTransactions(batchID string, txs []*records.Transaction) error {
	return s.saveBatch(batchID, "transactions", len(txs), func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO transactions
			(id, amount, date, reference, contact, batch_id)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, t := range txs {
			if _, err := stmt.Exec(t.ID, t.Amount, t.Date, t.Reference, t.Contact, batchID); err != nil {
				return fmt.Errorf("failed to save transaction %d: %w", t.ID, err)
			}
		}
		return nil
	})
}

// GetTransaction retrieves a transaction by id; nil if not found
func (s *Storage) GetTransaction(id int64) (*records.Transaction, error) {
	row := s.db.QueryRow(`
		SELECT id, amount, date, reference, contact
		FROM transactions WHERE id = ?
	`, id)

	t := &records.Transaction{}
	err := row.Scan(&t.ID, &t.Amount, &t.Date, &t.Reference, &t.Contact)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTransactions returns all transactions ordered by id
func (s *Storage) ListTransactions() ([]*records.Transaction, error) {
	rows, err := s.db.Query(`
		SELECT id, amount, date, reference, contact
		FROM transactions ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*records.Transaction
	for rows.Next() {
		t := &records.Transaction{}
		if err := rows.Scan(&t.ID, &t.Amount, &t.Date, &t.Reference, &t.Contact); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SaveAttachments upserts the given attachments under one import batch
func (s *Storage) SaveAttachments(batchID string, atts []*records.Attachment) error {
	return s.saveBatch(batchID, "attachments", len(atts), func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT OR REPLACE INTO attachments
			(id, supplier, issuer, recipient, total_amount, reference,
			 due_date, invoicing_date, receiving_date, batch_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, a := range atts {
			d := a.Data
			_, err := stmt.Exec(a.ID, d.Supplier, d.Issuer, d.Recipient, d.TotalAmount,
				d.Reference, d.DueDate, d.InvoicingDate, d.ReceivingDate, batchID)
			if err != nil {
				return fmt.Errorf("failed to save attachment %d: %w", a.ID, err)
			}
		}
		return nil
	})
}

// GetAttachment retrieves an attachment by id; nil if not found
func (s *Storage) GetAttachment(id int64) (*records.Attachment, error) {
	row := s.db.QueryRow(`
		SELECT id, supplier, issuer, recipient, total_amount, reference,
		       due_date, invoicing_date, receiving_date
		FROM attachments WHERE id = ?
	`, id)

	a := &records.Attachment{}
	err := row.Scan(&a.ID, &a.Data.Supplier, &a.Data.Issuer, &a.Data.Recipient,
		&a.Data.TotalAmount, &a.Data.Reference, &a.Data.DueDate,
		&a.Data.InvoicingDate, &a.Data.ReceivingDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAttachments returns all attachments ordered by id
func (s *Storage) ListAttachments() ([]*records.Attachment, error) {
	rows, err := s.db.Query(`
		SELECT id, supplier, issuer, recipient, total_amount, reference,
		       due_date, invoicing_date, receiving_date
		FROM attachments ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*records.Attachment
	for rows.Next() {
		a := &records.Attachment{}
		err := rows.Scan(&a.ID, &a.Data.Supplier, &a.Data.Issuer, &a.Data.Recipient,
			&a.Data.TotalAmount, &a.Data.Reference, &a.Data.DueDate,
			&a.Data.InvoicingDate, &a.Data.ReceivingDate)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Stats returns aggregate record counts
func (s *Storage) Stats() (*Stats, error) {
	stats := &Stats{}
	queries := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM transactions", &stats.TransactionCount},
		{"SELECT COUNT(*) FROM attachments", &stats.AttachmentCount},
		{"SELECT COUNT(*) FROM import_batches", &stats.ImportBatchCount},
	}
	for _, q := range queries {
		if err := s.db.QueryRow(q.query).Scan(q.dest); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// saveBatch runs fn in a transaction and records the import batch
func (s *Storage) saveBatch(batchID, kind string, count int, fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO import_batches (id, kind, record_count)
		VALUES (?, ?, ?)
	`, batchID, kind, count)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record import batch: %w", err)
	}

	return tx.Commit()
}
