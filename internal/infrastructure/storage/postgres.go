package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/ledgerlink/reconcile-backend/internal/domain/records"
)

// PostgresStorage provides PostgreSQL database access for reconciliation
// records. It implements the Repository interface for deployments where the
// record store is shared between services.
type PostgresStorage struct {
	db *sql.DB
}

// Compile-time check that PostgresStorage implements Repository
var _ Repository = (*PostgresStorage)(nil)

// NewPostgresStorage connects to PostgreSQL and ensures the schema exists
func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStorage{db: db}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGINT PRIMARY KEY,
			amount DOUBLE PRECISION NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			reference TEXT NOT NULL DEFAULT '',
			contact TEXT NOT NULL DEFAULT '',
			batch_id TEXT NOT NULL DEFAULT '',
			imported_at TIMESTAMPTZ DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS attachments (
			id BIGINT PRIMARY KEY,
			supplier TEXT NOT NULL DEFAULT '',
			issuer TEXT NOT NULL DEFAULT '',
			recipient TEXT NOT NULL DEFAULT '',
			total_amount DOUBLE PRECISION NOT NULL,
			reference TEXT NOT NULL DEFAULT '',
			due_date TEXT NOT NULL DEFAULT '',
			invoicing_date TEXT NOT NULL DEFAULT '',
			receiving_date TEXT NOT NULL DEFAULT '',
			batch_id TEXT NOT NULL DEFAULT '',
			imported_at TIMESTAMPTZ DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS import_batches (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			imported_at TIMESTAMPTZ DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_reference ON transactions(reference);
		CREATE INDEX IF NOT EXISTS idx_attachments_reference ON attachments(reference);
	`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// SaveTransactions upserts the given transactions under one import batch
func (s *PostgresStorage) SaveTransactions(batchID string, txs []*records.Transaction) error {
	return s.saveBatch(batchID, "transactions", len(txs), func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO transactions (id, amount, date, reference, contact, batch_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				amount = EXCLUDED.amount,
				date = EXCLUDED.date,
				reference = EXCLUDED.reference,
				contact = EXCLUDED.contact,
				batch_id = EXCLUDED.batch_id
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
func (s *PostgresStorage) GetTransaction(id int64) (*records.Transaction, error) {
	row := s.db.QueryRow(`
		SELECT id, amount, date, reference, contact
		FROM transactions WHERE id = $1
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
func (s *PostgresStorage) ListTransactions() ([]*records.Transaction, error) {
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
func (s *PostgresStorage) SaveAttachments(batchID string, atts []*records.Attachment) error {
	return s.saveBatch(batchID, "attachments", len(atts), func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO attachments
			(id, supplier, issuer, recipient, total_amount, reference,
			 due_date, invoicing_date, receiving_date, batch_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO UPDATE SET
				supplier = EXCLUDED.supplier,
				issuer = EXCLUDED.issuer,
				recipient = EXCLUDED.recipient,
				total_amount = EXCLUDED.total_amount,
				reference = EXCLUDED.reference,
				due_date = EXCLUDED.due_date,
				invoicing_date = EXCLUDED.invoicing_date,
				receiving_date = EXCLUDED.receiving_date,
				batch_id = EXCLUDED.batch_id
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
func (s *PostgresStorage) GetAttachment(id int64) (*records.Attachment, error) {
	row := s.db.QueryRow(`
		SELECT id, supplier, issuer, recipient, total_amount, reference,
		       due_date, invoicing_date, receiving_date
		FROM attachments WHERE id = $1
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
func (s *PostgresStorage) ListAttachments() ([]*records.Attachment, error) {
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
func (s *PostgresStorage) Stats() (*Stats, error) {
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

func (s *PostgresStorage) saveBatch(batchID, kind string, count int, fn func(*sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO import_batches (id, kind, record_count)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			kind = EXCLUDED.kind,
			record_count = EXCLUDED.record_count
	`, batchID, kind, count)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record import batch: %w", err)
	}

	return tx.Commit()
}
