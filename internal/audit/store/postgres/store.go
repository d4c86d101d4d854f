// Package postgres persists audit records to an append-only table. The
// full record rides in a JSONB column; indexed columns cover the lookup
// paths reviewers actually use.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"treasury/internal/audit"
)

// Schema is applied by migrations in deployment; tests apply it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_records (
	audit_id        TEXT PRIMARY KEY,
	transaction_id  TEXT NOT NULL,
	decision        TEXT NOT NULL,
	integrity_hash  TEXT NOT NULL,
	record          JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_records_transaction
	ON audit_records (transaction_id, created_at);
`

// Store implements the audit store against Postgres via database/sql.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Append inserts one record. There is no update path by design.
func (s *Store) Append(ctx context.Context, record audit.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode audit record %s: %w", record.AuditID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO audit_records (audit_id, transaction_id, decision, integrity_hash, record, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		record.AuditID, record.TransactionID, record.Decision,
		record.IntegrityHash, payload, record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("append audit record %s: %w", record.AuditID, err)
	}
	return nil
}

// FindByTransaction returns all records for a transaction, oldest first.
func (s *Store) FindByTransaction(ctx context.Context, transactionID string) ([]audit.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM audit_records
		WHERE transaction_id = $1
		ORDER BY created_at`,
		transactionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query audit records for %s: %w", transactionID, err)
	}
	defer rows.Close()

	var records []audit.Record
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		var record audit.Record
		if err := json.Unmarshal(payload, &record); err != nil {
			return nil, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Health verifies database connectivity.
func (s *Store) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
