// Package store defines the append-only persistence port for audit
// records. Stores are interface-driven so the pipeline can run against
// memory in tests and Postgres in production without rewiring.
package store

import (
	"context"

	"treasury/internal/audit"
)

// Store persists audit records. Append-only: nothing queries back a
// record to change it, and implementations must not overwrite.
type Store interface {
	Append(ctx context.Context, record audit.Record) error
	FindByTransaction(ctx context.Context, transactionID string) ([]audit.Record, error)
}
