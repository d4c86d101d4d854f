// Package ledger exposes account balance snapshots to the liquidity check.
// The pipeline reads one point-in-time snapshot per run; it never writes.
package ledger

import (
	"context"

	pkgerrors "treasury/pkg/errors"
)

// ErrNotFound is returned when an account has no ledger entry. The
// liquidity checker falls back to a default snapshot rather than failing.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "ledger entry not found")

// Snapshot is one account's ledger state at lookup time.
type Snapshot struct {
	AccountID              string  `json:"account_id"`
	Balance                float64 `json:"balance"`
	MinimumReserve         float64 `json:"minimum_reserve"`
	DailyLimit             float64 `json:"daily_limit"`
	MonthlyBudgetRemaining float64 `json:"monthly_budget_remaining"`
}

// Ledger looks up account snapshots. Implementations must be safe for
// concurrent use; each pipeline run reads a consistent snapshot, so no
// cross-transaction locking is required here.
type Ledger interface {
	Lookup(ctx context.Context, accountID string) (Snapshot, error)
}

// Default financial constraints applied to accounts without explicit
// configuration and to the fallback snapshot for unknown accounts.
const (
	DefaultBalance        = 150000
	DefaultMinimumReserve = 25000
	DefaultDailyLimit     = 75000
	DefaultMonthlyBudget  = 150000
)

// DefaultSnapshot is the fail-open snapshot for unrecognized accounts.
func DefaultSnapshot(accountID string) Snapshot {
	return Snapshot{
		AccountID:              accountID,
		Balance:                DefaultBalance,
		MinimumReserve:         DefaultMinimumReserve,
		DailyLimit:             DefaultDailyLimit,
		MonthlyBudgetRemaining: DefaultMonthlyBudget,
	}
}
