package ledger

import (
	"context"
	"sync"
)

// InMemoryLedger is a snapshot store backed by a map. It ships seeded with
// the simulated treasury accounts and is the default when Redis is not
// configured; tests use it directly.
type InMemoryLedger struct {
	mu       sync.RWMutex
	accounts map[string]Snapshot
}

// NewInMemoryLedger creates an empty ledger.
func NewInMemoryLedger() *InMemoryLedger {
	return &InMemoryLedger{accounts: make(map[string]Snapshot)}
}

// NewSeededLedger creates a ledger pre-loaded with the simulated treasury
// accounts.
func NewSeededLedger() *InMemoryLedger {
	l := NewInMemoryLedger()
	for account, balance := range map[string]float64{
		"primary":    180000,
		"reserve":    50000,
		"payroll":    200000,
		"operations": 75000,
	} {
		l.Put(Snapshot{
			AccountID:              account,
			Balance:                balance,
			MinimumReserve:         DefaultMinimumReserve,
			DailyLimit:             DefaultDailyLimit,
			MonthlyBudgetRemaining: DefaultMonthlyBudget,
		})
	}
	return l
}

// Put stores or replaces an account snapshot.
func (l *InMemoryLedger) Put(snapshot Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.accounts[snapshot.AccountID] = snapshot
}

// Lookup returns the snapshot for an account, or ErrNotFound.
func (l *InMemoryLedger) Lookup(_ context.Context, accountID string) (Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	snapshot, ok := l.accounts[accountID]
	if !ok {
		return Snapshot{}, ErrNotFound
	}
	return snapshot, nil
}
