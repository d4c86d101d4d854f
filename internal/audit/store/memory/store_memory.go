package memory

import (
	"context"
	"sync"

	"treasury/internal/audit"
)

// InMemoryStore is the default audit sink for local runs and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]audit.Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]audit.Record)}
}

func (s *InMemoryStore) Append(_ context.Context, record audit.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.TransactionID] = append(s.records[record.TransactionID], record)
	return nil
}

func (s *InMemoryStore) FindByTransaction(_ context.Context, transactionID string) ([]audit.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Record{}, s.records[transactionID]...), nil
}

// Len reports the total number of stored records.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, records := range s.records {
		n += len(records)
	}
	return n
}
