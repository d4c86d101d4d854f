package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"treasury/internal/domain"
)

// Runner processes batches of independent transactions concurrently, one
// pipeline run per transaction. Runs touching the same account are
// serialized through a per-account lock so two reviews never reason about
// the same reserve at once.
type Runner struct {
	pipeline    *Pipeline
	concurrency int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRunner(p *Pipeline, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{
		pipeline:    p,
		concurrency: concurrency,
		locks:       make(map[string]*sync.Mutex),
	}
}

// ProcessBatch runs every record through the pipeline with bounded
// concurrency. Results keep the input order; the first validation or
// ledger failure cancels outstanding runs.
func (r *Runner) ProcessBatch(ctx context.Context, records []domain.TransactionRecord) ([]*Result, error) {
	results := make([]*Result, len(records))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, rec := range records {
		g.Go(func() error {
			lock := r.accountLock(accountOf(rec))
			lock.Lock()
			defer lock.Unlock()

			result, err := r.pipeline.Process(ctx, rec)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func accountOf(rec domain.TransactionRecord) string {
	if rec.AccountID == "" {
		return domain.DefaultAccountID
	}
	return rec.AccountID
}

func (r *Runner) accountLock(accountID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[accountID] = lock
	}
	return lock
}
