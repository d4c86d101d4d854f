package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "treasury:ledger:"

// RedisLedger stores account snapshots as JSON values in Redis so multiple
// gateway instances read the same ledger state.
type RedisLedger struct {
	client redis.Cmdable
}

func NewRedisLedger(client redis.Cmdable) *RedisLedger {
	return &RedisLedger{client: client}
}

// Lookup fetches and decodes an account snapshot. A missing key maps to
// ErrNotFound so callers get the same fallback behavior as the in-memory
// ledger.
func (l *RedisLedger) Lookup(ctx context.Context, accountID string) (Snapshot, error) {
	raw, err := l.client.Get(ctx, redisKeyPrefix+accountID).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("ledger lookup %s: %w", accountID, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("decode ledger entry %s: %w", accountID, err)
	}
	return snapshot, nil
}

// Put stores an account snapshot. Used by seeding and by the external
// ledger owner; the pipeline itself never writes.
func (l *RedisLedger) Put(ctx context.Context, snapshot Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode ledger entry %s: %w", snapshot.AccountID, err)
	}
	if err := l.client.Set(ctx, redisKeyPrefix+snapshot.AccountID, raw, 0).Err(); err != nil {
		return fmt.Errorf("ledger put %s: %w", snapshot.AccountID, err)
	}
	return nil
}
