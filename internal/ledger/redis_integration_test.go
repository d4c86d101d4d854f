//go:build integration

package ledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"treasury/pkg/testutil/containers"
)

type RedisLedgerSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	ledger *RedisLedger
	ctx    context.Context
}

func TestRedisLedgerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLedgerSuite))
}

func (s *RedisLedgerSuite) SetupSuite() {
	s.ctx = context.Background()
	s.redis = containers.NewRedisContainer(s.T())
	s.ledger = NewRedisLedger(s.redis.Client)
}

func (s *RedisLedgerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(s.ctx))
}

// TestPutAndLookup verifies snapshots round-trip through Redis JSON
// values.
func (s *RedisLedgerSuite) TestPutAndLookup() {
	want := Snapshot{
		AccountID:              "primary",
		Balance:                180000,
		MinimumReserve:         25000,
		DailyLimit:             75000,
		MonthlyBudgetRemaining: 150000,
	}
	s.Require().NoError(s.ledger.Put(s.ctx, want))

	got, err := s.ledger.Lookup(s.ctx, "primary")
	s.Require().NoError(err)
	s.Equal(want, got)
}

// TestMissingAccount verifies the not-found sentinel for absent keys.
func (s *RedisLedgerSuite) TestMissingAccount() {
	_, err := s.ledger.Lookup(s.ctx, "ghost")
	s.Require().ErrorIs(err, ErrNotFound)
}

// TestPutReplaces verifies a second put overwrites the snapshot.
func (s *RedisLedgerSuite) TestPutReplaces() {
	first := Snapshot{AccountID: "ops", Balance: 100}
	second := Snapshot{AccountID: "ops", Balance: 200}

	s.Require().NoError(s.ledger.Put(s.ctx, first))
	s.Require().NoError(s.ledger.Put(s.ctx, second))

	got, err := s.ledger.Lookup(s.ctx, "ops")
	s.Require().NoError(err)
	s.InDelta(200, got.Balance, 1e-9)
}

// TestCorruptEntry verifies decode failures surface as errors rather than
// zero snapshots.
func (s *RedisLedgerSuite) TestCorruptEntry() {
	s.Require().NoError(s.redis.Client.Set(s.ctx, "treasury:ledger:bad", "not-json", 0).Err())

	_, err := s.ledger.Lookup(s.ctx, "bad")
	s.Require().Error(err)
	s.NotErrorIs(err, ErrNotFound)
}
