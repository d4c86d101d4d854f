package risk

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"treasury/internal/domain"
	"treasury/internal/intent"
)

type ScorerSuite struct {
	suite.Suite
	scorer *Scorer
}

func (s *ScorerSuite) SetupTest() {
	s.scorer = NewScorer()
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerSuite))
}

// baseline is a weekday, daytime, established-sender record that trips no
// rules on its own.
func (s *ScorerSuite) baseline(amount float64) domain.TransactionRecord {
	return domain.TransactionRecord{
		Amount:        amount,
		Sender:        "ops-team",
		Receiver:      "Acme Supplies Ltd",
		Purpose:       "vendor invoice",
		Timestamp:     "2025-03-12T10:30:00Z",
		SenderHistory: "established",
	}
}

func (s *ScorerSuite) vendorIntent() intent.Classification {
	return intent.Classification{Category: intent.CategoryVendor}
}

// TestAmountTiers verifies the tiers are mutually exclusive: exactly one
// fires and never stacks with a lower one.
func (s *ScorerSuite) TestAmountTiers() {
	cases := []struct {
		amount     float64
		wantScore  float64
		wantFactor string
	}{
		{25000, 0, ""},
		{25001, 0.08, "elevated_amount"},
		{50001, 0.15, "high_amount"},
		{100001, 0.25, "very_high_amount"},
	}
	for _, tc := range cases {
		got := s.scorer.Score(s.baseline(tc.amount), s.vendorIntent())
		s.InDelta(tc.wantScore, got.Score, 1e-9, "amount %.2f", tc.amount)
		if tc.wantFactor != "" {
			s.Equal([]string{tc.wantFactor}, got.Factors, "amount %.2f", tc.amount)
		} else {
			s.Empty(got.Factors, "amount %.2f", tc.amount)
		}
	}
}

// TestTimingRules verifies off-hours, weekend, and the flat penalty that
// replaces both when the timestamp does not parse.
func (s *ScorerSuite) TestTimingRules() {
	s.Run("off hours adds 0.12", func() {
		rec := s.baseline(1000)
		rec.Timestamp = "2025-03-12T02:30:00Z"
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.12, got.Score, 1e-9)
		s.Contains(got.Factors, "off_hours_transaction")
	})

	s.Run("weekend adds 0.08", func() {
		rec := s.baseline(1000)
		rec.Timestamp = "2025-03-15T10:30:00Z" // Saturday
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.08, got.Score, 1e-9)
		s.Contains(got.Factors, "weekend_transaction")
	})

	s.Run("off-hours weekend stacks both", func() {
		rec := s.baseline(1000)
		rec.Timestamp = "2025-03-15T02:30:00Z"
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.20, got.Score, 1e-9)
	})

	s.Run("unparseable timestamp takes the flat penalty only", func() {
		rec := s.baseline(1000)
		rec.Timestamp = "yesterday"
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.05, got.Score, 1e-9)
		s.Equal([]string{"invalid_timestamp"}, got.Factors)
	})
}

// TestCounterpartyRules verifies receiver patterns and sender history.
func (s *ScorerSuite) TestCounterpartyRules() {
	s.Run("suspicious receiver fires once despite multiple patterns", func() {
		rec := s.baseline(1000)
		rec.Receiver = "temp cash account"
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.20, got.Score, 1e-9)
		s.Equal([]string{"suspicious_receiver"}, got.Factors)
	})

	s.Run("unknown history adds 0.10", func() {
		rec := s.baseline(1000)
		rec.SenderHistory = "unknown"
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.10, got.Score, 1e-9)
	})

	s.Run("new sender adds 0.08 and never stacks with unknown", func() {
		rec := s.baseline(1000)
		rec.SenderHistory = "new account this month"
		got := s.scorer.Score(rec, s.vendorIntent())
		s.InDelta(0.08, got.Score, 1e-9)
		s.Equal([]string{"new_sender"}, got.Factors)
	})
}

// TestIntentAndStructuringRules verifies the flat intent penalty and the
// round-amount heuristic.
func (s *ScorerSuite) TestIntentAndStructuringRules() {
	s.Run("high risk intents add 0.10", func() {
		for _, category := range []intent.Category{
			intent.CategoryEmergency, intent.CategoryGeneral, intent.CategoryLoan,
		} {
			got := s.scorer.Score(s.baseline(1000), intent.Classification{Category: category})
			s.InDelta(0.10, got.Score, 1e-9, string(category))
			s.Contains(got.Factors, "high_risk_intent_"+string(category))
		}
	})

	s.Run("round multiples of 10000 add 0.05", func() {
		got := s.scorer.Score(s.baseline(20000), s.vendorIntent())
		s.InDelta(0.05, got.Score, 1e-9)
		s.Equal([]string{"suspicious_round_amount"}, got.Factors)
	})

	s.Run("9999 and 10500 are not round", func() {
		for _, amount := range []float64{9999, 10500} {
			got := s.scorer.Score(s.baseline(amount), s.vendorIntent())
			s.NotContains(got.Factors, "suspicious_round_amount", "amount %.2f", amount)
		}
	})
}

// TestClampAndGrading verifies the score ceiling and the level,
// review-required, and recommendation thresholds.
func (s *ScorerSuite) TestClampAndGrading() {
	s.Run("worst case stays within the unit interval", func() {
		rec := domain.TransactionRecord{
			Amount:        110000,
			Sender:        "ops-team",
			Receiver:      "unknown temp cash test personal",
			Purpose:       "transfer",
			Timestamp:     "2025-03-15T02:30:00Z",
			SenderHistory: "unknown",
		}
		// Every rule fires: 0.25 + 0.12 + 0.08 + 0.20 + 0.10 + 0.10 + 0.05.
		got := s.scorer.Score(rec, intent.Classification{Category: intent.CategoryGeneral})
		s.InDelta(0.90, got.Score, 1e-9)
		s.LessOrEqual(got.Score, 1.0)
		s.Equal(LevelCritical, got.Level)
		s.Equal(RecommendReject, got.Recommendation)
	})

	s.Run("levels follow score bands", func() {
		cases := []struct {
			score float64
			want  Level
		}{
			{0.0, LevelLow},
			{0.24, LevelLow},
			{0.25, LevelMedium},
			{0.49, LevelMedium},
			{0.50, LevelHigh},
			{0.74, LevelHigh},
			{0.75, LevelCritical},
		}
		for _, tc := range cases {
			s.Equal(tc.want, levelFor(tc.score), "score %.2f", tc.score)
		}
	})

	s.Run("review required at 0.50", func() {
		rec := s.baseline(60000) // 0.15
		rec.Receiver = "temp account"
		rec.SenderHistory = "unknown"
		rec.Timestamp = "2025-03-15T02:30:00Z"
		// 0.15 + 0.20 + 0.10 + 0.12 + 0.08 = 0.65
		got := s.scorer.Score(rec, s.vendorIntent())
		s.True(got.ReviewRequired)
		s.Equal(LevelHigh, got.Level)
		s.Equal(RecommendEscalate, got.Recommendation)
	})

	s.Run("clean transaction recommends approve", func() {
		got := s.scorer.Score(s.baseline(1000), s.vendorIntent())
		s.False(got.ReviewRequired)
		s.Equal(RecommendApprove, got.Recommendation)
	})
}
