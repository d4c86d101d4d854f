// Package risk computes an additive fraud-risk score for a transaction.
// Rules are independent and cumulative except where noted; the scorer is a
// pure function of the record plus its intent classification.
package risk

import (
	"fmt"
	"math"
	"strings"
	"time"

	"treasury/internal/domain"
	"treasury/internal/intent"
)

// Level grades the clamped risk score.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Recommendation is the scorer's advisory verdict. The decision engine is
// the sole authority on the final outcome; this is preserved in the trail
// for reviewers.
type Recommendation string

const (
	RecommendApprove  Recommendation = "approve"
	RecommendProceed  Recommendation = "proceed"
	RecommendEscalate Recommendation = "escalate"
	RecommendReject   Recommendation = "reject"
)

// Assessment is the risk stage verdict.
type Assessment struct {
	Score          float64        `json:"risk_score"`
	Level          Level          `json:"risk_level"`
	Factors        []string       `json:"risk_factors"`
	ReviewRequired bool           `json:"requires_additional_review"`
	Recommendation Recommendation `json:"recommendation"`
	Reasoning      string         `json:"reasoning"`
}

// suspiciousReceiverPatterns flag receivers that look like throwaway or
// cash-out destinations.
var suspiciousReceiverPatterns = []string{"unknown", "temp", "test", "cash", "personal"}

// highRiskIntents attract a flat intent penalty.
var highRiskIntents = map[intent.Category]bool{
	intent.CategoryEmergency: true,
	intent.CategoryGeneral:   true,
	intent.CategoryLoan:      true,
}

// Scorer accumulates the additive risk rules.
type Scorer struct{}

func NewScorer() *Scorer {
	return &Scorer{}
}

// Score applies every rule that matches and clamps the result to [0, 1].
func (s *Scorer) Score(rec domain.TransactionRecord, classified intent.Classification) Assessment {
	score := 0.0
	var factors []string

	add := func(delta float64, factor string) {
		score += delta
		factors = append(factors, factor)
	}

	// Amount tiers are mutually exclusive; only the highest fires.
	switch {
	case rec.Amount > 100000:
		add(0.25, "very_high_amount")
	case rec.Amount > 50000:
		add(0.15, "high_amount")
	case rec.Amount > 25000:
		add(0.08, "elevated_amount")
	}

	// A parse failure short-circuits both time checks into a flat penalty.
	if ts, err := domain.ParseTimestamp(rec.Timestamp); err != nil {
		add(0.05, "invalid_timestamp")
	} else {
		if hour := ts.Hour(); hour < 6 || hour > 22 {
			add(0.12, "off_hours_transaction")
		}
		if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday {
			add(0.08, "weekend_transaction")
		}
	}

	receiver := strings.ToLower(rec.Receiver)
	for _, pattern := range suspiciousReceiverPatterns {
		if strings.Contains(receiver, pattern) {
			add(0.20, "suspicious_receiver")
			break
		}
	}

	// Unknown history outranks "new"; the two never stack.
	history := strings.ToLower(rec.SenderHistory)
	if history == "unknown" {
		add(0.10, "unknown_sender_history")
	} else if strings.Contains(history, "new") {
		add(0.08, "new_sender")
	}

	if highRiskIntents[classified.Category] {
		add(0.10, fmt.Sprintf("high_risk_intent_%s", classified.Category))
	}

	// Round multiples of 10k suggest structuring.
	if rec.Amount >= 10000 && math.Mod(rec.Amount, 10000) == 0 {
		add(0.05, "suspicious_round_amount")
	}

	score = math.Min(score, 1.0)
	level := levelFor(score)

	return Assessment{
		Score:          score,
		Level:          level,
		Factors:        factors,
		ReviewRequired: score >= 0.50,
		Recommendation: recommendationFor(score),
		Reasoning: fmt.Sprintf(
			"risk %.2f (%s) from %d factor(s): %s",
			score, level, len(factors), strings.Join(factors, ", "),
		),
	}
}

func levelFor(score float64) Level {
	switch {
	case score < 0.25:
		return LevelLow
	case score < 0.50:
		return LevelMedium
	case score < 0.75:
		return LevelHigh
	default:
		return LevelCritical
	}
}

func recommendationFor(score float64) Recommendation {
	switch {
	case score >= 0.75:
		return RecommendReject
	case score >= 0.50:
		return RecommendEscalate
	case score >= 0.25:
		return RecommendProceed
	default:
		return RecommendApprove
	}
}
