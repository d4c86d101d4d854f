// Package intent classifies a transaction's stated purpose into a business
// category with an urgency level and a confidence score. Classification is
// a pure function of the record; no I/O, no side effects.
package intent

import (
	"fmt"
	"strings"

	"treasury/internal/domain"
)

// Urgency grades how quickly a transaction claims to need handling.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// AmountBucket is a coarse size classification used by reviewers.
type AmountBucket string

const (
	BucketLow    AmountBucket = "low"
	BucketMedium AmountBucket = "medium"
	BucketHigh   AmountBucket = "high"
)

// Classification is the intent stage verdict.
type Classification struct {
	Category        Category     `json:"intent"`
	Urgency         Urgency      `json:"urgency"`
	Confidence      float64      `json:"confidence"`
	MatchedKeywords []string     `json:"matched_keywords"`
	OffHours        bool         `json:"is_off_hours"`
	AmountBucket    AmountBucket `json:"amount_bucket"`
	Reasoning       string       `json:"reasoning"`
}

// Classifier maps purpose text, amount, and timing to a Classification.
type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify runs the keyword scan and urgency rules against the record.
func (c *Classifier) Classify(rec domain.TransactionRecord) Classification {
	purpose := strings.ToLower(rec.Purpose)

	category := CategoryGeneral
	var matched []string
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(purpose, kw) {
				matched = append(matched, kw)
			}
		}
		if len(matched) > 0 {
			category = entry.category
			break
		}
	}

	urgency := UrgencyMedium
	for _, kw := range urgencyKeywords {
		if strings.Contains(purpose, kw) {
			urgency = UrgencyHigh
			break
		}
	}
	// Amount rules run last so large or small amounts always override the
	// keyword-derived urgency.
	if rec.Amount > 50000 {
		urgency = UrgencyHigh
	} else if rec.Amount < 1000 {
		urgency = UrgencyLow
	}

	confidence := 0.60
	if len(matched) > 0 {
		confidence = 0.95
	}
	if category == CategoryGeneral {
		confidence = 0.50
	}

	// Off-hours degrades to false when the timestamp does not parse; an
	// unreadable timestamp is the risk scorer's signal, not ours.
	offHours := false
	if ts, err := domain.ParseTimestamp(rec.Timestamp); err == nil {
		hour := ts.Hour()
		offHours = hour < 6 || hour > 22
	}

	return Classification{
		Category:        category,
		Urgency:         urgency,
		Confidence:      confidence,
		MatchedKeywords: matched,
		OffHours:        offHours,
		AmountBucket:    bucketFor(rec.Amount),
		Reasoning: fmt.Sprintf(
			"classified as %q on keywords %v; urgency %s from amount %.2f and purpose",
			category, matched, urgency, rec.Amount,
		),
	}
}

func bucketFor(amount float64) AmountBucket {
	switch {
	case amount > 25000:
		return BucketHigh
	case amount >= 5000:
		return BucketMedium
	default:
		return BucketLow
	}
}
