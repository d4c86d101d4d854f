// Package domain holds the data structures shared across pipeline stages:
// the transaction record under review and the evidence trail accumulated
// while reviewing it.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "treasury/pkg/errors"
)

// DefaultAccountID is used when a transaction does not name an account.
const DefaultAccountID = "primary"

// DefaultSenderHistory is assumed when no history classification is given.
const DefaultSenderHistory = "unknown"

// TransactionRecord is the immutable input to one pipeline run. Normalize
// populates defaults exactly once at the boundary; stages never mutate it.
type TransactionRecord struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Sender        string  `json:"sender"`
	Receiver      string  `json:"receiver"`
	Purpose       string  `json:"purpose"`
	Timestamp     string  `json:"timestamp"`
	AccountID     string  `json:"account_id"`
	SenderHistory string  `json:"sender_history"`
	Context       string  `json:"context,omitempty"`
}

// Normalize validates required fields and fills defaults. It returns a new
// record so the caller's copy stays untouched.
func (t TransactionRecord) Normalize() (TransactionRecord, error) {
	if t.Amount < 0 {
		return t, pkgerrors.New(pkgerrors.CodeValidation, "amount must be non-negative")
	}
	if strings.TrimSpace(t.Timestamp) == "" {
		return t, pkgerrors.New(pkgerrors.CodeValidation, "timestamp is required")
	}
	if strings.TrimSpace(t.Sender) == "" {
		return t, pkgerrors.New(pkgerrors.CodeValidation, "sender is required")
	}
	if strings.TrimSpace(t.Receiver) == "" {
		return t, pkgerrors.New(pkgerrors.CodeValidation, "receiver is required")
	}
	if strings.TrimSpace(t.Purpose) == "" {
		return t, pkgerrors.New(pkgerrors.CodeValidation, "purpose is required")
	}

	if t.TransactionID == "" {
		t.TransactionID = "TXN-" + uuid.NewString()
	}
	if t.AccountID == "" {
		t.AccountID = DefaultAccountID
	}
	if t.SenderHistory == "" {
		t.SenderHistory = DefaultSenderHistory
	}
	return t, nil
}

// timestampLayouts are tried in order when parsing transaction timestamps.
// RFC3339 first, then the zone-less ISO form callers commonly send.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a transaction timestamp. Callers decide how to
// degrade on failure; the scoring rules treat an unparseable timestamp as
// a signal, not an error.
func ParseTimestamp(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
