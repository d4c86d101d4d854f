package handler

import (
	"strings"

	"treasury/internal/domain"
	pkgerrors "treasury/pkg/errors"
)

// EvaluateRequest is the HTTP request body for POST /v1/transactions/evaluate.
type EvaluateRequest struct {
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Sender        string  `json:"sender"`
	Receiver      string  `json:"receiver"`
	Purpose       string  `json:"purpose"`
	Timestamp     string  `json:"timestamp"`
	AccountID     string  `json:"account_id"`
	SenderHistory string  `json:"sender_history"`
	Context       string  `json:"context"`
}

// Validate rejects malformed requests before the pipeline sees them. The
// record's own Normalize re-checks the invariants; this layer exists to
// fail fast with field-level messages and size caps.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "request body is required")
	}

	if r.Amount < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be non-negative")
	}
	if len(r.Purpose) > 1000 {
		return pkgerrors.New(pkgerrors.CodeValidation, "purpose must be at most 1000 characters")
	}

	r.Sender = strings.TrimSpace(r.Sender)
	r.Receiver = strings.TrimSpace(r.Receiver)
	r.Purpose = strings.TrimSpace(r.Purpose)
	r.Timestamp = strings.TrimSpace(r.Timestamp)

	switch {
	case r.Sender == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "sender is required")
	case r.Receiver == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "receiver is required")
	case r.Purpose == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "purpose is required")
	case r.Timestamp == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "timestamp is required")
	}
	return nil
}

// BatchEvaluateRequest is the HTTP request body for
// POST /v1/transactions/evaluate-batch.
type BatchEvaluateRequest struct {
	Transactions []EvaluateRequest `json:"transactions"`
}

func (r *BatchEvaluateRequest) Validate() error {
	if r == nil || len(r.Transactions) == 0 {
		return pkgerrors.New(pkgerrors.CodeBadRequest, "transactions are required")
	}
	if len(r.Transactions) > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "batch size must be at most 100")
	}
	for i := range r.Transactions {
		if err := r.Transactions[i].Validate(); err != nil {
			return pkgerrors.Newf(pkgerrors.CodeValidation,
				"transaction %d: %s", i, pkgerrors.MessageOf(err))
		}
	}
	return nil
}

// ToRecord converts the validated request into the pipeline's input type.
func (r *EvaluateRequest) ToRecord() domain.TransactionRecord {
	return domain.TransactionRecord{
		TransactionID: r.TransactionID,
		Amount:        r.Amount,
		Sender:        r.Sender,
		Receiver:      r.Receiver,
		Purpose:       r.Purpose,
		Timestamp:     r.Timestamp,
		AccountID:     r.AccountID,
		SenderHistory: r.SenderHistory,
		Context:       r.Context,
	}
}
