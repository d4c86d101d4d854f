package handler

import (
	"treasury/internal/audit"
	"treasury/internal/decision"
	"treasury/internal/domain"
	"treasury/internal/pipeline"
)

// EvaluateResponse is the HTTP response for POST /v1/transactions/evaluate.
type EvaluateResponse struct {
	TransactionID string               `json:"transaction_id"`
	Decision      string               `json:"decision"`
	FastTrack     bool                 `json:"fast_track"`
	Confidence    float64              `json:"confidence"`
	Outcome       decision.Outcome     `json:"outcome"`
	StageResults  []domain.StageResult `json:"stage_results"`
	Audit         audit.Confirmation   `json:"audit"`
	Warnings      []string             `json:"warnings,omitempty"`
}

// FromResult converts a pipeline result to an HTTP response.
func FromResult(result *pipeline.Result) *EvaluateResponse {
	return &EvaluateResponse{
		TransactionID: result.Transaction.TransactionID,
		Decision:      string(result.Outcome.Decision),
		FastTrack:     result.Outcome.FastTrack,
		Confidence:    result.Outcome.Confidence,
		Outcome:       result.Outcome,
		StageResults:  result.StageResults,
		Audit:         result.Confirmation,
		Warnings:      result.Warnings,
	}
}

// BatchEvaluateResponse is the HTTP response for the batch endpoint.
type BatchEvaluateResponse struct {
	Results []*EvaluateResponse `json:"results"`
}

// FromResults converts a batch of pipeline results, preserving order.
func FromResults(results []*pipeline.Result) *BatchEvaluateResponse {
	out := make([]*EvaluateResponse, len(results))
	for i, result := range results {
		out[i] = FromResult(result)
	}
	return &BatchEvaluateResponse{Results: out}
}

// AuditResponse is the HTTP response for the audit lookup endpoint.
type AuditResponse struct {
	TransactionID string         `json:"transaction_id"`
	Records       []audit.Record `json:"records"`
}
