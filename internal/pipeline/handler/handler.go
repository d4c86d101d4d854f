package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"treasury/internal/audit"
	"treasury/internal/domain"
	"treasury/internal/pipeline"
	pkgerrors "treasury/pkg/errors"
	"treasury/pkg/platform/httputil"
	"treasury/pkg/requestcontext"
)

// Reviewer runs one transaction through the pipeline.
type Reviewer interface {
	Process(ctx context.Context, rec domain.TransactionRecord) (*pipeline.Result, error)
}

// BatchReviewer runs independent transactions through the pipeline
// concurrently.
type BatchReviewer interface {
	ProcessBatch(ctx context.Context, records []domain.TransactionRecord) ([]*pipeline.Result, error)
}

// AuditFinder reads back persisted audit records.
type AuditFinder interface {
	FindByTransaction(ctx context.Context, transactionID string) ([]audit.Record, error)
}

// Handler wires review endpoints to the pipeline.
type Handler struct {
	reviewer Reviewer
	batch    BatchReviewer
	audits   AuditFinder
	logger   *slog.Logger
}

// New constructs a review handler with its dependencies.
func New(reviewer Reviewer, batch BatchReviewer, audits AuditFinder, logger *slog.Logger) *Handler {
	return &Handler{
		reviewer: reviewer,
		batch:    batch,
		audits:   audits,
		logger:   logger,
	}
}

// Register mounts review endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/transactions/evaluate", h.HandleEvaluate)
	r.Post("/transactions/evaluate-batch", h.HandleEvaluateBatch)
	r.Get("/transactions/{transactionID}/audit", h.HandleAuditLookup)
}

// HandleEvaluate handles POST /v1/transactions/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.reviewer.Process(ctx, req.ToRecord())
	if err != nil {
		h.logger.ErrorContext(ctx, "transaction review failed",
			"request_id", requestID,
			"transaction_id", req.TransactionID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "transaction review served",
		"request_id", requestID,
		"transaction_id", result.Transaction.TransactionID,
		"decision", result.Outcome.Decision,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleEvaluateBatch handles POST /v1/transactions/evaluate-batch.
// Transactions in one batch are reviewed concurrently; results come back
// in request order.
func (h *Handler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BatchEvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	records := make([]domain.TransactionRecord, len(req.Transactions))
	for i, tx := range req.Transactions {
		records[i] = tx.ToRecord()
	}

	results, err := h.batch.ProcessBatch(ctx, records)
	if err != nil {
		h.logger.ErrorContext(ctx, "batch review failed",
			"request_id", requestID,
			"batch_size", len(records),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch review served",
		"request_id", requestID,
		"batch_size", len(records),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResults(results))
}

// HandleAuditLookup handles GET /v1/transactions/{transactionID}/audit.
func (h *Handler) HandleAuditLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transactionID := chi.URLParam(r, "transactionID")

	records, err := h.audits.FindByTransaction(ctx, transactionID)
	if err != nil {
		h.logger.ErrorContext(ctx, "audit lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"transaction_id", transactionID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	if len(records) == 0 {
		httputil.WriteError(w, pkgerrors.New(pkgerrors.CodeNotFound, "no audit records for transaction"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, AuditResponse{
		TransactionID: transactionID,
		Records:       records,
	})
}
