// Package httputil centralizes JSON encoding, request decoding, and error
// mapping for HTTP handlers so every module responds the same way.
package httputil

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	pkgerrors "treasury/pkg/errors"
)

// Validatable is implemented by request DTOs that validate and normalize
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError maps a coded error to an HTTP status and writes a JSON body.
// Uncoded errors become 500s with a generic message so internals never leak.
func WriteError(w http.ResponseWriter, err error) {
	code := pkgerrors.CodeOf(err)
	WriteJSON(w, statusFor(code), errorBody{
		Error:   string(code),
		Message: pkgerrors.MessageOf(err),
	})
}

func statusFor(code pkgerrors.Code) int {
	switch code {
	case pkgerrors.CodeValidation, pkgerrors.CodeBadRequest:
		return http.StatusBadRequest
	case pkgerrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case pkgerrors.CodeNotFound:
		return http.StatusNotFound
	case pkgerrors.CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// DecodeAndPrepare decodes the request body into T and runs its validation.
// On failure it writes the error response and returns ok=false; handlers
// just return early. T's pointer type must implement Validatable.
func DecodeAndPrepare[T any, PT interface {
	Validatable
	*T
}](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "request decode failed",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, pkgerrors.New(pkgerrors.CodeBadRequest, "invalid JSON body"))
		return nil, false
	}
	if err := PT(&req).Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return &req, true
}
