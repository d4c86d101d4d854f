// Package metadata attaches request-scoped metadata (correlation ID,
// request time) before any handler runs.
package metadata

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"treasury/pkg/requestcontext"
)

// HeaderRequestID is the inbound/outbound correlation header.
const HeaderRequestID = "X-Request-Id"

// Middleware propagates an inbound request ID or generates one, echoes it
// on the response, and pins the request time for downstream determinism.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := requestcontext.WithRequestID(r.Context(), requestID)
		ctx = requestcontext.WithTime(ctx, time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
