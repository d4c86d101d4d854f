// Package enrich defines the optional language-model enrichment port.
// Enrichers add free-text commentary to a stage result; they never
// override the deterministic verdict fields, and when no enricher is
// configured every stage still produces its full structured output.
package enrich

import (
	"context"

	"treasury/internal/domain"
)

// Enricher supplements one stage's verdict with commentary. Errors are
// swallowed by the pipeline: enrichment is strictly best-effort.
type Enricher interface {
	Commentary(ctx context.Context, stage domain.Stage, payload any) (string, error)
}

// Noop is the default enricher: no external collaborator, no commentary.
type Noop struct{}

func (Noop) Commentary(context.Context, domain.Stage, any) (string, error) {
	return "", nil
}
