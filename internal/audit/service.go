package audit

import (
	"context"
	"log/slog"
)

// Sink is where Log persists records. Matches the store package's
// interface; declared here so the service does not depend on it.
type Sink interface {
	Append(ctx context.Context, record Record) error
}

// StreamPublisher optionally fans records out to a stream (Kafka).
type StreamPublisher interface {
	Publish(ctx context.Context, record Record) error
}

// Service persists assembled records. Persistence failures are surfaced
// as a degraded compliance status, never as a pipeline failure: the
// in-memory record was produced and the decision stands.
type Service struct {
	sink      Sink
	publisher StreamPublisher
	logger    *slog.Logger
}

// Option configures the Service.
type Option func(*Service)

// WithPublisher attaches a stream publisher.
func WithPublisher(p StreamPublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithLogger sets a logger for degraded-path reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func NewService(sink Sink, opts ...Option) *Service {
	s := &Service{sink: sink}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Log hands the record to the append-only store and, when configured, the
// stream publisher. The returned confirmation reflects storage health:
// StatusUnverifiedStorage means the caller holds the only durable copy.
func (s *Service) Log(ctx context.Context, record Record) Confirmation {
	confirmation := Confirmation{
		AuditLogged:      true,
		AuditID:          record.AuditID,
		IntegrityHash:    record.IntegrityHash,
		ComplianceStatus: StatusCompliant,
	}

	if err := s.sink.Append(ctx, record); err != nil {
		confirmation.AuditLogged = false
		confirmation.ComplianceStatus = StatusUnverifiedStorage
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "audit store append failed",
				"audit_id", record.AuditID,
				"transaction_id", record.TransactionID,
				"error", err,
			)
		}
		return confirmation
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, record); err != nil && s.logger != nil {
			// Stream fan-out is best-effort; the store holds the record.
			s.logger.WarnContext(ctx, "audit stream publish failed",
				"audit_id", record.AuditID,
				"error", err,
			)
		}
	}
	return confirmation
}
