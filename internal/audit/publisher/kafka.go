// Package publisher streams finished audit records to Kafka so compliance
// systems consume them independently of the gateway's own store.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"treasury/internal/audit"
)

// Producer is the franz-go surface the publisher needs; narrowed for
// testability.
type Producer interface {
	ProduceSync(ctx context.Context, records ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher produces one message per audit record, keyed by
// transaction ID so all records for a transaction land on one partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

// NewClient builds a franz-go client for the given brokers.
func NewClient(brokers []string) (*kgo.Client, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return client, nil
}

func New(producer Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends the record. Failures surface to the caller; the audit
// service decides whether they are fatal (they are not - the stored record
// stands and compliance status degrades).
func (p *KafkaPublisher) Publish(ctx context.Context, record audit.Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode audit record %s: %w", record.AuditID, err)
	}

	results := p.producer.ProduceSync(ctx, &kgo.Record{
		Topic: p.topic,
		Key:   []byte(record.TransactionID),
		Value: payload,
	})
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("publish audit record %s: %w", record.AuditID, err)
	}

	if p.logger != nil {
		p.logger.DebugContext(ctx, "audit record published",
			"audit_id", record.AuditID,
			"topic", p.topic,
		)
	}
	return nil
}
