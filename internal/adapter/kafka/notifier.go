// Package kafka publishes change-notification events after successful sink
// inserts, so realtime dashboard consumers don't have to poll the tables.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/gridwatch-ng/grid-data-etl/internal/domain"
)

// changeEvent is the wire shape of one insert notification.
type changeEvent struct {
	Table      string    `json:"table"`
	ID         uuid.UUID `json:"id"`
	OccurredAt time.Time `json:"occurred_at"`
	Record     any       `json:"record"`
}

// Notifier implements pipeline.Notifier on a Kafka topic.
type Notifier struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewNotifier creates a Kafka producer for the change-notification topic.
func NewNotifier(brokers []string, topic string, logger *slog.Logger) *Notifier {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireOne,
	}
	return &Notifier{writer: w, logger: logger}
}

// NotifyInsert publishes one insert event. Callers treat failures as
// best-effort; the write itself already succeeded.
func (n *Notifier) NotifyInsert(ctx context.Context, table string, id uuid.UUID, record any) error {
	msg, err := serializeChange(table, id, record)
	if err != nil {
		return err
	}
	return n.writer.WriteMessages(ctx, msg)
}

func (n *Notifier) Close() error {
	return n.writer.Close()
}

// serializeChange marshals an insert event into a Kafka message keyed by
// table so per-table ordering is preserved.
func serializeChange(table string, id uuid.UUID, record any) (kafkago.Message, error) {
	event := changeEvent{
		Table:      table,
		ID:         id,
		OccurredAt: domain.Now().UTC(),
		Record:     record,
	}
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize change event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(table),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "table", Value: []byte(table)},
			{Key: "occurred_at", Value: []byte(event.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
