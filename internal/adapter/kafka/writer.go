// Package kafka publishes advisory reports to a Kafka topic for downstream
// consumers. Publishing is a side channel: the advisory service treats
// failures here as log-and-continue, never as request failures.
package kafka

import (
	"context"
	"log/slog"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/chriswiesanjaya/sun-protection/internal/config"
	"github.com/chriswiesanjaya/sun-protection/internal/domain"
)

// Writer produces advisory events to a Kafka topic.
// It implements advisory.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured advisory topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes the report and writes it to the advisory topic.
func (w *Writer) Publish(ctx context.Context, report domain.Report) error {
	msg, err := toMessage(report)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// toMessage converts a report's wire form into a Kafka message. Header
// order is fixed so consumers relying on positional access stay stable.
func toMessage(report domain.Report) (kafkago.Message, error) {
	event, err := domain.SerializeReport(report)
	if err != nil {
		return kafkago.Message{}, err
	}
	return kafkago.Message{
		Key:   event.Key,
		Value: event.Value,
		Headers: []kafkago.Header{
			{Key: "risk_tier", Value: []byte(event.Headers["risk_tier"])},
			{Key: "evaluated_at", Value: []byte(event.Headers["evaluated_at"])},
		},
	}, nil
}
