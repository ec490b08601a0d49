package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopkit/cart-service/internal/domain"
	"go.uber.org/zap"
)

// CartEventProducer publishes cart events to Kafka, keyed by customer so
// events for one customer stay ordered within a partition.
type CartEventProducer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewCartEventProducer(brokers string, topic string, logger *zap.Logger) *CartEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 5 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
	return &CartEventProducer{
		writer: writer,
		logger: logger,
	}
}

func (p *CartEventProducer) Publish(ctx context.Context, event domain.CartEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal cart event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.CustomerID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write cart event: %w", err)
	}

	p.logger.Debug("Cart event published",
		zap.String("event_id", event.EventID),
		zap.String("type", event.Type))
	return nil
}

func (p *CartEventProducer) Close() error {
	return p.writer.Close()
}

// NoopPublisher is used when event publishing is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event domain.CartEvent) error {
	return nil
}
