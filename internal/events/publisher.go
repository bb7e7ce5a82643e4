package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/segmentio/kafka-go"
)

const PurchaseCompletedType = "PurchaseCompleted"

type Publisher interface {
	PublishPurchaseCompleted(ctx context.Context, event *models.PurchaseCompletedEvent) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}

	return &KafkaPublisher{writer: writer}
}

// Messages are keyed by cart id so events for one cart stay ordered.
func (p *KafkaPublisher) PublishPurchaseCompleted(ctx context.Context, event *models.PurchaseCompletedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", PurchaseCompletedType, err)
	}

	msg := kafka.Message{
		Key:   []byte(event.CartID.String()),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(PurchaseCompletedType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", PurchaseCompletedType, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops every event. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishPurchaseCompleted(context.Context, *models.PurchaseCompletedEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }

func NewPublisher(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		return NopPublisher{}
	}

	return NewBreakerPublisher(NewKafkaPublisher(brokers, topic))
}
