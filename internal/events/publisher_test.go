package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}

	w.msgs = append(w.msgs, msgs...)

	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sampleEvent() *models.PurchaseCompletedEvent {
	return &models.PurchaseCompletedEvent{
		CartID:     uuid.New(),
		TicketID:   uuid.New(),
		TicketCode: "k3j9z0q1a",
		Purchaser:  "buyer@example.com",
		Amount:     decimal.NewFromInt(20),
		Items:      []models.FulfilledItem{{ProductID: uuid.New(), Title: "A", Quantity: 2, UnitPrice: decimal.NewFromInt(10)}},
		OccurredAt: time.Now().UTC(),
	}
}

func TestKafkaPublisher(t *testing.T) {
	t.Run("Success - Keyed by cart", func(t *testing.T) {
		// Arrange
		writer := &fakeWriter{}
		publisher := &KafkaPublisher{writer: writer}
		event := sampleEvent()

		// Act
		err := publisher.PublishPurchaseCompleted(t.Context(), event)

		// Assert
		require.NoError(t, err)
		require.Len(t, writer.msgs, 1)

		msg := writer.msgs[0]
		assert.Equal(t, event.CartID.String(), string(msg.Key))
		assert.Equal(t, "event-type", msg.Headers[0].Key)
		assert.Equal(t, PurchaseCompletedType, string(msg.Headers[0].Value))

		var decoded models.PurchaseCompletedEvent
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, event.TicketCode, decoded.TicketCode)
		assert.True(t, event.Amount.Equal(decoded.Amount))
	})

	t.Run("Failure - Writer Error", func(t *testing.T) {
		brokerErr := errors.New("leader not available")
		publisher := &KafkaPublisher{writer: &fakeWriter{err: brokerErr}}

		err := publisher.PublishPurchaseCompleted(t.Context(), sampleEvent())

		require.ErrorIs(t, err, brokerErr)
	})

	t.Run("Close", func(t *testing.T) {
		writer := &fakeWriter{}
		publisher := &KafkaPublisher{writer: writer}

		require.NoError(t, publisher.Close())
		assert.True(t, writer.closed)
	})
}

func TestNewPublisher(t *testing.T) {
	t.Run("No brokers", func(t *testing.T) {
		publisher := NewPublisher(nil, "purchases")

		assert.IsType(t, NopPublisher{}, publisher)
		assert.NoError(t, publisher.PublishPurchaseCompleted(t.Context(), sampleEvent()))
		assert.NoError(t, publisher.Close())
	})

	t.Run("With brokers", func(t *testing.T) {
		publisher := NewPublisher([]string{"localhost:9092"}, "purchases")

		require.IsType(t, &BreakerPublisher{}, publisher)
		assert.IsType(t, &KafkaPublisher{}, publisher.(*BreakerPublisher).next)
		assert.NoError(t, publisher.Close())
	})
}
