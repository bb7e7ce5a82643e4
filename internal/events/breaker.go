package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/models"
	"github.com/sony/gobreaker/v2"
)

const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

// BreakerPublisher stops calling a failing broker for breakerOpenTimeout
// after breakerFailureThreshold consecutive errors.
type BreakerPublisher struct {
	next Publisher
	cb   *gobreaker.CircuitBreaker[struct{}]
}

func NewBreakerPublisher(next Publisher) *BreakerPublisher {
	settings := gobreaker.Settings{
		Name:        "kafka-publisher",
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	}

	return &BreakerPublisher{next: next, cb: gobreaker.NewCircuitBreaker[struct{}](settings)}
}

// PublishPurchaseCompleted returns gobreaker.ErrOpenState without calling
// the broker while the breaker is open.
func (p *BreakerPublisher) PublishPurchaseCompleted(ctx context.Context, event *models.PurchaseCompletedEvent) error {
	_, err := p.cb.Execute(func() (struct{}, error) {
		return struct{}{}, p.next.PublishPurchaseCompleted(ctx, event)
	})

	return err
}

func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}

func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
