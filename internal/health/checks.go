package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/cart-checkout-service/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"github.com/segmentio/kafka-go"
)

const (
	ServiceName    = "cart-checkout-service"
	ServiceVersion = "1.0.0"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
	}

	// events are best-effort, so a broker outage degrades rather than fails
	if len(cfg.Kafka.Brokers) > 0 {
		checks = append(checks, health.Config{
			Name:      "kafka",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check:     KafkaCheck(cfg.Kafka.Brokers),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    ServiceName,
			Version: ServiceVersion,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// KafkaCheck passes when any broker accepts a connection.
func KafkaCheck(brokers []string) health.CheckFunc {
	return func(ctx context.Context) error {
		var lastErr error

		for _, broker := range brokers {
			conn, err := kafka.DialContext(ctx, "tcp", broker)
			if err != nil {
				lastErr = err
				continue
			}

			return conn.Close()
		}

		return fmt.Errorf("no kafka broker reachable: %w", lastErr)
	}
}
