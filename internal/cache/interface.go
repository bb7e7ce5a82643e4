package cache

import (
	"context"
	"time"
)

type Cache interface {
	// Get decodes the cached value into value; false means a miss.
	Get(ctx context.Context, key string, value any) (bool, error)
	// Set stores value; a ttl of zero or less uses the configured default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix = "product"
	TicketKeyPrefix  = "ticket"
)
