package utils

import (
	"context"
	"time"
)

const (
	DefaultDBTimeout = 5 * time.Second

	// SideEffectTimeout bounds work that runs after a transaction has committed.
	SideEffectTimeout = 5 * time.Second
)

func WithDBTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, DefaultDBTimeout)
}

// WithDetachedTimeout keeps the values of ctx (logger, trace span) but not its
// cancellation, and bounds the result by d.
func WithDetachedTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), d)
}
