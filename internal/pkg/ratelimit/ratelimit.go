// Package ratelimit provides a Redis-backed fixed-window request limiter.
//
// It gates abuse-sensitive endpoints (anything that triggers an outbound
// email) by counting requests per key within a rolling series of fixed
// windows.
package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 10
	defaultWindow = time.Minute
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow reports whether the request is within quota. The second return
	// carries infrastructure errors; callers decide whether to fail open.
	Allow(ctx context.Context, key string) (bool, error)
}

// FixedWindow implements Limiter using a Redis counter per key per window.
type FixedWindow struct {
	client *redis.Client
	prefix string
	limit  int64
	window time.Duration
}

// Option customizes a FixedWindow.
type Option func(*FixedWindow)

// WithLimit sets the maximum number of requests per window.
func WithLimit(limit int64) Option {
	return func(fw *FixedWindow) {
		if limit > 0 {
			fw.limit = limit
		}
	}
}

// WithWindow sets the window duration.
func WithWindow(window time.Duration) Option {
	return func(fw *FixedWindow) {
		if window > 0 {
			fw.window = window
		}
	}
}

// New constructs a FixedWindow limiter on the given Redis client.
func New(client *redis.Client, opts ...Option) *FixedWindow {
	fw := &FixedWindow{
		client: client,
		prefix: "ratelimit:",
		limit:  defaultLimit,
		window: defaultWindow,
	}

	for _, opt := range opts {
		opt(fw)
	}

	return fw
}

// Allow increments the counter for key and reports whether the count is
// still within the limit. The key expires with the window, so a quota
// resets at a window boundary rather than sliding.
func (fw *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	fk := fw.prefix + key

	pipe := fw.client.TxPipeline()
	incr := pipe.Incr(ctx, fk)
	pipe.ExpireNX(ctx, fk, fw.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return incr.Val() <= fw.limit, nil
}
