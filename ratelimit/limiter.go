// Package ratelimit implements a fixed-window request limiter over a
// pluggable counter store.
package ratelimit

import (
	"context"
	"fmt"
	"time"
)

type Store interface {
	// IncrementWindow bumps the counter for key, starting a window of
	// the given length on first hit, and returns the new count plus the
	// time left in the window.
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type Limiter struct {
	store  Store
	limit  int
	window time.Duration
}

func NewLimiter(store Store, limit int, window time.Duration) *Limiter {
	if limit < 0 {
		limit = 0
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Limiter{store: store, limit: limit, window: window}
}

// Allow reports whether the request under key fits in the current
// window, and if not, how long the caller should wait.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.store == nil {
		return false, 0, fmt.Errorf("rate limiter store is nil")
	}
	if l.limit == 0 {
		return true, 0, nil
	}

	count, ttl, err := l.store.IncrementWindow(ctx, "rate:"+key, l.window)
	if err != nil {
		return false, 0, err
	}
	if count > int64(l.limit) {
		if ttl <= 0 {
			ttl = time.Second
		}
		return false, ttl, nil
	}
	return true, 0, nil
}
