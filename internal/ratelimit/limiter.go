package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/barbershop-saas/internal/cache"
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// Limiter is a fixed-window counter per key kept in the shared store, so all
// instances see the same window.
type Limiter struct {
	store  cache.Store
	prefix string
	max    int
	window time.Duration
}

func New(store cache.Store, prefix string, max int, window time.Duration) *Limiter {
	return &Limiter{store: store, prefix: prefix, max: max, window: window}
}

func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	n, left, err := l.store.IncrWithTTL(ctx, fmt.Sprintf("ratelimit:%s:%s", l.prefix, key), l.window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.max - int(n)
	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:   n <= int64(l.max),
		Limit:     l.max,
		Remaining: remaining,
		ResetIn:   left,
	}, nil
}
