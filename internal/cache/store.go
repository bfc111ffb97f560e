package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Store is the shared key/value state used for OTP codes, refresh token
// records, session generations, rate limit windows and the tenant cache.
// Implementations must make Incr, IncrWithTTL and CompareAndDelete atomic.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	TTL(ctx context.Context, key string) (time.Duration, error)

	// Incr increments the integer at key, keeping any existing expiry.
	Incr(ctx context.Context, key string) (int64, error)

	// IncrWithTTL increments key and starts its expiry on the first hit.
	// It returns the new count and the time left before the window resets.
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, time.Duration, error)

	// CompareAndDelete removes key only if it currently holds expected.
	CompareAndDelete(ctx context.Context, key, expected string) (bool, error)

	Ping(ctx context.Context) error
}
