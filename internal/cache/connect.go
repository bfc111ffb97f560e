package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// Connect returns a pinged Redis store, or a MemoryStore when no address is
// configured. The memory fallback keeps session generations in process, so a
// restart forgets logouts and tokens revoked before it validate again.
func Connect(ctx context.Context, opts RedisOptions, log *zap.Logger) (Store, error) {
	if opts.Addr == "" {
		log.Warn("REDIS_ADDR not set; using in-memory store",
			zap.String("consequence", "token revocation, OTP codes and rate limits are per instance and reset on restart"),
		)
		return NewMemoryStore(), nil
	}

	store := NewRedisStore(NewRedisClient(opts.Addr, opts.Password, opts.DB))
	if err := store.Ping(ctx); err != nil {
		return nil, fmt.Errorf("redis %s: %w", opts.Addr, err)
	}
	return store, nil
}
