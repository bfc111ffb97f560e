package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-saas/internal/cache"
)

func TestLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	store := cache.NewMemoryStore().WithClock(func() time.Time { return now })
	l := New(store, "user", 3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		res, err := l.Allow(ctx, "p1")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 3-i, res.Remaining)
	}

	res, err := l.Allow(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Minute, res.ResetIn)

	res, err = l.Allow(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	now = now.Add(time.Minute)
	res, err = l.Allow(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}
