package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterBurstAndRefill(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(60, 2)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "a")
	require.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	require.True(t, ok, "keys are limited independently")

	now = now.Add(time.Second)
	ok, _ = l.Allow(ctx, "a")
	require.True(t, ok)
}

func TestMemoryLimiterForgetsIdleVisitors(t *testing.T) {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	l := NewMemoryLimiter(1, 1)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "idle")
	now = now.Add(10 * time.Minute)
	_, _ = l.Allow(context.Background(), "fresh")

	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotContains(t, l.visitors, "idle")
}
