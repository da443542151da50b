package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/climate-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/climate-advisor/internal/infra/config"
	"github.com/yanqian/climate-advisor/internal/infra/ratelimit"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideChatClientWithoutKey(t *testing.T) {
	cfg := &config.Config{}
	client, err := provideChatClient(cfg, testLogger())
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), chatgpt.ChatCompletionRequest{})
	require.ErrorIs(t, err, errLLMNotConfigured)
}

func TestProvideRateLimiterDefaultsToMemory(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{RateLimit: config.RateLimitConfig{Enabled: true, RequestsPerMinute: 10, Burst: 2}}}
	limiter, cleanup, err := provideRateLimiter(cfg, testLogger())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &ratelimit.MemoryLimiter{}, limiter)
}

func TestProvideRateLimiterFallsBackWhenValkeyUnreachable(t *testing.T) {
	cfg := &config.Config{HTTP: config.HTTPConfig{RateLimit: config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 10,
		Burst:             2,
		Valkey:            config.ValkeyConfig{Addr: "127.0.0.1:1"},
	}}}
	limiter, cleanup, err := provideRateLimiter(cfg, testLogger())
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &ratelimit.MemoryLimiter{}, limiter)
}
