package main

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/climate-advisor/internal/domain/advisor"
	"github.com/yanqian/climate-advisor/internal/domain/climate"
	"github.com/yanqian/climate-advisor/internal/infra/config"
	"github.com/yanqian/climate-advisor/internal/infra/forecastcache"
	"github.com/yanqian/climate-advisor/internal/infra/llm/chatgpt"
	"github.com/yanqian/climate-advisor/internal/infra/llm/tokens"
	"github.com/yanqian/climate-advisor/internal/infra/openmeteo"
	"github.com/yanqian/climate-advisor/internal/infra/ratelimit"
	httpiface "github.com/yanqian/climate-advisor/internal/interface/http"
)

var errLLMNotConfigured = errors.New("llm api key not configured")

// unconfiguredChatClient lets the service start without an API key; every advisory
// then takes the fallback path.
type unconfiguredChatClient struct{}

func (unconfiguredChatClient) CreateChatCompletion(context.Context, chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	return chatgpt.ChatCompletionResponse{}, errLLMNotConfigured
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		RoleLine:    cfg.Advisor.RoleLine,
	}
}

func provideChatClient(cfg *config.Config, logger *slog.Logger) (advisor.ChatClient, error) {
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		logger.Warn("llm api key not set, advisories will use the fallback text")
		return unconfiguredChatClient{}, nil
	}
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideTokenCounter(cfg *config.Config, logger *slog.Logger) *tokens.Counter {
	return tokens.NewCounter(cfg.LLM.TokenEncoding, logger)
}

func provideForecastClient(cfg *config.Config, logger *slog.Logger) *openmeteo.ForecastClient {
	return openmeteo.NewForecastClient(cfg.Forecast.ClimateBaseURL, cfg.Forecast.Model, cfg.Forecast.Timeout, logger)
}

func provideForecastProvider(cfg *config.Config, client *openmeteo.ForecastClient, logger *slog.Logger) (climate.ForecastProvider, error) {
	return forecastcache.New(client, cfg.Forecast.CacheSize, logger)
}

func provideGeocodingClient(cfg *config.Config, logger *slog.Logger) *openmeteo.GeocodingClient {
	return openmeteo.NewGeocodingClient(cfg.Forecast.GeocodingBaseURL, cfg.Forecast.GeocodingTimeout, logger)
}

// provideRateLimiter prefers a shared Valkey counter and falls back to process memory.
func provideRateLimiter(cfg *config.Config, logger *slog.Logger) (httpiface.RateLimiter, func(), error) {
	rl := cfg.HTTP.RateLimit
	memory := ratelimit.NewMemoryLimiter(rl.RequestsPerMinute, rl.Burst)
	noop := func() {}
	addr := strings.TrimSpace(rl.Valkey.Addr)
	if !rl.Enabled || addr == "" {
		return memory, noop, nil
	}

	opt, err := ratelimit.ClientOptions(addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory limiter", "error", err)
		return memory, noop, nil
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory limiter", "error", err)
		return memory, noop, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory limiter", "error", err)
		client.Close()
		return memory, noop, nil
	}
	logger.Info("valkey rate limiter enabled", "addr", addr)
	limiter := ratelimit.NewValkeyLimiter(client, rl.Valkey.KeyPrefix, rl.RequestsPerMinute, time.Minute)
	return limiter, limiter.Close, nil
}
