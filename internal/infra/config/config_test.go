package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5000", cfg.HTTP.Address)
	require.Equal(t, 100, cfg.Forecast.CacheSize)
	require.Equal(t, 30*time.Second, cfg.Forecast.Timeout)
	require.Equal(t, 10*time.Second, cfg.Forecast.GeocodingTimeout)
	require.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	require.Equal(t, "MRI_AGCM3_2_S", cfg.Forecast.Model)
	require.Empty(t, cfg.HTTP.RateLimit.Valkey.Addr)
}

func TestLoadFileThenEnv(t *testing.T) {
	path := writeFile(t, "config.yaml", `
http:
  address: ":9000"
  rateLimit:
    enabled: true
    requestsPerMinute: 5
    burst: 2
llm:
  model: "gpt-file"
  timeout: 15s
forecast:
  cacheSize: 7
`)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("ENV_FILE", "")
	t.Setenv("LLM_MODEL", "gpt-env")
	t.Setenv("FORECAST_CACHE_SIZE", "42")
	t.Setenv("HTTP_RATE_LIMIT_VALKEY_ADDR", "localhost:6379")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.HTTP.Address)
	require.Equal(t, 5, cfg.HTTP.RateLimit.RequestsPerMinute)
	require.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	require.Equal(t, "gpt-env", cfg.LLM.Model)
	require.Equal(t, 42, cfg.Forecast.CacheSize)
	require.Equal(t, "localhost:6379", cfg.HTTP.RateLimit.Valkey.Addr)
	require.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.HTTP.AllowedOrigins)
}

func TestLoadIgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("MODEL", "some-other-model")
	t.Setenv("TIMEOUT", "1s")
	t.Setenv("ADDR", "cache:6379")
	t.Setenv("API_KEY", "sk-unrelated")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "MRI_AGCM3_2_S", cfg.Forecast.Model)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, 30*time.Second, cfg.Forecast.Timeout)
	require.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	require.Empty(t, cfg.HTTP.RateLimit.Valkey.Addr)
	require.Empty(t, cfg.LLM.APIKey)
}

func TestLoadSplitsFieldNamesIntoKeys(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("FORECAST_MODEL", "EC_Earth3P_HR")
	t.Setenv("LLM_API_KEY", "sk-test")
	t.Setenv("HTTP_RATE_LIMIT_REQUESTS_PER_MINUTE", "12")
	t.Setenv("FORECAST_GEOCODING_TIMEOUT", "4s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "EC_Earth3P_HR", cfg.Forecast.Model)
	require.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	require.Equal(t, "sk-test", cfg.LLM.APIKey)
	require.Equal(t, 12, cfg.HTTP.RateLimit.RequestsPerMinute)
	require.Equal(t, 4*time.Second, cfg.Forecast.GeocodingTimeout)
}

func TestLoadDotEnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "ADVISOR_ROLE_LINE=You are a grid operator.\n")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", envFile)
	t.Cleanup(func() { os.Unsetenv("ADVISOR_ROLE_LINE") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "You are a grid operator.", cfg.Advisor.RoleLine)
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("ENV_FILE", "")
	t.Setenv("FORECAST_CACHE_SIZE", "0")

	_, err := Load()
	require.ErrorContains(t, err, "forecast.cacheSize")
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty address":   func(c *Config) { c.HTTP.Address = "" },
		"rate limit rpm":  func(c *Config) { c.HTTP.RateLimit.RequestsPerMinute = 0 },
		"temperature":     func(c *Config) { c.LLM.Temperature = 3 },
		"llm timeout":     func(c *Config) { c.LLM.Timeout = 0 },
		"climate url":     func(c *Config) { c.Forecast.ClimateBaseURL = " " },
		"forecast period": func(c *Config) { c.Forecast.Timeout = 0 },
		"role line":       func(c *Config) { c.Advisor.RoleLine = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := defaultConfig()
			mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}
