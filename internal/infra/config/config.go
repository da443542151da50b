package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/config.yaml"

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http" split_words:"true"`
	LLM      LLMConfig      `yaml:"llm" split_words:"true"`
	Forecast ForecastConfig `yaml:"forecast" split_words:"true"`
	Advisor  AdvisorConfig  `yaml:"advisor" split_words:"true"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address" split_words:"true"`
	ReadTimeout    time.Duration   `yaml:"readTimeout" split_words:"true"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout" split_words:"true"`
	ShutdownGrace  time.Duration   `yaml:"shutdownGrace" split_words:"true"`
	AllowedOrigins []string        `yaml:"allowedOrigins" split_words:"true"`
	RateLimit      RateLimitConfig `yaml:"rateLimit" split_words:"true"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool         `yaml:"enabled" split_words:"true"`
	RequestsPerMinute int          `yaml:"requestsPerMinute" split_words:"true"`
	Burst             int          `yaml:"burst" split_words:"true"`
	Valkey            ValkeyConfig `yaml:"valkey" split_words:"true"`
}

// ValkeyConfig points the limiter at a shared counter store. An empty address keeps
// limits in process memory.
type ValkeyConfig struct {
	Addr      string `yaml:"addr" split_words:"true"`
	KeyPrefix string `yaml:"keyPrefix" split_words:"true"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey        string        `yaml:"apiKey" split_words:"true"`
	BaseURL       string        `yaml:"baseUrl" split_words:"true"`
	Model         string        `yaml:"model" split_words:"true"`
	Temperature   float32       `yaml:"temperature" split_words:"true"`
	MaxTokens     int           `yaml:"maxTokens" split_words:"true"`
	Timeout       time.Duration `yaml:"timeout" split_words:"true"`
	TokenEncoding string        `yaml:"tokenEncoding" split_words:"true"`
}

// ForecastConfig configures the Open-Meteo clients and the forecast cache.
type ForecastConfig struct {
	ClimateBaseURL   string        `yaml:"climateBaseUrl" split_words:"true"`
	GeocodingBaseURL string        `yaml:"geocodingBaseUrl" split_words:"true"`
	Model            string        `yaml:"model" split_words:"true"`
	Timeout          time.Duration `yaml:"timeout" split_words:"true"`
	GeocodingTimeout time.Duration `yaml:"geocodingTimeout" split_words:"true"`
	CacheSize        int           `yaml:"cacheSize" split_words:"true"`
}

// AdvisorConfig tunes the advisory prompt.
type AdvisorConfig struct {
	RoleLine string `yaml:"roleLine" split_words:"true"`
}

// Load reads configuration from a YAML file, an optional .env file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat(defaultConfigPath); err == nil {
		if err := hydrateFromFile(cfg, defaultConfigPath); err != nil {
			return nil, err
		}
	}

	if err := loadDotEnv(); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// loadDotEnv exports variables from ENV_FILE (or ./.env) without overriding the
// process environment. A missing default file is not an error.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":5000",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   120 * time.Second,
			ShutdownGrace:  30 * time.Second,
			AllowedOrigins: []string{"*"},
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
				Valkey: ValkeyConfig{
					KeyPrefix: "climate-advisor:ratelimit",
				},
			},
		},
		LLM: LLMConfig{
			Model:         "gpt-4o-mini",
			Temperature:   0.7,
			MaxTokens:     400,
			Timeout:       60 * time.Second,
			TokenEncoding: "cl100k_base",
		},
		Forecast: ForecastConfig{
			ClimateBaseURL:   "https://climate-api.open-meteo.com/v1/climate",
			GeocodingBaseURL: "https://geocoding-api.open-meteo.com/v1/search",
			Model:            "MRI_AGCM3_2_S",
			Timeout:          30 * time.Second,
			GeocodingTimeout: 10 * time.Second,
			CacheSize:        100,
		},
		Advisor: AdvisorConfig{
			RoleLine: "You are a certified energy advisor.",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.ReadTimeout <= 0 || c.HTTP.WriteTimeout <= 0 {
		return errors.New("http timeouts must be positive")
	}
	if c.HTTP.ShutdownGrace < 0 {
		return errors.New("http.shutdownGrace cannot be negative")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}
	if c.LLM.Timeout <= 0 {
		return errors.New("llm.timeout must be positive")
	}
	if strings.TrimSpace(c.Forecast.ClimateBaseURL) == "" {
		return errors.New("forecast.climateBaseUrl cannot be empty")
	}
	if strings.TrimSpace(c.Forecast.GeocodingBaseURL) == "" {
		return errors.New("forecast.geocodingBaseUrl cannot be empty")
	}
	if c.Forecast.Timeout <= 0 || c.Forecast.GeocodingTimeout <= 0 {
		return errors.New("forecast timeouts must be positive")
	}
	if c.Forecast.CacheSize <= 0 {
		return errors.New("forecast.cacheSize must be positive")
	}
	if strings.TrimSpace(c.Advisor.RoleLine) == "" {
		return errors.New("advisor.roleLine cannot be empty")
	}
	return nil
}
