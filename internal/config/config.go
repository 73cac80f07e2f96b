package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the gold price service.
// Every numeric constant the resolution pipeline depends on lives here
// so that bounds and fallbacks are set deliberately, not scattered as
// magic numbers.
type Config struct {
	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string `mapstructure:"listen_addr"`

	// Upstream fetch behavior, shared by both resolvers.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	FetchRetries int           `mapstructure:"fetch_retries"`
	BackoffBase  time.Duration `mapstructure:"backoff_base"`

	// Currency pair for the conversion leg.
	BaseCurrency   string `mapstructure:"base_currency"`
	TargetCurrency string `mapstructure:"target_currency"`

	// Plausibility band for the conversion rate. A candidate outside
	// (ValidMinRate, ValidMaxRate) is rejected even if well-formed.
	ValidMinRate float64 `mapstructure:"valid_min_rate"`
	ValidMaxRate float64 `mapstructure:"valid_max_rate"`

	// Last-known-good values used when every provider fails.
	FallbackRate    float64 `mapstructure:"fallback_rate"`
	FallbackGoldUSD float64 `mapstructure:"fallback_gold_usd"`

	// Base URLs for upstream providers (configurable for testing).
	MetalsLiveBaseURL       string `mapstructure:"metals_live_base_url"`
	GoldAPIBaseURL          string `mapstructure:"gold_api_base_url"`
	SwissquoteBaseURL       string `mapstructure:"swissquote_base_url"`
	FrankfurterBaseURL      string `mapstructure:"frankfurter_base_url"`
	ERAPIBaseURL            string `mapstructure:"er_api_base_url"`
	ExchangerateHostBaseURL string `mapstructure:"exchangerate_host_base_url"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over config file
// values.
//
// Expected environment variables (all optional):
//   - GOLDRATES_LISTEN_ADDR
//   - GOLDRATES_FETCH_TIMEOUT / GOLDRATES_FETCH_RETRIES / GOLDRATES_BACKOFF_BASE
//   - GOLDRATES_BASE_CURRENCY / GOLDRATES_TARGET_CURRENCY
//   - GOLDRATES_VALID_MIN_RATE / GOLDRATES_VALID_MAX_RATE
//   - GOLDRATES_FALLBACK_RATE / GOLDRATES_FALLBACK_GOLD_USD
//   - per-provider *_BASE_URL overrides
func Load() (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("GOLDRATES")
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("listen_addr", ":8080")

	// Transport defaults
	v.SetDefault("fetch_timeout", 6*time.Second)
	v.SetDefault("fetch_retries", 2)
	v.SetDefault("backoff_base", 300*time.Millisecond)

	// Currency pair and rate plausibility band. The band and the
	// fallback rate are pair-specific; defaults cover USD->KWD.
	v.SetDefault("base_currency", "USD")
	v.SetDefault("target_currency", "KWD")
	v.SetDefault("valid_min_rate", 0.25)
	v.SetDefault("valid_max_rate", 0.40)
	v.SetDefault("fallback_rate", 0.308)
	v.SetDefault("fallback_gold_usd", 2400.0)

	// Provider defaults point at production endpoints.
	v.SetDefault("metals_live_base_url", "https://api.metals.live/v1")
	v.SetDefault("gold_api_base_url", "https://api.gold-api.com")
	v.SetDefault("swissquote_base_url", "https://forex-data-feed.swissquote.com")
	v.SetDefault("frankfurter_base_url", "https://api.frankfurter.app")
	v.SetDefault("er_api_base_url", "https://open.er-api.com")
	v.SetDefault("exchangerate_host_base_url", "https://api.exchangerate.host")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.goldrates")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	v.BindEnv("listen_addr", "GOLDRATES_LISTEN_ADDR")
	v.BindEnv("fetch_timeout", "GOLDRATES_FETCH_TIMEOUT")
	v.BindEnv("fetch_retries", "GOLDRATES_FETCH_RETRIES")
	v.BindEnv("backoff_base", "GOLDRATES_BACKOFF_BASE")
	v.BindEnv("base_currency", "GOLDRATES_BASE_CURRENCY")
	v.BindEnv("target_currency", "GOLDRATES_TARGET_CURRENCY")
	v.BindEnv("valid_min_rate", "GOLDRATES_VALID_MIN_RATE")
	v.BindEnv("valid_max_rate", "GOLDRATES_VALID_MAX_RATE")
	v.BindEnv("fallback_rate", "GOLDRATES_FALLBACK_RATE")
	v.BindEnv("fallback_gold_usd", "GOLDRATES_FALLBACK_GOLD_USD")
	v.BindEnv("metals_live_base_url", "GOLDRATES_METALS_LIVE_BASE_URL")
	v.BindEnv("gold_api_base_url", "GOLDRATES_GOLD_API_BASE_URL")
	v.BindEnv("swissquote_base_url", "GOLDRATES_SWISSQUOTE_BASE_URL")
	v.BindEnv("frankfurter_base_url", "GOLDRATES_FRANKFURTER_BASE_URL")
	v.BindEnv("er_api_base_url", "GOLDRATES_ER_API_BASE_URL")
	v.BindEnv("exchangerate_host_base_url", "GOLDRATES_EXCHANGERATE_HOST_BASE_URL")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configured constants form a usable
// resolution pipeline.
func (c *Config) Validate() error {
	if c.BaseCurrency == "" || c.TargetCurrency == "" {
		return fmt.Errorf("base_currency and target_currency must be set")
	}
	if c.ValidMinRate <= 0 || c.ValidMaxRate <= c.ValidMinRate {
		return fmt.Errorf("invalid rate band: (%g, %g)", c.ValidMinRate, c.ValidMaxRate)
	}
	if c.FallbackRate <= c.ValidMinRate || c.FallbackRate >= c.ValidMaxRate {
		return fmt.Errorf("fallback_rate %g must lie inside the rate band (%g, %g)",
			c.FallbackRate, c.ValidMinRate, c.ValidMaxRate)
	}
	if c.FallbackGoldUSD <= 0 {
		return fmt.Errorf("fallback_gold_usd must be positive, got %g", c.FallbackGoldUSD)
	}
	if c.FetchRetries < 0 {
		return fmt.Errorf("fetch_retries must be non-negative, got %d", c.FetchRetries)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}
