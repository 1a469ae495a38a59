package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Places    PlacesConfig
	LocalRank LocalRankConfig
	LLM       LLMConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Revenue   RevenueConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// PlacesConfig holds places API configuration
type PlacesConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// LocalRankConfig holds local-pack ranking API configuration.
// An empty API key disables rank lookups; reports degrade with a
// warning instead of failing.
type LocalRankConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// LLMConfig holds deep-analysis model configuration. An empty API key
// disables the model and the analysis endpoint returns a placeholder.
type LLMConfig struct {
	APIKey        string `mapstructure:"api_key"`
	BaseURL       string `mapstructure:"base_url"`
	Model         string `mapstructure:"model"`
	FallbackModel string `mapstructure:"fallback_model"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" is the only backend for now
	TTL  time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// RevenueConfig holds the assumptions behind the revenue-loss estimate
type RevenueConfig struct {
	MonthlySearchVolume int     `mapstructure:"monthly_search_volume"`
	CTR                 float64 `mapstructure:"ctr"`
	ConversionRate      float64 `mapstructure:"conversion_rate"`
	AOV                 float64 `mapstructure:"aov"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/platepulse/")

	// Environment variable settings
	v.SetEnvPrefix("PLATEPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Places defaults. API keys default to empty so viper can pick
	// them up from the environment during Unmarshal.
	v.SetDefault("places.api_key", "")
	v.SetDefault("places.base_url", "https://maps.googleapis.com/maps/api/place")

	// Local rank defaults
	v.SetDefault("localrank.api_key", "")
	v.SetDefault("localrank.base_url", "https://serpapi.com")

	// LLM defaults
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.fallback_model", "gpt-4o")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "6h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 10)

	// Revenue model defaults
	v.SetDefault("revenue.monthly_search_volume", 1000)
	v.SetDefault("revenue.ctr", 0.33)
	v.SetDefault("revenue.conversion_rate", 0.10)
	v.SetDefault("revenue.aov", 40.0)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Places.APIKey == "" {
		return fmt.Errorf("places API key is required (set PLATEPULSE_PLACES_API_KEY)")
	}

	if config.Cache.Type != "memory" {
		return fmt.Errorf("cache type must be 'memory', got: %s", config.Cache.Type)
	}

	if config.Revenue.CTR < 0 || config.Revenue.CTR > 1 {
		return fmt.Errorf("revenue CTR must be between 0 and 1, got: %f", config.Revenue.CTR)
	}

	if config.Revenue.ConversionRate < 0 || config.Revenue.ConversionRate > 1 {
		return fmt.Errorf("revenue conversion rate must be between 0 and 1, got: %f", config.Revenue.ConversionRate)
	}

	return nil
}
