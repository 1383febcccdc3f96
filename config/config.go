package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Filters   FiltersConfig   `mapstructure:"filters"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig selects where the product dataset comes from
type CatalogConfig struct {
	Source         string        `mapstructure:"source"` // "embedded", "file" or "remote"
	Path           string        `mapstructure:"path"`
	RemoteURL      string        `mapstructure:"remote_url"`
	RetrievalDelay time.Duration `mapstructure:"retrieval_delay"`
}

// FiltersConfig tunes the shared filter session
type FiltersConfig struct {
	DebounceDelay time.Duration `mapstructure:"debounce_delay"`
	DiscardStale  bool          `mapstructure:"discard_stale"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
	Burst int `mapstructure:"burst"`
}

// IsDevelopment reports whether verbose debug logging should be on
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfview/")

	// SHELFVIEW_CATALOG_REMOTE_URL -> catalog.remote_url
	v.SetEnvPrefix("SHELFVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Catalog defaults
	v.SetDefault("catalog.source", "embedded")
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.remote_url", "")
	v.SetDefault("catalog.retrieval_delay", "1s")

	// Filter session defaults
	v.SetDefault("filters.debounce_delay", "500ms")
	v.SetDefault("filters.discard_stale", true)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "1h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case "embedded":
	case "file":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required when source is 'file' (set SHELFVIEW_CATALOG_PATH)")
		}
	case "remote":
		if config.Catalog.RemoteURL == "" {
			return fmt.Errorf("catalog remote URL is required when source is 'remote' (set SHELFVIEW_CATALOG_REMOTE_URL)")
		}
	default:
		return fmt.Errorf("catalog source must be 'embedded', 'file' or 'remote', got: %s", config.Catalog.Source)
	}

	if config.Catalog.RetrievalDelay < 0 {
		return fmt.Errorf("catalog retrieval delay must not be negative, got: %s", config.Catalog.RetrievalDelay)
	}
	if config.Filters.DebounceDelay < 0 {
		return fmt.Errorf("filters debounce delay must not be negative, got: %s", config.Filters.DebounceDelay)
	}

	if config.Cache.Type != "memory" && config.Cache.Type != "redis" {
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits must not be negative")
	}
	if config.RateLimit.PerIP > 0 && config.RateLimit.Burst == 0 {
		return fmt.Errorf("rate limit burst must be positive when per_ip is set")
	}

	return nil
}
