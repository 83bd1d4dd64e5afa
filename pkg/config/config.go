// Package config holds the process configuration as an explicit struct.
// Components receive it (or slices of it) through their constructors;
// nothing reads the environment after startup.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is the full configuration surface of the proxy.
type Config struct {
	// UpstreamURL is the flight-data provider endpoint.
	UpstreamURL string

	// AccessKey is the provider credential.
	AccessKey string

	// RequestTimeout bounds each provider request.
	RequestTimeout time.Duration

	// RateLimitCeiling is the allowed requests per client per minute.
	RateLimitCeiling int

	// RateLimitWindow is the rate counter TTL.
	RateLimitWindow time.Duration

	// CacheTTL is how long formatted responses stay cached.
	CacheTTL time.Duration

	// RedisURL is the address of the cache/rate-counter store.
	RedisURL string

	// Port is the HTTP listen port.
	Port string

	// LogLevel and LogPretty configure the global logger.
	LogLevel  string
	LogPretty bool
}

// Default returns the configuration defaults, matching the provider's
// documented limits.
func Default() Config {
	return Config{
		UpstreamURL:      "https://api.aviationstack.com/v1/flights",
		RequestTimeout:   10 * time.Second,
		RateLimitCeiling: 100,
		RateLimitWindow:  60 * time.Second,
		CacheTTL:         30 * time.Second,
		RedisURL:         "localhost:6379",
		Port:             "8080",
		LogLevel:         "info",
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for anything unset.
func FromEnv() Config {
	cfg := Default()

	cfg.UpstreamURL = getEnv("AVIATION_API_URL", cfg.UpstreamURL)
	cfg.AccessKey = getEnv("AVIATION_STACK_API_KEY", cfg.AccessKey)
	cfg.RequestTimeout = getEnvSeconds("API_TIMEOUT", cfg.RequestTimeout)
	cfg.RateLimitCeiling = getEnvInt("RATE_LIMIT_REQUESTS", cfg.RateLimitCeiling)
	cfg.RateLimitWindow = getEnvSeconds("RATE_LIMIT_WINDOW", cfg.RateLimitWindow)
	cfg.CacheTTL = getEnvSeconds("CACHE_TTL", cfg.CacheTTL)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.LogPretty = getEnv("LOG_PRETTY", "") == "true"

	return cfg
}

// Validate checks the configuration at startup, before any component is
// constructed.
func (c Config) Validate() error {
	if c.UpstreamURL == "" {
		return fmt.Errorf("upstream URL is required")
	}
	if c.AccessKey == "" {
		return fmt.Errorf("AVIATION_STACK_API_KEY is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive (got %v)", c.RequestTimeout)
	}
	if c.RateLimitCeiling <= 0 {
		return fmt.Errorf("rate limit ceiling must be positive (got %d)", c.RateLimitCeiling)
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate limit window must be positive (got %v)", c.RateLimitWindow)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("cache TTL must be positive (got %v)", c.CacheTTL)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return time.Duration(n) * time.Second
}
