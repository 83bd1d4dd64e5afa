package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.RateLimitCeiling != 100 {
		t.Errorf("RateLimitCeiling = %d, want 100", cfg.RateLimitCeiling)
	}
	if cfg.RateLimitWindow != 60*time.Second {
		t.Errorf("RateLimitWindow = %v, want 60s", cfg.RateLimitWindow)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("AVIATION_STACK_API_KEY", "secret")
	t.Setenv("AVIATION_API_URL", "https://example.com/v1/flights")
	t.Setenv("API_TIMEOUT", "3")
	t.Setenv("RATE_LIMIT_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "120")
	t.Setenv("CACHE_TTL", "5")
	t.Setenv("REDIS_URL", "redis.internal:6379")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_PRETTY", "true")

	cfg := FromEnv()

	if cfg.AccessKey != "secret" {
		t.Errorf("AccessKey = %q, want secret", cfg.AccessKey)
	}
	if cfg.UpstreamURL != "https://example.com/v1/flights" {
		t.Errorf("UpstreamURL = %q", cfg.UpstreamURL)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v, want 3s", cfg.RequestTimeout)
	}
	if cfg.RateLimitCeiling != 10 {
		t.Errorf("RateLimitCeiling = %d, want 10", cfg.RateLimitCeiling)
	}
	if cfg.RateLimitWindow != 120*time.Second {
		t.Errorf("RateLimitWindow = %v, want 120s", cfg.RateLimitWindow)
	}
	if cfg.CacheTTL != 5*time.Second {
		t.Errorf("CacheTTL = %v, want 5s", cfg.CacheTTL)
	}
	if cfg.RedisURL != "redis.internal:6379" {
		t.Errorf("RedisURL = %q", cfg.RedisURL)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if !cfg.LogPretty {
		t.Error("LogPretty = false, want true")
	}
}

func TestFromEnv_IgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("API_TIMEOUT", "soon")
	t.Setenv("RATE_LIMIT_REQUESTS", "many")

	cfg := FromEnv()

	if cfg.RequestTimeout != Default().RequestTimeout {
		t.Errorf("RequestTimeout = %v, want default on parse failure", cfg.RequestTimeout)
	}
	if cfg.RateLimitCeiling != Default().RateLimitCeiling {
		t.Errorf("RateLimitCeiling = %d, want default on parse failure", cfg.RateLimitCeiling)
	}
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.AccessKey = "secret"

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing access key", func(c *Config) { c.AccessKey = "" }, true},
		{"missing upstream URL", func(c *Config) { c.UpstreamURL = "" }, true},
		{"zero timeout", func(c *Config) { c.RequestTimeout = 0 }, true},
		{"zero ceiling", func(c *Config) { c.RateLimitCeiling = 0 }, true},
		{"negative window", func(c *Config) { c.RateLimitWindow = -time.Second }, true},
		{"zero cache TTL", func(c *Config) { c.CacheTTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}
