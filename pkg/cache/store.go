// Package cache provides the Redis-backed response cache for formatted
// flight data.
//
// The store is deliberately fail-soft: a Redis outage must never block the
// request path, so Get degrades to a cache miss and Set surfaces an error
// the caller treats as best-effort.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// ErrCacheMiss indicates the requested key was not found in cache.
// A degraded cache backend is also reported as a miss.
var ErrCacheMiss = errors.New("cache miss")

// Store handles caching of serialized flight responses with Redis backend.
type Store struct {
	redis  *redis.Client
	logger zerolog.Logger
}

// NewStore creates a cache store on the given Redis client.
func NewStore(redisClient *redis.Client, logger zerolog.Logger) *Store {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Store{
		redis:  redisClient,
		logger: logger,
	}
}

// Get retrieves a cached value by key. Returns ErrCacheMiss if the key does
// not exist or the backend is unreachable; backend failures are logged and
// counted but never propagated.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			CacheMisses.Inc()
			return "", ErrCacheMiss
		}
		CacheErrors.WithLabelValues("get").Inc()
		CacheMisses.Inc()
		s.logger.Warn().Err(err).Str("key", key).
			Msg("Cache backend unavailable, treating as miss")
		return "", ErrCacheMiss
	}

	CacheHits.Inc()
	return value, nil
}

// Set stores a value with the given TTL. Failures are counted and returned;
// callers decide whether a failed write matters.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, key, value, ttl).Err(); err != nil {
		CacheErrors.WithLabelValues("set").Inc()
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
