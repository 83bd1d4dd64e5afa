// Package ratelimit implements the per-client request ceiling using a
// sliding-minute counter in Redis.
//
// Counters are keyed by client address and UTC minute bucket, so the limit
// is shared by every process pointing at the same Redis. When Redis is
// unreachable the limiter fails open: serving traffic takes priority over
// strict enforcement.
package ratelimit

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Prometheus metrics for rate limit decisions.
var (
	rateLimitBlocksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_rate_limit_blocks_total",
		Help: "Total number of requests blocked by the per-client rate limit",
	})

	rateLimitFailOpenTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flight_rate_limit_fail_open_total",
		Help: "Total number of requests allowed because the counter store was unavailable",
	})
)

// keyPrefix namespaces rate counters in the shared Redis instance.
const keyPrefix = "rate_limit:"

// bucketLayout formats the UTC minute bucket, e.g. "2025-01-04-11-42".
const bucketLayout = "2006-01-02-15-04"

// Limiter counts requests per client address and minute bucket.
type Limiter struct {
	redis   *redis.Client
	ceiling int64
	window  time.Duration
	logger  zerolog.Logger
	now     func() time.Time
}

// NewLimiter creates a limiter allowing ceiling requests per client per
// minute. The window is the counter TTL (normally one minute).
func NewLimiter(redisClient *redis.Client, ceiling int, window time.Duration, logger zerolog.Logger) *Limiter {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	return &Limiter{
		redis:   redisClient,
		ceiling: int64(ceiling),
		window:  window,
		logger:  logger,
		now:     time.Now,
	}
}

// BucketKey returns the counter key for a client address at time t.
//
// Example:
//
//	rate_limit:203.0.113.7:2025-01-04-11-42
func BucketKey(clientAddr string, t time.Time) string {
	return keyPrefix + clientAddr + ":" + t.UTC().Format(bucketLayout)
}

// Allow increments the counter for clientAddr's current minute bucket and
// reports whether the request is within the ceiling. The TTL is refreshed
// on every increment so abandoned buckets expire on their own.
//
// A counter store failure is converted to an allow at this boundary
// (fail open), logged and counted, and never surfaced to the caller.
func (l *Limiter) Allow(ctx context.Context, clientAddr string) bool {
	key := BucketKey(clientAddr, l.now())

	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		rateLimitFailOpenTotal.Inc()
		l.logger.Warn().Err(err).Str("client", clientAddr).
			Msg("Rate counter store unavailable, failing open")
		return true
	}

	count := incr.Val()
	if count > l.ceiling {
		rateLimitBlocksTotal.Inc()
		l.logger.Warn().
			Str("client", clientAddr).
			Int64("count", count).
			Int64("ceiling", l.ceiling).
			Msg("Request blocked by rate limit")
		return false
	}

	return true
}
