// Package resolver composes the request-resolution pipeline: rate limit,
// cache lookup, identifier validation, provider fetch, normalization, and
// cache write-through.
//
// Concurrent resolutions share no state beyond the external Redis store;
// there is no single-flight deduplication of identical lookups, so two
// concurrent misses for the same flight may both hit the provider. That is
// acceptable for a 30-second cache and could be added later if provider
// quota becomes tight.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/flightwatch/flight-proxy/pkg/cache"
	"github.com/flightwatch/flight-proxy/pkg/flight"
	"github.com/flightwatch/flight-proxy/pkg/upstream"
)

// Prometheus metrics for resolution outcomes.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_requests_total",
		Help: "Total flight resolutions by outcome",
	}, []string{"status"})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_resolve_duration_seconds",
		Help:    "End-to-end resolution duration in seconds",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10},
	})
)

// Status reports whether a response came from cache.
type Status string

const (
	// StatusHit means the response was served from cache.
	StatusHit Status = "HIT"

	// StatusMiss means the response was fetched from the provider.
	StatusMiss Status = "MISS"
)

// CacheStore is the cache dependency. Get returns cache.ErrCacheMiss for
// absent keys; implementations degrade backend failures to misses.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Limiter gates requests per client address. Implementations fail open.
type Limiter interface {
	Allow(ctx context.Context, clientAddr string) bool
}

// Fetcher retrieves a raw flight record from the provider. A nil record
// with nil error means the flight does not exist.
type Fetcher interface {
	FetchRaw(ctx context.Context, identifier string) (flight.RawRecord, error)
}

// DefaultCacheTTL is how long a formatted response stays cached.
const DefaultCacheTTL = 30 * time.Second

// Config holds the resolver's injected dependencies. Cache, limiter, and
// upstream client lifetimes belong to the caller; the resolver only
// orchestrates.
type Config struct {
	Cache    CacheStore
	Limiter  Limiter
	Upstream Fetcher
	CacheTTL time.Duration
	Logger   zerolog.Logger
}

// Resolver implements the end-to-end resolution policy.
type Resolver struct {
	cache    CacheStore
	limiter  Limiter
	upstream Fetcher
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// New creates a resolver.
func New(cfg Config) (*Resolver, error) {
	if cfg.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if cfg.Limiter == nil {
		return nil, fmt.Errorf("rate limiter is required")
	}
	if cfg.Upstream == nil {
		return nil, fmt.Errorf("upstream client is required")
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	return &Resolver{
		cache:    cfg.Cache,
		limiter:  cfg.Limiter,
		upstream: cfg.Upstream,
		cacheTTL: cfg.CacheTTL,
		logger:   cfg.Logger,
	}, nil
}

// Resolve runs the pipeline for one request. The rate limit is charged
// exactly once, before anything else, so a blocked request never touches
// the cache, validator, or provider, and a cache hit still consumes quota.
func (r *Resolver) Resolve(ctx context.Context, identifier, clientAddr string) (*flight.Data, Status, error) {
	start := time.Now()
	defer func() {
		resolveDuration.Observe(time.Since(start).Seconds())
	}()

	if !r.limiter.Allow(ctx, clientAddr) {
		requestsTotal.WithLabelValues("rate_limited").Inc()
		return nil, "", &Error{
			Kind:    KindRateLimited,
			Message: "Rate limit exceeded. Please try again in a minute.",
		}
	}

	ident := flight.NormalizeIdentifier(identifier)
	key := cache.Key(ident)

	if cached, err := r.cache.Get(ctx, key); err == nil {
		var data flight.Data
		if err := json.Unmarshal([]byte(cached), &data); err == nil {
			requestsTotal.WithLabelValues("cache_hit").Inc()
			return &data, StatusHit, nil
		}
		// Corrupt entry: fall through and refetch. The write below
		// replaces it.
		r.logger.Warn().Str("key", key).Msg("Discarding undecodable cache entry")
	}

	if !flight.ValidIdentifier(ident) {
		requestsTotal.WithLabelValues("invalid_format").Inc()
		return nil, "", &Error{
			Kind:    KindInvalidFormat,
			Message: "Invalid ICAO flight identifier format",
		}
	}

	raw, err := r.upstream.FetchRaw(ctx, ident)
	if err != nil {
		var ue *upstream.Error
		if errors.As(err, &ue) && ue.Kind == upstream.KindRateLimited {
			requestsTotal.WithLabelValues("rate_limited").Inc()
			return nil, "", &Error{
				Kind:    KindRateLimited,
				Message: ue.Message,
				Err:     err,
			}
		}
		requestsTotal.WithLabelValues("error").Inc()
		return nil, "", &Error{
			Kind:    KindUnavailable,
			Message: "Service temporarily unavailable",
			Err:     err,
		}
	}
	if raw == nil {
		requestsTotal.WithLabelValues("not_found").Inc()
		return nil, "", &Error{
			Kind:    KindNotFound,
			Message: "Flight not found",
		}
	}

	data, err := flight.Format(raw)
	if err != nil {
		requestsTotal.WithLabelValues("error").Inc()
		r.logger.Error().Err(err).Str("flight", ident).
			Msg("Provider record missing required fields")
		return nil, "", &Error{
			Kind:    KindMalformed,
			Message: "Service temporarily unavailable",
			Err:     err,
		}
	}

	// Write-through is best-effort: a failed cache write costs the next
	// caller a provider fetch, nothing more.
	if payload, err := json.Marshal(data); err == nil {
		if err := r.cache.Set(ctx, key, string(payload), r.cacheTTL); err != nil {
			r.logger.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}

	requestsTotal.WithLabelValues("cache_miss").Inc()
	return data, StatusMiss, nil
}
