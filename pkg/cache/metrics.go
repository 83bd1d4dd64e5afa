package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks responses served from cache.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flight_cache_hits_total",
			Help: "Total number of flight cache hits",
		},
	)

	// CacheMisses tracks lookups that fell through to the upstream fetch.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flight_cache_misses_total",
			Help: "Total number of flight cache misses",
		},
	)

	// CacheErrors tracks cache backend failures by operation. A get error
	// implies a degraded lookup that was served as a miss.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flight_cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"operation"}, // "get", "set"
	)
)
