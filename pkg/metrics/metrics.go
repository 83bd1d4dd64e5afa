// Package metrics provides the centralized Prometheus registry reference
// for the flight proxy. Metrics are defined in the packages that own them
// (resolver, cache, ratelimit, upstream) to maintain modularity and avoid
// circular dependencies.
//
// This package documents every exported series in one place.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry is the default Prometheus registry used by the proxy.
// All metrics are automatically registered via promauto in their
// respective packages.
var Registry = prometheus.DefaultRegisterer

// Metrics Documentation
//
// Resolution Metrics (pkg/resolver):
//   - flight_requests_total{status} (Counter): Resolutions by outcome
//     (cache_hit, cache_miss, invalid_format, not_found, rate_limited, error)
//   - flight_resolve_duration_seconds (Histogram): End-to-end resolution time
//
// Cache Metrics (pkg/cache):
//   - flight_cache_hits_total (Counter): Cache hits
//   - flight_cache_misses_total (Counter): Cache misses, including degraded
//     lookups served as misses
//   - flight_cache_errors_total{operation} (Counter): Backend errors by
//     operation (get, set)
//
// Rate Limit Metrics (pkg/ratelimit):
//   - flight_rate_limit_blocks_total (Counter): Requests over the ceiling
//   - flight_rate_limit_fail_open_total (Counter): Requests allowed because
//     the counter store was down
//
// Upstream Metrics (pkg/upstream):
//   - flight_upstream_requests_total{status} (Counter): Provider requests by
//     HTTP status (or network_error)
//   - flight_upstream_request_duration_seconds (Histogram): Provider latency
//   - flight_upstream_errors_total{kind} (Counter): Provider failures by kind
//     (rate_limited, unavailable)
//
// Example Prometheus Queries:
//
//   # Cache Hit Rate
//   rate(flight_cache_hits_total[5m]) /
//   (rate(flight_cache_hits_total[5m]) + rate(flight_cache_misses_total[5m]))
//
//   # Share of requests blocked by the rate limit
//   rate(flight_rate_limit_blocks_total[5m]) / rate(flight_requests_total[5m])
//
//   # P95 Provider Latency
//   histogram_quantile(0.95, rate(flight_upstream_request_duration_seconds_bucket[5m]))
