// Package upstream provides the HTTP client for the external flight-data
// provider and maps its failure modes into domain error kinds.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/flightwatch/flight-proxy/pkg/flight"
)

// Prometheus metrics for provider requests.
var (
	upstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_upstream_requests_total",
		Help: "Total provider requests by status",
	}, []string{"status"})

	upstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flight_upstream_request_duration_seconds",
		Help:    "Provider request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	upstreamErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flight_upstream_errors_total",
		Help: "Total provider errors by kind",
	}, []string{"kind"})
)

// DefaultTimeout bounds a provider request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Config holds the provider client configuration.
type Config struct {
	// BaseURL is the provider's flights endpoint.
	BaseURL string

	// AccessKey is the provider credential, sent as a query parameter.
	AccessKey string

	// Timeout bounds each request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// Client fetches raw flight records from the provider.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     zerolog.Logger
}

// New creates a provider client.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("provider base URL is required")
	}
	if cfg.AccessKey == "" {
		return nil, fmt.Errorf("provider access key is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		config: cfg,
		logger: logger,
	}, nil
}

// providerResponse is the provider's JSON envelope.
type providerResponse struct {
	Data []flight.RawRecord `json:"data"`
}

// FetchRaw issues a single provider request for the given identifier.
// Returns (nil, nil) when the provider has no matching flight. When the
// provider returns multiple records only the first is used.
func (c *Client) FetchRaw(ctx context.Context, identifier string) (flight.RawRecord, error) {
	start := time.Now()
	defer func() {
		upstreamRequestDuration.Observe(time.Since(start).Seconds())
	}()

	query := url.Values{}
	query.Set("access_key", c.config.AccessKey)
	query.Set("flight_icao", identifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.config.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErrorsTotal.WithLabelValues(string(KindUnavailable)).Inc()
		upstreamRequestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("flight", identifier).
			Msg("Provider request failed")
		return nil, &Error{
			Kind:    KindUnavailable,
			Message: "provider unreachable",
			Err:     err,
		}
	}
	defer resp.Body.Close()

	upstreamRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		upstreamErrorsTotal.WithLabelValues(string(KindRateLimited)).Inc()
		c.logger.Warn().Str("flight", identifier).
			Msg("Provider rate limit hit")
		return nil, &Error{
			Kind:       KindRateLimited,
			StatusCode: resp.StatusCode,
			Message:    "Rate limit exceeded",
		}
	case resp.StatusCode != http.StatusOK:
		upstreamErrorsTotal.WithLabelValues(string(KindUnavailable)).Inc()
		c.logger.Warn().
			Str("flight", identifier).
			Int("status", resp.StatusCode).
			Msg("Provider returned error status")
		return nil, &Error{
			Kind:       KindUnavailable,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	var body providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		upstreamErrorsTotal.WithLabelValues(string(KindUnavailable)).Inc()
		return nil, &Error{
			Kind:       KindUnavailable,
			StatusCode: resp.StatusCode,
			Message:    "decode provider response",
			Err:        err,
		}
	}

	if len(body.Data) == 0 {
		c.logger.Debug().Str("flight", identifier).Msg("Provider has no matching flight")
		return nil, nil
	}

	return body.Data[0], nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
