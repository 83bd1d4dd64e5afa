// Package httpapi wires the resolution pipeline to HTTP. It is a thin
// adapter: route parsing, status mapping, and headers live here; every
// decision lives in the resolver.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/flightwatch/flight-proxy/pkg/flight"
	"github.com/flightwatch/flight-proxy/pkg/resolver"
)

// FlightResolver is the handler's view of the resolution pipeline.
type FlightResolver interface {
	Resolve(ctx context.Context, identifier, clientAddr string) (*flight.Data, resolver.Status, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	resolver FlightResolver
	logger   zerolog.Logger
}

// NewServer creates the HTTP API server.
func NewServer(res FlightResolver, logger zerolog.Logger) *Server {
	return &Server{
		resolver: res,
		logger:   logger,
	}
}

// getFlight handles GET /api/v1/flights/{flight_icao}.
func (s *Server) getFlight(w http.ResponseWriter, r *http.Request) {
	identifier := chi.URLParam(r, "flight_icao")

	data, status, err := s.resolver.Resolve(r.Context(), identifier, clientAddr(r))
	if err != nil {
		var resErr *resolver.Error
		if errors.As(err, &resErr) {
			code, payloadCode := kindStatus(resErr.Kind)
			writeError(w, code, payloadCode, resErr.Message, nil)
			return
		}

		// Unclassified fault: never leak internals to the caller.
		s.logger.Error().Err(err).Str("path", r.URL.Path).
			Msg("Unexpected resolution error")
		writeError(w, http.StatusServiceUnavailable, "INTERNAL_ERROR",
			"Service temporarily unavailable",
			map[string]any{"path": r.URL.Path})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Cache", string(status))
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to write response")
	}
}

// clientAddr extracts the client IP used for rate-limit accounting. The
// RealIP middleware has already rewritten RemoteAddr when the request came
// through a proxy.
func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
