package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/flightwatch/flight-proxy/pkg/resolver"
)

// errorResponse is the error payload returned to callers.
type errorResponse struct {
	Detail   string         `json:"detail"`
	Code     string         `json:"code,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// kindStatus maps resolution error kinds to HTTP status codes and payload
// codes. Malformed provider data is an unavailable-class failure from the
// caller's point of view.
func kindStatus(kind resolver.Kind) (int, string) {
	switch kind {
	case resolver.KindInvalidFormat:
		return http.StatusBadRequest, "INVALID_FORMAT"
	case resolver.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case resolver.KindRateLimited:
		return http.StatusTooManyRequests, "RATE_LIMITED"
	default:
		return http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string, metadata map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Detail:   detail,
		Code:     code,
		Metadata: metadata,
	})
}
