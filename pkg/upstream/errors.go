package upstream

import "fmt"

// Kind classifies an upstream failure for the resolver's error mapping.
type Kind string

const (
	// KindRateLimited means the provider answered 429.
	KindRateLimited Kind = "rate_limited"

	// KindUnavailable covers transport failures, timeouts, and any other
	// HTTP error status from the provider.
	KindUnavailable Kind = "unavailable"
)

// Error is a provider failure with enough context for classification.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upstream %s (status %d): %s: %v",
			e.Kind, e.StatusCode, e.Message, e.Err)
	}
	return fmt.Sprintf("upstream %s (status %d): %s",
		e.Kind, e.StatusCode, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
