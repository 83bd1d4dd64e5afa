package resolver

import "fmt"

// Kind classifies a resolution failure. The transport layer maps kinds to
// HTTP status codes; nothing below it deals in statuses.
type Kind string

const (
	// KindInvalidFormat means the identifier failed syntax validation.
	KindInvalidFormat Kind = "invalid_format"

	// KindNotFound means the provider confirmed no such flight exists.
	KindNotFound Kind = "not_found"

	// KindRateLimited means either the local ceiling was exceeded or the
	// provider signaled rate limiting.
	KindRateLimited Kind = "rate_limited"

	// KindUnavailable covers provider transport failures and unexpected
	// internal faults.
	KindUnavailable Kind = "unavailable"

	// KindMalformed means the provider payload was missing required fields.
	// Callers treat it as an unavailable-class failure.
	KindMalformed Kind = "malformed"
)

// Error is a tagged resolution failure. Message is safe to show to callers;
// Err carries internal context for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("resolve %s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("resolve %s: %s", e.Kind, e.Message)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}
