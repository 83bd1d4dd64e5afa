package flight

import (
	"regexp"
	"strings"
)

// identifierPattern matches an ICAO flight identifier after case
// normalization: a two-character alphanumeric airline code followed by
// one to five digits.
var identifierPattern = regexp.MustCompile(`^[A-Z0-9]{2}[0-9]{1,5}$`)

// ValidIdentifier reports whether token is a syntactically valid ICAO
// flight identifier. Matching is case-insensitive; the token itself is
// not modified.
func ValidIdentifier(token string) bool {
	return identifierPattern.MatchString(strings.ToUpper(token))
}

// NormalizeIdentifier returns the canonical (uppercase) form of an
// identifier, used for cache keys and upstream queries.
func NormalizeIdentifier(token string) string {
	return strings.ToUpper(token)
}
