package cache

// keyPrefix namespaces flight entries in the shared Redis instance, which
// also holds rate-limit counters.
const keyPrefix = "flight:"

// Key returns the cache key for a normalized flight identifier.
//
// Example:
//
//	flight:AA1234
func Key(identifier string) string {
	return keyPrefix + identifier
}
