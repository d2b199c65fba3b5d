// Package cache stores the results of expensive, repeatable computations.
//
// The enumerator is deterministic, so the number of diagrams a request
// produces never changes. Counting requires exhausting the search, which
// grows factorially with the number of vertices; the count is cached under a
// key derived from the request.
//
// Backends:
//   - [FileCache]: JSON entries in a sharded directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// CountKey returns the key for the diagram count of a request, given the
	// request's canonical encoding.
	CountKey(request []byte) string
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CountKey returns "count:" followed by the SHA-256 of the request.
func (DefaultKeyer) CountKey(request []byte) string {
	return hashKey("count", request)
}
