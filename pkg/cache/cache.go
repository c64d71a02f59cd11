// Package cache provides byte-level caching for fetched catalog data.
//
// Remote catalogs are fetched over HTTP on every exhibit start. Caching the
// raw response lets a kiosk boot without network access once it has seen a
// catalog, and keeps restarts fast.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared cache for several exhibit hosts
//   - [NullCache]: caching disabled
//
// All backends report cache hits, misses and writes through
// observability.Cache().
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
type Cache interface {
	// Get returns the payload for key. The boolean is false on a miss or
	// an expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
