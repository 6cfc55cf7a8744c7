// Package cache provides pluggable backends for caching registry responses.
//
// LibFix caches raw HTTP response payloads only. Audit reports are never
// persisted; every run re-classifies from fresh (or cached) registry data.
//
// Three backends are provided:
//   - FileCache: per-user directory cache for CLI usage
//   - RedisCache: shared cache for deployments running many audits
//   - NullCache: caching disabled
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with a TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the payload for key and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
