// Package cache memoizes expensive puzzle artifacts.
//
// Generating a puzzle is cheap, but rendering previews and rasterizing hundreds of
// piece masks is not. Every artifact is a pure function of the canonical config JSON
// and its render options, so it can be stored under a content-derived key and reused
// across runs and processes.
//
// # Backends
//
//   - [FileCache] stores entries below a directory (CLI default)
//   - [RedisCache] shares entries between API server instances
//   - [NullCache] disables caching
//
// # Keys
//
// A [Keyer] derives keys from content hashes, see [Hash]. [ScopedKeyer] prefixes
// every key so several tenants can share one backend.
package cache

import (
	"context"
	"time"
)

// Default lifetimes of cached entries.
const (
	// TTLPieces applies to compiled piece outlines.
	TTLPieces = 7 * 24 * time.Hour

	// TTLArtifact applies to rendered previews and adjacency views.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLRaster applies to rasterized piece masks.
	TTLRaster = 30 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Implementations must be safe for
// concurrent use; export rasterizes pieces in parallel and shares one Cache.
type Cache interface {
	// Get returns the stored value and whether it was found. A missing or expired
	// entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the entry until it is deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
