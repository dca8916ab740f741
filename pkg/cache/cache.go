// Package cache provides layout-result caching for Skyline.
//
// Solving a city layout is an O(iterations x n^2) computation, so both the
// CLI and the API cache finished layouts keyed by a content hash of the
// input tree plus the solve options. Three backends are provided:
//
//   - [FileCache]: directory-backed, for CLI usage
//   - [RedisCache]: shared backend for multi-instance API deployments
//   - [NullCache]: no-op, for tests and --no-cache runs
//
// Keys are produced by a [Keyer] so that CLI, API, and worker processes
// derive identical keys for identical work.
package cache

import (
	"context"
	"time"
)

// TTLs for cached data. Layouts are pure functions of tree + options, so
// the TTL exists only to bound storage growth, not for correctness.
const (
	// TTLLayout is how long solved layouts stay cached.
	TTLLayout = 7 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// LayoutKeyOpts are the solve options that distinguish cached layouts for
// the same input tree.
type LayoutKeyOpts struct {
	Iterations int    `json:"iterations"`
	Seed       uint64 `json:"seed"`
}

// Keyer generates cache keys for the layout pipeline.
type Keyer interface {
	// LayoutKey generates a key for a solved layout from the content hash
	// of the marshaled input tree and the solve options.
	LayoutKey(treeHash string, opts LayoutKeyOpts) string
}

// DefaultKeyer is the standard key scheme shared by CLI and API.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey generates a key for a solved layout.
func (k *DefaultKeyer) LayoutKey(treeHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", treeHash, opts)
}
