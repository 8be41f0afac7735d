// Package cache provides caching for parsed graphs and rendered frames.
//
// A [Cache] stores opaque bytes under string keys with optional expiration.
// Backends: [FileCache] for CLI usage, [RedisCache] for the server, and
// [NullCache] to disable caching. A [Keyer] derives stable keys from graph
// content and render settings, so identical inputs hit the same entry across
// runs.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind. Parsed graphs are cheap to keep around;
// rendered frames are larger and invalidate whenever render settings move.
const (
	TTLGraph = 24 * time.Hour
	TTLFrame = 6 * time.Hour
)

// Cache is a byte-oriented key-value store with TTL support.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// FrameKeyOpts captures everything that changes a rendered frame's bytes.
type FrameKeyOpts struct {
	Theme  string
	Width  int
	Height int
	Zoom   float64
	PanX   float64
	PanY   float64
	Settle int
	Format string
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey keys a parsed and validated graph by its content hash.
	GraphKey(contentHash string) string

	// FrameKey keys a rendered frame by graph content and render settings.
	FrameKey(graphHash string, opts FrameKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for parsed graph caching.
func (k *DefaultKeyer) GraphKey(contentHash string) string {
	return hashKey("graph", contentHash)
}

// FrameKey generates a key for rendered frame caching.
func (k *DefaultKeyer) FrameKey(graphHash string, opts FrameKeyOpts) string {
	return hashKey("frame", graphHash, opts)
}
