// Package cache stores rendered artifacts keyed by document content.
//
// The CLI uses [FileCache] under the user cache directory; the HTTP server
// can share a [RedisCache] between instances. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key. ok is false on a miss.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format string  `json:"format"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Scale  float64 `json:"scale,omitempty"`
	Debug  bool    `json:"debug,omitempty"`
	// LabelPasses is the label distribution cap; zero is the default.
	LabelPasses int `json:"label_passes,omitempty"`
}

// ArtifactKey returns the key of an artifact rendered from the document
// whose content hash is docHash.
func ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", docHash, opts)
}
