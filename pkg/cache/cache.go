// Package cache stores rendered artifacts, such as prefix-tree SVGs, so that
// repeated renders of the same enumeration skip the Graphviz layout.
//
// Keys are derived from the content being rendered with [Key], so a changed
// input never hits a stale entry. Two implementations are provided:
// [FileCache] for the CLI and [NullCache] for disabling caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with optional expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	// Expired or unreadable entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
