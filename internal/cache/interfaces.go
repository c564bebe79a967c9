package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented read cache for rendered item responses.
// The memory implementation serves development and tests; Redis serves
// multi-instance deployments.
type Cache interface {
	// Get retrieves a value by key. Returns ErrCacheMiss if not found.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries from the cache. Called after every write
	// to the item store so that cached reads never go stale.
	Clear(ctx context.Context) error
}

// CacheError is a string-backed cache error type.
type CacheError string

func (e CacheError) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found in cache.
	ErrCacheMiss CacheError = "cache miss"
)
