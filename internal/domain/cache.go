package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel-friendly error type for cache failures.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key or hash field is absent.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the caching port. The Redis adapter is the production
// implementation; tests substitute in-memory fakes.
//
// String operations cover whole-value caching (serialized lists, single
// records). Hash operations exist for per-visitor view tracking, where each
// question viewed becomes one field under the visitor's key.
type Cache interface {
	// Get returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Set overwrites any existing value. A zero expiration caches forever.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error

	// HGet returns ErrCacheMiss when the field is absent.
	HGet(ctx context.Context, key, field string) (string, error)
	// HGetAll returns an empty map for an absent key.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HSet(ctx context.Context, key string, field string, value string) error
	// Expire refreshes the key's TTL.
	Expire(ctx context.Context, key string, expiration time.Duration) error
}
