package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Get when the key is absent or expired.
var ErrNotFound = errors.New("cache key not found")

type Cache interface {
	// Close closes all connections and releases resources, if any exists.
	// Calling it ends the operations gracefully.
	Close(context.Context) error

	// Get returns the value stored under key.
	// It returns ErrNotFound if the key doesn't exist or has expired.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value under key and expires it after ttl.
	// An existing value is overwritten and its ttl restarted.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every live key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// FlushAll removes every key, not only the ones written by this service.
	FlushAll(ctx context.Context) error
}
