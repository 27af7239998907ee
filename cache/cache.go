// Package cache provides a small string-valued TTL cache used for
// market-data read-through caching: Redis in production, an in-memory
// map in tests.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned when a key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}
