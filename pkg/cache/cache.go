package cache

import (
	"context"
	"time"
)

// Cache fronts the public list reads. Implementations: Redis in production,
// in-memory for tests and local development. A cache failure is never
// fatal; callers fall back to the document store.
type Cache interface {
	// Get unmarshals the cached value into dest. found reports a hit; on a
	// miss dest is untouched.
	Get(ctx context.Context, key string, dest interface{}) (found bool, err error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete drops the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the backing connection.
	Ping(ctx context.Context) error
}
