package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Cache is a process local key value cache. Entries may disappear at any
// time, callers always have a way to rebuild them.
type Cache interface {
	// Get returns the value and whether the key was found
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value. An expiration of 0 uses the configured default.
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration)

	Delete(ctx context.Context, key string)

	// DeleteByPrefix removes every key generated from prefix
	DeleteByPrefix(ctx context.Context, prefix string)

	Flush(ctx context.Context)
}

const (
	// PrefixProfile keys business profiles by user id
	PrefixProfile = "profile:v1"
	// PrefixSyncBatch keys acknowledged local sync batches by idempotency key
	PrefixSyncBatch = "sync:v1"
)

// GenerateKey joins a prefix and its parameters with colons
func GenerateKey(prefix string, params ...interface{}) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, prefix)
	for _, param := range params {
		parts = append(parts, fmt.Sprintf("%v", param))
	}
	return strings.Join(parts, ":")
}

// GetAs reads key and type asserts the value. A value of another type is
// reported as a miss.
func GetAs[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var zero T
	raw, ok := c.Get(ctx, key)
	if !ok {
		return zero, false
	}
	value, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return value, true
}
