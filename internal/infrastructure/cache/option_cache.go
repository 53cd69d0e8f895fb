// Package cache provides read-through caching for hierarchy lookups that
// back the cascading scope dropdowns.
package cache

import (
	"context"
	"time"
)

// OptionCache stores serialized hierarchy listings keyed by query shape.
// A miss returns (nil, nil).
type OptionCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
