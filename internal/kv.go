package internal

import (
	"context"
	"time"
)

// KV is a durable key-value store with per-entry expiry. There is no
// enumeration or bulk clear; entries age out individually.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Put stores value under key. A ttl <= 0 means the entry never expires.
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}
