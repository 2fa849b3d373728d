package cache

import (
	"context"
	"time"
)

// capped shortens every lifetime to at most max.
type capped struct {
	Cache
	max time.Duration
}

// WithMaxTTL wraps c so no entry outlives max. A non-positive max returns c.
func WithMaxTTL(c Cache, max time.Duration) Cache {
	if max <= 0 {
		return c
	}
	return capped{Cache: c, max: max}
}

func (c capped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.max {
		ttl = c.max
	}
	return c.Cache.Set(ctx, key, data, ttl)
}
