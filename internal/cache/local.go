package cache

import (
	"context"
	"time"

	"github.com/coocood/freecache"
)

// LocalCache is an in-process L1 page cache backed by freecache.
type LocalCache struct {
	cache *freecache.Cache
	ttl   int
}

// NewLocalCache allocates a cache of sizeMB megabytes. Entries expire after
// ttl, rounded up to whole seconds.
func NewLocalCache(sizeMB int, ttl time.Duration) *LocalCache {
	seconds := int((ttl + time.Second - 1) / time.Second)
	return &LocalCache{
		cache: freecache.NewCache(max(sizeMB, 1) * 1024 * 1024),
		ttl:   max(seconds, 1),
	}
}

func (c *LocalCache) Get(_ context.Context, key string) ([]byte, bool) {
	val, err := c.cache.Get([]byte(key))
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *LocalCache) Set(_ context.Context, key string, html []byte) {
	_ = c.cache.Set([]byte(key), html, c.ttl)
}

func (c *LocalCache) InvalidateAll(_ context.Context) error {
	c.cache.Clear()
	return nil
}

func (c *LocalCache) Name() string { return "local" }
