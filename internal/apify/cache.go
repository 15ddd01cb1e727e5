package apify

import (
	"context"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/abhisek/teachme/internal/lesson"
)

// CachedResolver memoizes successful lookups by normalized query. Misses
// are not cached so a transient actor failure is retried next time.
type CachedResolver struct {
	inner lesson.ImageResolver
	cache *cache.Cache
}

// NewCachedResolver wraps inner with a TTL cache.
func NewCachedResolver(inner lesson.ImageResolver, ttl time.Duration) *CachedResolver {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedResolver{inner: inner, cache: cache.New(ttl, 2*ttl)}
}

func (c *CachedResolver) Resolve(ctx context.Context, query string) (string, bool) {
	key := normalizeQuery(query)
	if v, ok := c.cache.Get(key); ok {
		return v.(string), true
	}

	u, ok := c.inner.Resolve(ctx, query)
	if ok {
		c.cache.SetDefault(key, u)
	}
	return u, ok
}

// Len returns the number of cached entries.
func (c *CachedResolver) Len() int {
	return c.cache.ItemCount()
}

func normalizeQuery(q string) string {
	return strings.Join(strings.Fields(strings.ToLower(q)), " ")
}
