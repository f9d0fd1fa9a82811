package fetch

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Middleware wraps a Fetcher with cross-cutting behavior.
type Middleware func(Fetcher) Fetcher

// Cached returns middleware that wraps a Fetcher with LRU+TTL caching keyed
// by URL. maxEntries is the LRU size; ttl is how long entries stay valid
// (zero = no expiration). Errors are not cached, so a failed fetch is retried
// on the next call.
func Cached(maxEntries int, ttl time.Duration) Middleware {
	return func(inner Fetcher) Fetcher {
		if inner == nil {
			return nil
		}
		if maxEntries <= 0 {
			maxEntries = 64
		}
		return &cachingFetcher{
			inner: inner,
			cache: expirable.NewLRU[string, string](maxEntries, nil, ttl),
		}
	}
}

type cachingFetcher struct {
	inner Fetcher
	cache *expirable.LRU[string, string]
}

func (c *cachingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if rawHTML, ok := c.cache.Get(url); ok {
		return rawHTML, nil
	}
	rawHTML, err := c.inner.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	c.cache.Add(url, rawHTML)
	return rawHTML, nil
}
