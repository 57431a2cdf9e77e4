package market

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/logger"
	"github.com/oscarvaldez-dev/pricepulse-backend/pkg/redis"
)

// CachedFetcher is a read-through cache over a Fetcher. Cache failures
// degrade to a direct fetch; they never fail the lookup.
type CachedFetcher struct {
	inner Fetcher
	cache *redis.Client
	ttl   time.Duration
	logg  *logger.Logger
}

// NewCachedFetcher wraps the inner fetcher. A nil cache client returns the
// inner fetcher untouched.
func NewCachedFetcher(inner Fetcher, cache *redis.Client, ttl time.Duration, logg *logger.Logger) Fetcher {
	if cache == nil {
		return inner
	}
	return &CachedFetcher{inner: inner, cache: cache, ttl: ttl, logg: logg}
}

func (c *CachedFetcher) Fetch(ctx context.Context, product string) ([]Listing, error) {
	key := c.cache.ListingsKey(product)

	if raw, err := c.cache.Get(ctx, key); err == nil {
		var listings []Listing
		if err := json.Unmarshal([]byte(raw), &listings); err == nil {
			return listings, nil
		}
		// poisoned entry, drop and refetch
		_ = c.cache.Del(ctx, key)
	} else if err != redis.ErrCacheMiss && c.logg != nil {
		c.logg.Warn(ctx, "listing cache read failed, fetching direct")
	}

	listings, err := c.inner.Fetch(ctx, product)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(listings); err == nil {
		if setErr := c.cache.Set(ctx, key, string(raw), c.ttl); setErr != nil && c.logg != nil {
			c.logg.Warn(ctx, "listing cache write failed")
		}
	}

	return listings, nil
}
