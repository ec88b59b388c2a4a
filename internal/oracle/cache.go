package oracle

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CachedEstimator memoizes estimates by match id
type CachedEstimator struct {
	inner     Estimator
	cache     *cache.Cache
	ttl       time.Duration
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewCachedEstimator wraps an estimator with an in-memory TTL cache
func NewCachedEstimator(inner Estimator, ttl time.Duration) *CachedEstimator {
	return &CachedEstimator{
		inner: inner,
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Name returns the wrapped estimator name
func (c *CachedEstimator) Name() string {
	return c.inner.Name()
}

// Estimate returns a cached probability or asks the wrapped estimator
func (c *CachedEstimator) Estimate(ctx context.Context, f MatchFeatures) (float64, error) {
	p, _, err := c.estimateCached(ctx, f)
	return p, err
}

func (c *CachedEstimator) estimateCached(ctx context.Context, f MatchFeatures) (float64, bool, error) {
	// no stable key without a match id
	if f.MatchID == "" {
		p, err := c.inner.Estimate(ctx, f)
		return p, false, err
	}

	key := c.key(f)
	if v, found := c.cache.Get(key); found {
		if p, ok := v.(float64); ok {
			c.hitCount.Add(1)
			return p, true, nil
		}
	}

	c.missCount.Add(1)
	p, err := c.inner.Estimate(ctx, f)
	if err != nil {
		return 0, false, err
	}
	c.cache.Set(key, p, c.ttl)
	return p, false, nil
}

func (c *CachedEstimator) key(f MatchFeatures) string {
	return fmt.Sprintf("%s:%s", c.inner.Name(), f.MatchID)
}

// Clear flushes the entire cache
func (c *CachedEstimator) Clear() {
	c.cache.Flush()
	c.hitCount.Store(0)
	c.missCount.Store(0)
}

// Stats returns cache statistics
func (c *CachedEstimator) Stats() (hits, misses uint64, ratio float64) {
	hits = c.hitCount.Load()
	misses = c.missCount.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (c *CachedEstimator) ItemCount() int {
	return c.cache.ItemCount()
}
