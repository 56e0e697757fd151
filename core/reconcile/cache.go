package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// IndexLoader fetches the catalog and builds its index.
type IndexLoader func(ctx context.Context) (*Index, error)

// cachedIndex is an index with its build time.
type cachedIndex struct {
	index *Index
	built time.Time
}

// CatalogCache keeps built catalog indices for a while so that repeated
// lookups (HTTP API, several runs in one process) do not refetch the catalog.
type CatalogCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cachedIndex
	sf      singleflight.Group
	now     func() time.Time
}

// NewCatalogCache creates a cache. A zero TTL disables caching: every call builds.
func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		ttl:     ttl,
		entries: make(map[string]cachedIndex),
		now:     time.Now,
	}
}

func (c *CatalogCache) expired(e cachedIndex) bool {
	if c.ttl == 0 {
		return true
	}
	return c.now().Sub(e.built) > c.ttl
}

// GetOrBuild returns the cached index for key, or builds it with load.
// Concurrent callers for the same key share one build.
func (c *CatalogCache) GetOrBuild(ctx context.Context, key string, load IndexLoader) (*Index, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && !c.expired(e) {
		return e.index, nil
	}

	v, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if ok && !c.expired(e) {
			return e.index, nil
		}

		idx, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cachedIndex{index: idx, built: c.now()}
		c.mu.Unlock()
		return idx, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}

// Invalidate drops the cached index for key.
func (c *CatalogCache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
