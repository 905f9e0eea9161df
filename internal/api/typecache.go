package api

import (
	"context"
	"sync"
	"time"

	"github.com/brijr/wp-poster/internal/wp"
)

// cacheTTL is how long a fetched type listing stays fresh.
const cacheTTL = 5 * time.Minute

type typeEntry struct {
	types     map[string]wp.PostType
	fetchedAt time.Time
}

// TypeCache memoizes the post-type listing per base URL with a fixed
// freshness window. Refreshing is always an explicit caller decision.
type TypeCache struct {
	mu      sync.Mutex
	entries map[string]typeEntry
	now     func() time.Time
}

// NewTypeCache creates an empty cache.
func NewTypeCache() *TypeCache {
	return &TypeCache{
		entries: make(map[string]typeEntry),
		now:     time.Now,
	}
}

// Get returns the cached types for baseURL, fetching through client when
// the entry is absent, stale, or refresh is forced. A fetch failure leaves
// any stale entry untouched so a later retry can still succeed.
func (c *TypeCache) Get(ctx context.Context, client *wp.Client, baseURL string, refresh bool) (map[string]wp.PostType, error) {
	c.mu.Lock()
	entry, ok := c.entries[baseURL]
	if ok && !refresh && c.now().Sub(entry.fetchedAt) < cacheTTL {
		c.mu.Unlock()
		return entry.types, nil
	}
	c.mu.Unlock()

	types, err := client.ListPostTypes(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[baseURL] = typeEntry{types: types, fetchedAt: c.now()}
	c.mu.Unlock()
	return types, nil
}
