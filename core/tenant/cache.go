package tenant

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cachedEntry struct {
	entry Entry
	built time.Time
}

// CachedSource memoizes lookups of another source for a fixed TTL.
// Concurrent misses for the same tenant share one underlying lookup.
type CachedSource struct {
	source Source
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]cachedEntry
	sf      singleflight.Group
}

// NewCachedSource wraps source; a zero ttl disables caching.
func NewCachedSource(source Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedEntry),
	}
}

func (c *CachedSource) fresh(tenantID string) (Entry, bool) {
	c.mu.RLock()
	ce, ok := c.entries[tenantID]
	c.mu.RUnlock()
	if !ok || c.ttl == 0 || c.now().Sub(ce.built) > c.ttl {
		return Entry{}, false
	}
	return ce.entry, true
}

// Lookup returns the cached entry for tenantID, reading through on a miss.
// The id is copied before it is stored, so callers may pass views into
// reused buffers.
func (c *CachedSource) Lookup(ctx context.Context, tenantID string) (Entry, error) {
	// Fast path
	if e, ok := c.fresh(tenantID); ok {
		return e, nil
	}

	tenantID = strings.Clone(tenantID)
	result, err, _ := c.sf.Do(tenantID, func() (any, error) {
		// Double-check after acquiring singleflight lock
		if e, ok := c.fresh(tenantID); ok {
			return e, nil
		}

		e, err := c.source.Lookup(ctx, tenantID)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[tenantID] = cachedEntry{entry: e, built: c.now()}
		c.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return Entry{}, err
	}
	return result.(Entry), nil
}

// List always reads through to the underlying source.
func (c *CachedSource) List(ctx context.Context) ([]Entry, error) {
	return c.source.List(ctx)
}

// Invalidate drops the cached entry so the next lookup reads through.
func (c *CachedSource) Invalidate(tenantID string) {
	c.mu.Lock()
	delete(c.entries, tenantID)
	c.mu.Unlock()
}
