package container

import (
	"path/filepath"
	"sync"
	"time"
)

// Cache keeps load results for a bounded time window so every viewer
// interaction does not re-read the container. Expiry is purely time-based;
// a container rewritten inside the window is not picked up until it lapses.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	rows   []Row
	diags  []Diagnostic
	loaded time.Time
}

// NewCache creates a cache with the given expiry window.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Load returns the cached result for path when fresh, otherwise loads the
// container and caches the result. Results are keyed by absolute path.
func (c *Cache) Load(path string) ([]Row, []Diagnostic, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	c.mu.Unlock()
	if ok && c.now().Sub(e.loaded) < c.ttl {
		return e.rows, e.diags, nil
	}

	rows, diags, err := Load(path)
	if err != nil {
		return nil, diags, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{rows: rows, diags: diags, loaded: c.now()}
	c.mu.Unlock()
	return rows, diags, nil
}

// Invalidate drops the cached entry for path, if any.
func (c *Cache) Invalidate(path string) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
