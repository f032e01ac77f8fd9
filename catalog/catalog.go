// Package catalog holds per-item metadata keyed by item identity.
// The cache is process-scoped and explicitly owned: it is created once at
// startup and passed to the components that need it. Entries are populated
// from the catalog fetch and enriched by every combination response; they
// are never evicted during a session.
package catalog

import "sync"

// Entry is the canonical, id-keyed description of an item type.
// Identity is assigned by the generator service and is immutable.
type Entry struct {
	ID          int
	Name        string
	Glyph       string
	Description string
	Tags        []string
	Seed        bool
}

// Cache is an id-keyed entry cache that preserves first-seen order.
// A merge may only fill missing descriptive fields of an existing entry;
// it never remaps an id.
type Cache struct {
	mu      sync.RWMutex
	entries map[int]Entry
	order   []int
}

// NewCache creates an empty catalog cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[int]Entry)}
}

// Put inserts or enriches an entry. For an existing id, only fields that
// are currently empty are filled in; populated fields keep their value.
// The Seed flag is sticky once set.
func (c *Cache) Put(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, ok := c.entries[e.ID]
	if !ok {
		c.entries[e.ID] = e
		c.order = append(c.order, e.ID)
		return
	}

	if prev.Name == "" {
		prev.Name = e.Name
	}
	if prev.Glyph == "" {
		prev.Glyph = e.Glyph
	}
	if prev.Description == "" {
		prev.Description = e.Description
	}
	if len(prev.Tags) == 0 {
		prev.Tags = e.Tags
	}
	if e.Seed {
		prev.Seed = true
	}
	c.entries[e.ID] = prev
}

// Get returns the entry for id, if cached.
func (c *Cache) Get(id int) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e, ok
}

// Entries returns all cached entries in first-seen order.
func (c *Cache) Entries() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
