// Package cache holds the process-wide category name↔id mapping.
package cache

import (
	"sync"

	"recipebox/internal/storage"
)

const (
	// AllCategoryName is the synthetic category representing "no filter".
	// It always exists in the cache and is never persisted.
	AllCategoryName = "All"
	// AllCategoryID is the sentinel id of the All category. It sits outside
	// the server's id space, which starts at 1.
	AllCategoryID int64 = -1
)

// Categories is a bidirectional category name↔id cache. Reads vastly
// outnumber writes, which happen only on startup and after a successful
// category sync, so a plain RWMutex suffices. Readers never observe a
// half-updated mapping.
type Categories struct {
	mu    sync.RWMutex
	names []string
	ids   map[string]int64
}

// New creates a cache seeded with the sentinel All entry.
func New() *Categories {
	return &Categories{
		names: []string{AllCategoryName},
		ids:   map[string]int64{AllCategoryName: AllCategoryID},
	}
}

// BulkLoad replaces the cache content with the given entries, keeping the
// sentinel All entry in front. Used at startup from disk and after every
// successful category sync.
func (c *Categories) BulkLoad(entries []storage.Category) {
	names := make([]string, 0, len(entries)+1)
	ids := make(map[string]int64, len(entries)+1)
	names = append(names, AllCategoryName)
	ids[AllCategoryName] = AllCategoryID
	for _, e := range entries {
		if e.Name == AllCategoryName {
			continue
		}
		names = append(names, e.Name)
		ids[e.Name] = e.ID
	}

	c.mu.Lock()
	c.names = names
	c.ids = ids
	c.mu.Unlock()
}

// IndexOf returns the position of a category name in the ordered name list,
// or -1 when the name is unknown.
func (c *Categories) IndexOf(name string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return -1
}

// IDOf resolves a category name to its id. Unknown names resolve to the
// sentinel AllCategoryID.
func (c *Categories) IDOf(name string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id, ok := c.ids[name]; ok {
		return id
	}
	return AllCategoryID
}

// NameOf resolves a category id to its display name. Unknown ids resolve to
// the sentinel AllCategoryName.
func (c *Categories) NameOf(id int64) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, candidate := range c.ids {
		if candidate == id {
			return name
		}
	}
	return AllCategoryName
}

// Names returns a copy of the ordered category name list, sentinel first.
func (c *Categories) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Entries returns the cached categories excluding the sentinel entry, in
// name-list order.
func (c *Categories) Entries() []storage.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]storage.Category, 0, len(c.names))
	for _, name := range c.names {
		if name == AllCategoryName {
			continue
		}
		entries = append(entries, storage.Category{ID: c.ids[name], Name: name})
	}
	return entries
}
