package syncer

import (
	"sync"

	"omfin/ledger-sync/internal/source"
)

// FetchCache holds at most one fetched snapshot, shared process-wide. Empty
// at process start, populated by a successful fetch, invalidated by an
// explicit Clear or replaced by a force-triggered fetch. It is deliberately
// not partitioned per user: one deployment syncs one upstream source.
type FetchCache struct {
	mu       sync.Mutex
	snapshot source.Snapshot
	valid    bool
}

// NewFetchCache returns an empty cache.
func NewFetchCache() *FetchCache {
	return &FetchCache{}
}

// Get returns the cached snapshot, if one is present.
func (c *FetchCache) Get() (source.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot, c.valid
}

// Set replaces the cached snapshot.
func (c *FetchCache) Set(snapshot source.Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = snapshot
	c.valid = true
}

// Clear empties the cache.
func (c *FetchCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = source.Snapshot{}
	c.valid = false
}
