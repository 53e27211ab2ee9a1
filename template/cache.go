package template

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/randalmurphal/fmtkit/format"
)

// parseCache keeps parsed templates by text. Entries are reference counted:
// an evicted format is released once the last render using it finishes.
type parseCache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *cacheEntry]
}

type cacheEntry struct {
	format  *format.Format
	refs    int
	evicted bool
}

// newParseCache returns nil when size is not positive.
func newParseCache(size int) *parseCache {
	if size <= 0 {
		return nil
	}
	c := &parseCache{}
	entries, err := lru.NewWithEvict(size, c.onEvict)
	if err != nil {
		return nil
	}
	c.entries = entries
	return c
}

// onEvict runs inside lru calls, which are all made with c.mu held.
func (c *parseCache) onEvict(_ string, e *cacheEntry) {
	e.evicted = true
	if e.refs == 0 {
		e.format.Release()
	}
}

// acquire returns the cached entry for tmpl and takes a reference.
func (c *parseCache) acquire(tmpl string) (*cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(tmpl)
	if ok {
		e.refs++
	}
	return e, ok
}

// add caches f for tmpl and takes a reference. If another caller cached
// tmpl first, that entry is returned and added reports false.
func (c *parseCache) add(tmpl string, f *format.Format) (*cacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries.Get(tmpl); ok {
		e.refs++
		return e, false
	}
	e := &cacheEntry{format: f, refs: 1}
	c.entries.Add(tmpl, e)
	return e, true
}

// release drops a reference taken by acquire or add.
func (c *parseCache) release(e *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e.refs--
	if e.evicted && e.refs == 0 {
		e.format.Release()
	}
}

// purge evicts every entry.
func (c *parseCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Purge()
}

func (c *parseCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
