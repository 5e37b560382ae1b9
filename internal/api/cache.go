package api

import (
	"sync"

	"github.com/kk-code-lab/mdlens/internal/document"
	"github.com/kk-code-lab/mdlens/internal/markup"
	"github.com/kk-code-lab/mdlens/internal/store"
)

const defaultCacheEntries = 256

// snapshotCache keeps the parsed snapshot of recently read documents keyed
// by id. An entry is reused only while its version matches the stored one.
type snapshotCache struct {
	parser *markup.Parser
	limit  int

	mu      sync.Mutex
	entries map[string]*document.Snapshot
}

func newSnapshotCache(parser *markup.Parser, limit int) *snapshotCache {
	if parser == nil {
		parser = markup.NewParser()
	}
	return &snapshotCache{parser: parser, limit: limit, entries: make(map[string]*document.Snapshot)}
}

// snapshot returns the parsed form of doc, building it on a miss.
func (c *snapshotCache) snapshot(doc store.Document) *document.Snapshot {
	c.mu.Lock()
	snap, ok := c.entries[doc.ID]
	c.mu.Unlock()
	if ok && snap.Version == doc.Version {
		return snap
	}

	snap = document.Build(c.parser, doc.Text, doc.Version)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[doc.ID]; ok && cur.Version > snap.Version {
		return snap
	}
	if _, ok := c.entries[doc.ID]; !ok && len(c.entries) >= c.limit {
		for id := range c.entries {
			delete(c.entries, id)
			break
		}
	}
	c.entries[doc.ID] = snap
	return snap
}

func (c *snapshotCache) invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

func (c *snapshotCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
