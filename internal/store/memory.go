package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	doc       Document
	expiresAt time.Time
}

// MemoryStore keeps documents in process memory. Expired documents are
// dropped lazily when touched.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryStore returns an empty store. ttl <= 0 keeps documents forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{docs: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, text string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := Document{ID: uuid.NewString(), Version: 1, Text: text, UpdatedAt: s.now().UTC()}
	s.docs[doc.ID] = s.entry(doc)
	return doc, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, text string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.lookup(id)
	if !ok {
		return Document{}, ErrNotFound
	}
	doc := Document{ID: id, Version: current.Version + 1, Text: text, UpdatedAt: s.now().UTC()}
	s.docs[id] = s.entry(doc)
	return doc, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.lookup(id)
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lookup(id); !ok {
		return ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(id string) (Document, bool) {
	e, ok := s.docs[id]
	if !ok {
		return Document{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.docs, id)
		return Document{}, false
	}
	return e.doc, true
}

func (s *MemoryStore) entry(doc Document) memoryEntry {
	e := memoryEntry{doc: doc}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}
	return e
}
