package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-composer/sections"
)

// NewMemoryStore constructs an "in memory" document store. It is primarily
// used by tests and the example binary; documents are cloned on the way in
// and out so callers can never alias internal state.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pages: make(map[uuid.UUID]*sections.Document),
	}
}

type MemoryStore struct {
	mu    sync.RWMutex
	pages map[uuid.UUID]*sections.Document
}

var _ Store = (*MemoryStore)(nil)

// Put seeds or replaces a document.
func (m *MemoryStore) Put(doc *sections.Document) {
	if doc == nil || doc.ID == uuid.Nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[doc.ID] = doc.Clone()
}

func (m *MemoryStore) FetchPage(_ context.Context, id uuid.UUID) (*sections.Document, error) {
	if id == uuid.Nil {
		return nil, ErrPageRequired
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.pages[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	doc := record.Clone()
	doc.Sections = sections.Normalize(doc.Sections, nil)
	return doc, nil
}

func (m *MemoryStore) SaveContent(_ context.Context, id uuid.UUID, list []*sections.Section) error {
	if id == uuid.Nil {
		return ErrPageRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.pages[id]
	if !ok {
		return &NotFoundError{Resource: "page", Key: id.String()}
	}
	record.Sections = sections.CloneList(list)
	return nil
}

func (m *MemoryStore) SavePage(_ context.Context, doc *sections.Document) error {
	if doc == nil || doc.ID == uuid.Nil {
		return ErrPageRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[doc.ID] = doc.Clone()
	return nil
}
