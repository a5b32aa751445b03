package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryBackend keeps documents in process memory. Contents are lost on exit.
type MemoryBackend struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

type memoryCollection struct {
	order []string
	docs  map[string][]byte
}

// NewMemory creates an empty in-memory backend
func NewMemory() *MemoryBackend {
	return &MemoryBackend{collections: make(map[string]*memoryCollection)}
}

// Insert stores a new document, failing if the id is taken
func (m *MemoryBackend) Insert(ctx context.Context, collection, id string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.collection(collection)
	if _, exists := coll.docs[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	coll.order = append(coll.order, id)
	coll.docs[id] = append([]byte(nil), doc...)
	return nil
}

// Upsert stores or replaces a document
func (m *MemoryBackend) Upsert(ctx context.Context, collection, id string, doc []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	coll := m.collection(collection)
	if _, exists := coll.docs[id]; !exists {
		coll.order = append(coll.order, id)
	}
	coll.docs[id] = append([]byte(nil), doc...)
	return nil
}

// List returns every document in a collection in insertion order
func (m *MemoryBackend) List(ctx context.Context, collection string) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	coll, ok := m.collections[collection]
	if !ok {
		return nil, nil
	}
	docs := make([][]byte, 0, len(coll.order))
	for _, id := range coll.order {
		docs = append(docs, append([]byte(nil), coll.docs[id]...))
	}
	return docs, nil
}

// Close is a no-op
func (m *MemoryBackend) Close() error { return nil }

func (m *MemoryBackend) collection(name string) *memoryCollection {
	coll, ok := m.collections[name]
	if !ok {
		coll = &memoryCollection{docs: make(map[string][]byte)}
		m.collections[name] = coll
	}
	return coll
}
