package persistence

import (
	"context"
	"sync"

	"github.com/talgya/task-tycoon/internal/company"
)

// MemoryStore holds the encoded document in memory. Storing bytes rather
// than the value keeps callers from sharing maps and slices with the store.
type MemoryStore struct {
	mu  sync.RWMutex
	doc []byte
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(ctx context.Context) (*company.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.doc == nil {
		return company.NewState(), nil
	}
	return company.Decode(m.doc)
}

func (m *MemoryStore) Save(ctx context.Context, s *company.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := company.Encode(s)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.doc = b
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }
