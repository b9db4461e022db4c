package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/talgya/task-tycoon/internal/company"
)

// FileStore keeps the document as indented JSON in dataDir/state.json.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// NewFileStore creates dataDir if needed and returns a store inside it.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, "state.json")}, nil
}

// Path returns the document's file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load(ctx context.Context) (*company.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return company.NewState(), nil
		}
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	return company.Decode(b)
}

func (f *FileStore) Save(ctx context.Context, s *company.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := company.Encode(s)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return os.WriteFile(f.path, b, 0o644)
}

func (f *FileStore) Close() error { return nil }
