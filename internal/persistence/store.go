// Package persistence provides storage for the company document: SQLite
// (the default), a JSON file, and memory.
package persistence

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/talgya/task-tycoon/internal/company"
)

// Store kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindFile   = "file"
	KindMemory = "memory"
)

// Store loads and saves the single company document. Load returns a fresh
// default company when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (*company.State, error)
	Save(ctx context.Context, s *company.State) error
	Close() error
}

// Open creates a store of the given kind under dataDir.
func Open(kind, dataDir string) (Store, error) {
	switch kind {
	case KindSQLite, "":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return OpenSQLite(filepath.Join(dataDir, "tycoon.db"))
	case KindFile:
		return NewFileStore(dataDir)
	case KindMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}
