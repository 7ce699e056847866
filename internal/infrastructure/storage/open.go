package storage

import (
	"fmt"
	"io"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open constructs the named backend at path. The returned Closer releases the
// backend's resources and is always non-nil on success.
func Open(backend, path string) (ports.KeyValueStore, io.Closer, error) {
	switch backend {
	case BackendFile, "":
		return NewFileStore(path), nopCloser{}, nil
	case BackendSQLite:
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case BackendMemory:
		return NewMemoryStore(nil), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage backend %q", backend)
	}
}
