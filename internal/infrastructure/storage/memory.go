package storage

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

// MemoryStore keeps values for the life of the process. GetErr and SetErr,
// when set, make the corresponding operation fail, which lets callers observe
// an unavailable medium.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	GetErr error
	SetErr error
}

// NewMemoryStore returns a store seeded with initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	values := make(map[string]string, len(initial))
	for k, v := range initial {
		values[k] = v
	}
	return &MemoryStore{values: values}
}

// Get implements ports.KeyValueStore.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.GetErr != nil {
		return "", false, apperrors.NewStorageError("get", key, s.GetErr)
	}
	value, ok := s.values[key]
	return value, ok, nil
}

// Set implements ports.KeyValueStore.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return apperrors.NewStorageError("set", key, s.SetErr)
	}
	s.values[key] = value
	return nil
}

// Snapshot returns a copy of the stored values.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)
