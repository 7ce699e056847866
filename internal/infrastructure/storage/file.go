// Package storage provides durable key-value backends for user preferences.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
	apperrors "github.com/alexisbeaulieu97/flashgenie/pkg/errors"
)

const fileFormatVersion = "1"

// preferencesFile is the on-disk document.
type preferencesFile struct {
	Version string            `json:"version"`
	Values  map[string]string `json:"values"`
}

// FileStore persists values in a single JSON document. Every Set rewrites the
// document atomically through a temporary file and rename.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore returns a store backed by the document at path. The file and
// its directory are created on the first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements ports.KeyValueStore.
func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values, err := s.load()
	if err != nil {
		return "", false, apperrors.NewStorageError("get", key, err)
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set implements ports.KeyValueStore.
func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return apperrors.NewStorageError("set", key, err)
	}
	values[key] = value
	if err := s.save(values); err != nil {
		return apperrors.NewStorageError("set", key, err)
	}
	return nil
}

// load reads the document; a missing file is an empty store.
func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]string), nil
	}
	if err != nil {
		return nil, err
	}

	var file preferencesFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	if file.Values == nil {
		file.Values = make(map[string]string)
	}
	return file.Values, nil
}

func (s *FileStore) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := json.MarshalIndent(preferencesFile{Version: fileFormatVersion, Values: values}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

var _ ports.KeyValueStore = (*FileStore)(nil)
