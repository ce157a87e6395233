// internal/cache/storage.go
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// StorageKey names the persisted cache entry.
const StorageKey = "property-cache-v1"

// Storage persists the serialized cache. Load returns nil data and no error
// when nothing has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}

// FileStorage keeps the cache in a single JSON file.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return data, nil
}

// Save writes to a temporary file and renames it so readers never observe a
// partial document.
func (s *FileStorage) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}

func (s *FileStorage) Delete() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete cache file: %w", err)
	}
	return nil
}

// MemoryStorage is a process-local Storage.
type MemoryStorage struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStorage(initial []byte) *MemoryStorage {
	return &MemoryStorage{data: initial}
}

func (s *MemoryStorage) Load() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.data...), nil
}

func (s *MemoryStorage) Save(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemoryStorage) Delete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
