package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/vestibule/pkg/domain"
)

// SelectionStore implements ports.SelectionStore as a single JSON object on disk.
// Writes go through the same atomic rename as session files.
type SelectionStore struct {
	Path string
	mu   sync.Mutex
}

// NewSelectionStore creates a store backed by path.
// If path is empty, it defaults to ".vestibule/selection.json".
func NewSelectionStore(path string) *SelectionStore {
	if path == "" {
		path = filepath.Join(".vestibule", "selection.json")
	}
	return &SelectionStore{Path: path}
}

// Put stores value under key.
func (s *SelectionStore) Put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	data[key] = value
	return s.write(data)
}

// Get returns the value under key.
func (s *SelectionStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := data[key]
	if !ok {
		return "", domain.ErrSelectionNotFound
	}
	return v, nil
}

// Delete removes key.
func (s *SelectionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return s.write(data)
}

func (s *SelectionStore) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read selection file: %w", err)
	}
	data := map[string]string{}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal selection file: %w", err)
	}
	return data, nil
}

func (s *SelectionStore) write(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal selections: %w", err)
	}
	return writeAtomic(filepath.Dir(s.Path), filepath.Base(s.Path), raw)
}
