package memory

import (
	"context"
	"sync"

	"github.com/aretw0/vestibule/pkg/domain"
)

// SelectionStore implements ports.SelectionStore in memory.
// Safe for concurrent use.
type SelectionStore struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewSelectionStore creates an empty selection store.
func NewSelectionStore() *SelectionStore {
	return &SelectionStore{data: make(map[string]string)}
}

// Put stores value under key.
func (s *SelectionStore) Put(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Get returns the value under key.
func (s *SelectionStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", domain.ErrSelectionNotFound
	}
	return v, nil
}

// Delete removes key.
func (s *SelectionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
