package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/vestibule/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// SelectionStore implements ports.SelectionStore with plain Redis strings.
// Selections never expire.
type SelectionStore struct {
	client *backend.Client
	prefix string
}

// NewSelectionStore creates a selection store. An empty prefix uses DefaultPrefix.
func NewSelectionStore(client *backend.Client, prefix string) *SelectionStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &SelectionStore{client: client, prefix: prefix}
}

// Put stores value under key.
func (s *SelectionStore) Put(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store selection: %w", err)
	}
	return nil
}

// Get returns the value under key.
func (s *SelectionStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", domain.ErrSelectionNotFound
		}
		return "", fmt.Errorf("failed to get selection: %w", err)
	}
	return val, nil
}

// Delete removes key.
func (s *SelectionStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
