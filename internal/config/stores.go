package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/vestibule/pkg/adapters/file"
	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/adapters/redis"
	"github.com/aretw0/vestibule/pkg/adapters/sqlite"
	"github.com/aretw0/vestibule/pkg/persistence/middleware"
	"github.com/aretw0/vestibule/pkg/ports"
)

// Stores bundles the backends a host needs.
// Locker is nil unless the backend is shared between replicas.
type Stores struct {
	State     ports.StateStore
	Selection ports.SelectionStore
	Locker    ports.DistributedLocker

	closers []func() error
}

// Close releases the backend connections.
func (s *Stores) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenStores builds the state and selection stores for the configured backend.
// With an encryption key, session snapshots are sealed before they reach the backend.
func OpenStores(ctx context.Context, cfg *Config) (*Stores, error) {
	stores, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	enc, err := cfg.Encryption()
	if err != nil {
		_ = stores.Close()
		return nil, err
	}
	if enc != nil {
		mw, err := middleware.NewEncryptionMiddleware(*enc)
		if err != nil {
			_ = stores.Close()
			return nil, err
		}
		stores.State = middleware.Chain(stores.State, mw)
	}
	return stores, nil
}

func openBackend(ctx context.Context, cfg *Config) (*Stores, error) {
	switch cfg.Store {
	case StoreMemory, "":
		return &Stores{
			State:     memory.NewStore(),
			Selection: memory.NewSelectionStore(),
		}, nil

	case StoreFile:
		return &Stores{
			State:     file.New(filepath.Join(cfg.DataDir, "sessions")),
			Selection: file.NewSelectionStore(filepath.Join(cfg.DataDir, "selection.json")),
		}, nil

	case StoreRedis:
		client := redis.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
		}
		return &Stores{
			State:     redis.NewFromClient(client, redis.WithTTL(cfg.SessionTTL)),
			Selection: redis.NewSelectionStore(client, redis.DefaultPrefix),
			Locker:    redis.NewLocker(client, redis.DefaultPrefix),
			closers:   []func() error{client.Close},
		}, nil

	case StoreSQLite:
		path := cfg.DatabasePath()
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to ensure directory: %w", err)
		}
		db, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		return &Stores{
			State:     db.Sessions(),
			Selection: db.Selections(),
			closers:   []func() error{db.Close},
		}, nil
	}
	return nil, fmt.Errorf("unknown store %q", cfg.Store)
}
