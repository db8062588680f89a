package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/vestibule"
	"github.com/aretw0/vestibule/internal/config"
	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/observability"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/aretw0/vestibule/pkg/session"
)

// Host is an engine together with the stores it was built on.
type Host struct {
	Engine *vestibule.Engine
	Stores *config.Stores

	idle time.Duration
}

// Sessions returns a session manager that drops idle flows from memory until
// ctx is done. Their snapshots stay in the store.
func (h *Host) Sessions(ctx context.Context) *session.Manager {
	m := h.Engine.Sessions(session.WithIdleTimeout(h.idle))
	go m.RunSweeper(ctx, h.idle/2)
	return m
}

// Close releases the store connections.
func (h *Host) Close() error {
	return h.Stores.Close()
}

// NewHost builds an engine following the CLI conventions: stores from cfg, a roster
// file when one is configured, and lifecycle hooks that log every transition.
func NewHost(ctx context.Context, cfg *config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*Host, error) {
	stores, err := config.OpenStores(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var resolverOpts []assets.Option
	if cfg.AssetBase != "" {
		resolverOpts = append(resolverOpts, assets.WithBase(cfg.AssetBase))
	}
	resolver, err := assets.NewResolver(resolverOpts...)
	if err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("failed to initialize asset resolver: %w", err)
	}

	opts := []vestibule.Option{
		vestibule.WithLogger(logger),
		vestibule.WithLifecycleHooks(observability.Combine(append([]domain.LifecycleHooks{observability.LogHooks(logger)}, hooks...)...)),
		vestibule.WithStateStore(stores.State),
		vestibule.WithSelectionStore(stores.Selection),
		vestibule.WithResolver(resolver),
		vestibule.WithDwell(cfg.EffectiveDwell()),
	}
	if stores.Locker != nil {
		opts = append(opts, vestibule.WithLocker(stores.Locker))
	}
	if cfg.Roster != "" {
		opts = append(opts, vestibule.WithLoader(roster.NewFileLoader(cfg.Roster)))
	}

	engine, err := vestibule.New(opts...)
	if err != nil {
		_ = stores.Close()
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}

	logger.Debug("engine ready", "store", cfg.Store, "guides", len(engine.Guides()), "roster", cfg.Roster)
	return &Host{Engine: engine, Stores: stores, idle: cfg.SessionIdle}, nil
}
