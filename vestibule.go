package vestibule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/aretw0/vestibule/pkg/session"
	"github.com/aretw0/vestibule/pkg/welcome"
)

// ErrNotWatchable is returned by Watch when the roster loader cannot report changes.
var ErrNotWatchable = errors.New("roster loader does not support watching")

// Engine is the high-level entry point for the Vestibule library.
// It holds the roster, the message table and the stores shared by every session.
type Engine struct {
	mu     sync.RWMutex
	guides []domain.Guide

	loader     ports.RosterLoader
	messages   welcome.Table
	selections ports.SelectionStore
	states     ports.StateStore
	locker     ports.DistributedLocker
	resolver   *assets.Resolver
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	dwell      time.Duration
	strict     bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom RosterLoader. The built-in roster is used otherwise.
func WithLoader(l ports.RosterLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithGuides uses a fixed roster.
func WithGuides(guides ...domain.Guide) Option {
	return func(e *Engine) {
		e.loader = roster.NewStatic(guides...)
	}
}

// WithMessages overlays table on the default welcome messages.
func WithMessages(table welcome.Table) Option {
	return func(e *Engine) {
		e.messages = welcome.Default().Merge(table)
	}
}

// WithSelectionStore sets where completed selections are written.
func WithSelectionStore(s ports.SelectionStore) Option {
	return func(e *Engine) {
		e.selections = s
	}
}

// WithStateStore sets the snapshot store used by Sessions.
func WithStateStore(s ports.StateStore) Option {
	return func(e *Engine) {
		e.states = s
	}
}

// WithLocker enables distributed session locking in Sessions.
func WithLocker(l ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = l
	}
}

// WithResolver sets the image resolver handed to every flow.
func WithResolver(r *assets.Resolver) Option {
	return func(e *Engine) {
		e.resolver = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDwell sets how long the reveal step lasts before completion.
func WithDwell(d time.Duration) Option {
	return func(e *Engine) {
		e.dwell = d
	}
}

// WithStrictMessages makes New and Reload fail when a guide's tone has no message.
func WithStrictMessages() Option {
	return func(e *Engine) {
		e.strict = true
	}
}

// New initializes an Engine and loads the roster once.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		messages: welcome.Default(),
		dwell:    onboarding.DefaultDwell,
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}
	if eng.loader == nil {
		eng.loader = roster.NewStatic(roster.Builtin()...)
	}
	if eng.selections == nil {
		eng.selections = memory.NewSelectionStore()
	}
	if eng.states == nil {
		eng.states = memory.NewStore()
	}
	if eng.resolver == nil {
		r, err := assets.NewResolver()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize asset resolver: %w", err)
		}
		eng.resolver = r
	}

	if err := eng.Reload(context.Background()); err != nil {
		return nil, err
	}
	return eng, nil
}

// Reload reads the roster again. Running sessions keep the guides they started with.
// On error the current roster is kept.
func (e *Engine) Reload(ctx context.Context) error {
	guides, err := e.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	if err := roster.Validate(guides); err != nil {
		return fmt.Errorf("invalid roster: %w", err)
	}
	if missing := e.messages.Missing(guides); len(missing) > 0 {
		if e.strict {
			return fmt.Errorf("no welcome message for tones %v", missing)
		}
		e.logger.Warn("tones without welcome message, fallback will be used", "tones", missing)
	}

	e.mu.Lock()
	e.guides = guides
	e.mu.Unlock()

	e.logger.Debug("roster loaded", "guides", len(guides))
	return nil
}

// Watch reloads the roster whenever the loader reports a change and signals on the
// returned channel after each successful reload. Failed reloads are logged.
// The channel is closed when ctx is done.
func (e *Engine) Watch(ctx context.Context) (<-chan struct{}, error) {
	w, ok := e.loader.(ports.Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for range changes {
			if err := e.Reload(ctx); err != nil {
				e.logger.Error("roster reload failed", "err", err)
				continue
			}
			e.logger.Info("roster reloaded")
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()
	return out, nil
}

// Guides returns a copy of the current roster in its canonical order.
func (e *Engine) Guides() []domain.Guide {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]domain.Guide(nil), e.guides...)
}

// Messages returns the welcome message table.
func (e *Engine) Messages() welcome.Table {
	return e.messages
}

// Resolver returns the image resolver.
func (e *Engine) Resolver() *assets.Resolver {
	return e.resolver
}

// Selections returns the selection store.
func (e *Engine) Selections() ports.SelectionStore {
	return e.selections
}

// Begin starts a standalone flow bound to ctx. Cancelling ctx tears the flow down and
// cancels a pending completion. onComplete may be nil.
func (e *Engine) Begin(ctx context.Context, sessionID string, capability domain.Capability, onComplete func(guideID string), opts ...onboarding.Option) (*onboarding.Flow, error) {
	base := append(e.flowOptions(),
		onboarding.WithContext(ctx),
		onboarding.WithCapability(capability),
		onboarding.WithOnComplete(onComplete),
	)
	if sessionID != "" {
		base = append(base, onboarding.WithSessionID(sessionID))
	}
	return onboarding.New(e.Guides(), append(base, opts...)...)
}

// Selected returns the guide ID persisted under key.
// An empty key reads domain.SelectionKey.
func (e *Engine) Selected(ctx context.Context, key string) (string, error) {
	if key == "" {
		key = domain.SelectionKey
	}
	return e.selections.Get(ctx, key)
}

// Factory returns a session.Factory that builds flows over the engine roster.
// Resumed flows keep the card order stored in their snapshot.
func (e *Engine) Factory() session.Factory {
	return func(snap *domain.State, opts ...onboarding.Option) (*onboarding.Flow, error) {
		all := append(e.flowOptions(), opts...)
		if snap == nil {
			return onboarding.New(e.Guides(), all...)
		}
		return onboarding.Restore(e.Guides(), snap, all...)
	}
}

// Sessions creates a session manager over the engine state store.
func (e *Engine) Sessions(opts ...session.Option) *session.Manager {
	base := []session.Option{session.WithLogger(e.logger)}
	if e.locker != nil {
		base = append(base, session.WithLocker(e.locker))
	}
	return session.NewManager(e.states, e.Factory(), append(base, opts...)...)
}

func (e *Engine) flowOptions() []onboarding.Option {
	return []onboarding.Option{
		onboarding.WithLogger(e.logger),
		onboarding.WithLifecycleHooks(e.hooks),
		onboarding.WithMessages(e.messages),
		onboarding.WithSelectionStore(e.selections),
		onboarding.WithResolver(e.resolver),
		onboarding.WithDwell(e.dwell),
	}
}
