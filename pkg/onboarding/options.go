package onboarding

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/aretw0/vestibule/pkg/welcome"
)

// DefaultDwell is how long the reveal step stays on screen before completion fires.
const DefaultDwell = 6 * time.Second

// DefaultStoreTimeout bounds the selection write made on completion.
const DefaultStoreTimeout = 3 * time.Second

// Option configures a Flow.
type Option func(*Flow)

// WithCapability sets the input capability. Defaults to pointer.
func WithCapability(c domain.Capability) Option {
	return func(f *Flow) {
		f.capability = c
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Flow) {
		f.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(f *Flow) {
		f.hooks = hooks
	}
}

// WithSelectionStore sets where the chosen guide ID is written on completion.
// Without a store, completion only invokes the callback.
func WithSelectionStore(store ports.SelectionStore) Option {
	return func(f *Flow) {
		f.store = store
	}
}

// WithSelectionKey overrides domain.SelectionKey.
func WithSelectionKey(key string) Option {
	return func(f *Flow) {
		f.key = key
	}
}

// WithDwell sets the reveal dwell time.
func WithDwell(d time.Duration) Option {
	return func(f *Flow) {
		f.dwell = d
	}
}

// WithStoreTimeout bounds the completion write.
func WithStoreTimeout(d time.Duration) Option {
	return func(f *Flow) {
		f.storeTimeout = d
	}
}

// WithMessages replaces the welcome message table.
func WithMessages(table welcome.Table) Option {
	return func(f *Flow) {
		f.messages = table
	}
}

// WithSeed fixes the shuffle seed. By default a random seed is drawn.
func WithSeed(seed int64) Option {
	return func(f *Flow) {
		f.seed = &seed
	}
}

// WithOnComplete sets the completion callback. It receives the selected guide ID.
func WithOnComplete(fn func(guideID string)) Option {
	return func(f *Flow) {
		f.onComplete = fn
	}
}

// WithSessionID names the flow. It shows up in events, logs and snapshots.
func WithSessionID(id string) Option {
	return func(f *Flow) {
		f.sessionID = id
	}
}

// WithContext binds the flow lifetime to ctx: cancelling it closes the flow.
func WithContext(ctx context.Context) Option {
	return func(f *Flow) {
		f.ctx = ctx
	}
}

// WithResolver sets the image resolver used by View.
func WithResolver(r *assets.Resolver) Option {
	return func(f *Flow) {
		f.resolver = r
	}
}

// WithObserver registers fn to receive a snapshot before and after every state change.
// It is called outside the flow lock.
func WithObserver(fn func(prev, next *domain.State)) Option {
	return func(f *Flow) {
		f.observers = append(f.observers, fn)
	}
}
