package ports

import (
	"context"

	"github.com/aretw0/vestibule/pkg/domain"
)

// RosterLoader defines how the flow retrieves the guide roster.
// This allows the roster source (file, memory, remote) to be decoupled.
type RosterLoader interface {
	// Load returns the full roster. The returned slice is owned by the caller.
	Load(ctx context.Context) ([]domain.Guide, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload of the roster in long-running hosts.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying roster changes.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
