package ports

import (
	"context"

	"github.com/aretw0/vestibule/pkg/domain"
)

// StateStore defines the interface for persisting flow snapshots.
// This allows a server host to resume an onboarding session after a restart.
type StateStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.State) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.State, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns all active session IDs.
	List(ctx context.Context) ([]string, error)
}

// SelectionStore persists the single fact the onboarding flow produces:
// the identifier of the chosen guide, stored as a plain string under a key.
type SelectionStore interface {
	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Get returns the value stored under key.
	// Returns domain.ErrSelectionNotFound if nothing is stored.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes the value stored under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
