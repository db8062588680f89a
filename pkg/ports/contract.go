package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore implementation
// adheres to the defined interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		state := domain.NewState(sessionID, domain.CapabilityTouch, []string{"Vela", "Orin", "Sable"}, 42)
		state.Step = domain.StepConfirm
		state.SelectedGuideID = "Orin"
		state.PreviewFor = "Orin"
		state.History = append(state.History, domain.StepChoose, domain.StepConfirm)

		err := store.Save(ctx, sessionID, state)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, state.Step, loaded.Step)
		assert.Equal(t, state.Capability, loaded.Capability)
		assert.Equal(t, state.Order, loaded.Order)
		assert.Equal(t, state.Seed, loaded.Seed)
		assert.Equal(t, "Orin", loaded.SelectedGuideID)
		assert.Equal(t, state.History, loaded.History)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		loaded.Order[0] = "mutated"

		again, err := store.Load(ctx, sessionID)
		require.NoError(t, err)
		assert.NotEqual(t, "mutated", again.Order[0], "stored state must not alias loaded state")
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, domain.NewState(sessionID, domain.CapabilityPointer, []string{"Vela"}, 1))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, domain.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, domain.NewState(id1, domain.CapabilityPointer, nil, 1))
		_ = store.Save(ctx, id2, domain.NewState(id2, domain.CapabilityPointer, nil, 2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}

// RunSelectionStoreContract verifies that a SelectionStore implementation
// adheres to the defined interface contract.
func RunSelectionStoreContract(t *testing.T, store SelectionStore) {
	ctx := context.Background()
	key := domain.VisitorSelectionKey("contract-" + time.Now().Format("20060102150405"))

	t.Run("Get Missing", func(t *testing.T) {
		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrSelectionNotFound)
	})

	t.Run("Put and Get", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, "Vela"))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Vela", got)
	})

	t.Run("Put Overwrites", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, key, "Orin"))

		got, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "Orin", got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, key))

		_, err := store.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrSelectionNotFound)

		assert.NoError(t, store.Delete(ctx, key), "deleting a missing key is not an error")
	})
}
