package middleware_test

import (
	"context"
	"crypto/rand"
	"io"
	"testing"

	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/persistence/middleware"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKey(t *testing.T) []byte {
	k := make([]byte, middleware.KeySize)
	_, err := io.ReadFull(rand.Reader, k)
	require.NoError(t, err)
	return k
}

func seal(t *testing.T, cfg middleware.EncryptionConfig, next ports.StateStore) ports.StateStore {
	t.Helper()
	mw, err := middleware.NewEncryptionMiddleware(cfg)
	require.NoError(t, err)
	return mw(next)
}

func visitorState() *domain.State {
	st := domain.NewState("test-session", domain.CapabilityTouch, []string{"Vela", "Orin"}, 42)
	st.Step = domain.StepConfirm
	st.SelectedGuideID = "Orin"
	st.SelectionKey = domain.VisitorSelectionKey("ada@example.com")
	return st
}

func TestEncryptionMiddleware_Roundtrip(t *testing.T) {
	underlying := memory.NewStore()
	secure := seal(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)

	ctx := context.Background()
	original := visitorState()
	require.NoError(t, secure.Save(ctx, "test-session", original))

	stored, err := underlying.Load(ctx, "test-session")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Sealed)
	assert.Equal(t, domain.StepConfirm, stored.Step, "step stays visible")
	assert.Empty(t, stored.SelectionKey, "visitor key is hidden")
	assert.Empty(t, stored.SelectedGuideID)
	assert.Empty(t, stored.Order)

	loaded, err := secure.Load(ctx, "test-session")
	require.NoError(t, err)
	assert.Equal(t, original.SelectionKey, loaded.SelectionKey)
	assert.Equal(t, original.Order, loaded.Order)
	assert.Equal(t, original.Seed, loaded.Seed)
	assert.Empty(t, loaded.Sealed)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	underlying := memory.NewStore()
	oldKey := generateKey(t)
	newKey := generateKey(t)
	ctx := context.Background()

	secureOld := seal(t, middleware.EncryptionConfig{ActiveKey: oldKey}, underlying)
	require.NoError(t, secureOld.Save(ctx, "rotation-session", visitorState()))

	secureNew := seal(t, middleware.EncryptionConfig{
		ActiveKey:    newKey,
		FallbackKeys: [][]byte{oldKey},
	}, underlying)

	loaded, err := secureNew.Load(ctx, "rotation-session")
	require.NoError(t, err, "fallback key decrypts")
	assert.Equal(t, "Orin", loaded.SelectedGuideID)

	// Saving again re-encrypts with the new key.
	require.NoError(t, secureNew.Save(ctx, "rotation-session", loaded))
	_, err = secureOld.Load(ctx, "rotation-session")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainSnapshot(t *testing.T) {
	underlying := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, underlying.Save(ctx, "plain", visitorState()))

	secure := seal(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, underlying)
	_, err := secure.Load(ctx, "plain")
	assert.ErrorIs(t, err, middleware.ErrNotSealed)

	_, err = secure.Load(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestEncryptionMiddleware_InvalidKey(t *testing.T) {
	_, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: []byte("short-key")})
	assert.Error(t, err)

	_, err = middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    generateKey(t),
		FallbackKeys: [][]byte{[]byte("short")},
	})
	assert.Error(t, err)
}

func TestEncryptionMiddleware_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, seal(t, middleware.EncryptionConfig{ActiveKey: generateKey(t)}, memory.NewStore()))
}
