package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/vestibule/pkg/adapters/file"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	ports.RunStateStoreContract(t, file.New(t.TempDir()))
}

func TestFileSelectionStore_Contract(t *testing.T) {
	ports.RunSelectionStoreContract(t, file.NewSelectionStore(filepath.Join(t.TempDir(), "sel", "selection.json")))
}

func TestFileStore_NoTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Save(ctx, "s1", domain.NewState("s1", domain.CapabilityPointer, []string{"Vela"}, int64(i))))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1.json", entries[0].Name())

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), loaded.Seed)
}

func TestFileStore_RejectsPathTraversal(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "../escape", domain.NewState("x", domain.CapabilityPointer, nil, 1)))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
}

func TestFileSelectionStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	ctx := context.Background()

	require.NoError(t, file.NewSelectionStore(path).Put(ctx, domain.SelectionKey, "Orin"))

	got, err := file.NewSelectionStore(path).Get(ctx, domain.SelectionKey)
	require.NoError(t, err)
	assert.Equal(t, "Orin", got)
}
