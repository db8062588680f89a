package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/vestibule/internal/config"
	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoster = `guides:
  - id: Wren
    name: Wren
    title: Keeper of Small Things
    philosophy: Notice first.
    magistry: Magistry of Thread
    image: portrait:wren
    tone: playful
`

func TestNewHost_RosterFileAndAssetBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testRoster), 0644))

	host, err := NewHost(context.Background(), &config.Config{
		Store:     config.StoreMemory,
		Roster:    path,
		AssetBase: "https://cdn.example.com/",
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = host.Close() })

	guides := host.Engine.Guides()
	require.Len(t, guides, 1)
	assert.Equal(t, "Wren", guides[0].ID)
	assert.True(t, strings.HasPrefix(host.Engine.Resolver().Resolve("img/wren.png"), "https://cdn.example.com/"))
}

func TestNewHost_BadRoster(t *testing.T) {
	_, err := NewHost(context.Background(), &config.Config{
		Store:  config.StoreMemory,
		Roster: filepath.Join(t.TempDir(), "missing.yaml"),
	}, logging.NewNop())
	assert.Error(t, err)
}

func TestRunSession_JSONScript(t *testing.T) {
	dir := t.TempDir()
	host, err := NewHost(context.Background(), &config.Config{
		Store:   config.StoreFile,
		DataDir: dir,
		Dwell:   10 * time.Millisecond,
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = host.Close() })

	in := strings.NewReader("\"\"\n\"Orin\"\n\"confirm\"\n")
	var out bytes.Buffer
	err = RunSession(context.Background(), host.Engine, RunOptions{
		SessionID: "cli-1",
		VisitorID: "ada",
		JSON:      true,
		In:        in,
		Out:       &out,
	}, logging.NewNop())
	require.NoError(t, err)

	assert.Contains(t, out.String(), `"step":"reveal"`)
	assert.Contains(t, out.String(), "Orin will be your guide.")

	got, err := host.Engine.Selected(context.Background(), domain.VisitorSelectionKey("ada"))
	require.NoError(t, err)
	assert.Equal(t, "Orin", got)
}

func TestRunSession_Cancelled(t *testing.T) {
	host, err := NewHost(context.Background(), &config.Config{Store: config.StoreMemory}, logging.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pr, pw, err := os.Pipe()
	require.NoError(t, err)
	defer pw.Close()
	defer pr.Close()

	var out bytes.Buffer
	err = RunSession(ctx, host.Engine, RunOptions{In: pr, Out: &out}, logging.NewNop())
	assert.NoError(t, err, "interruption is a clean exit")
	assert.Contains(t, out.String(), "Interrupted at")
}

func TestHost_SessionsSweepIdleFlows(t *testing.T) {
	host, err := NewHost(context.Background(), &config.Config{
		Store:       config.StoreMemory,
		SessionIdle: 20 * time.Millisecond,
	}, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = host.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sessions := host.Sessions(ctx)
	defer sessions.Close()

	_, err = sessions.Start(ctx, "kiosk")
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return sessions.Live() == 0 }, 2*time.Second, 10*time.Millisecond)

	snap, err := sessions.Snapshot(ctx, "kiosk")
	require.NoError(t, err)
	assert.Equal(t, domain.StepWelcome, snap.Step)
}
