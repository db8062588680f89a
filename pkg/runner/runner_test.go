package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/aretw0/vestibule/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlow(t *testing.T, opts ...onboarding.Option) *onboarding.Flow {
	t.Helper()
	f, err := onboarding.New(roster.Builtin(), append([]onboarding.Option{onboarding.WithSeed(7)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestRunner_TouchScriptCompletes(t *testing.T) {
	sel := memory.NewSelectionStore()
	var calls atomic.Int32
	flow := newFlow(t,
		onboarding.WithCapability(domain.CapabilityTouch),
		onboarding.WithSelectionStore(sel),
		onboarding.WithDwell(10*time.Millisecond),
		onboarding.WithOnComplete(func(string) { calls.Add(1) }),
	)

	in := strings.NewReader("\nvela\ntap Vela\nyes\n")
	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(in, out)))

	require.NoError(t, r.Run(context.Background(), flow))

	assert.Equal(t, int32(1), calls.Load())
	got, err := sel.Get(context.Background(), domain.SelectionKey)
	require.NoError(t, err)
	assert.Equal(t, "Vela", got)

	text := out.String()
	assert.Contains(t, text, "Choose your guide")
	assert.Contains(t, text, "Keeper of the Lantern")
	assert.Contains(t, text, "Vela will be your guide.")
}

func TestRunner_PointerByCardNumber(t *testing.T) {
	flow := newFlow(t, onboarding.WithDwell(10*time.Millisecond))
	order := flow.State().Order

	in := strings.NewReader("next\nhover 2\nleave\n2\nback\n2\ny\n")
	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(in, out)))

	require.NoError(t, r.Run(context.Background(), flow))
	st := flow.State()
	assert.True(t, st.Completed)
	assert.Equal(t, order[1], st.SelectedGuideID)
}

func TestRunner_EOFClosesFlowWithoutCompletion(t *testing.T) {
	var calls atomic.Int32
	flow := newFlow(t,
		onboarding.WithDwell(10*time.Millisecond),
		onboarding.WithOnComplete(func(string) { calls.Add(1) }),
	)

	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("\n"), io.Discard)))
	require.NoError(t, r.Run(context.Background(), flow))

	assert.True(t, flow.Closed())
	time.Sleep(30 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestRunner_InvalidCommandReported(t *testing.T) {
	flow := newFlow(t)

	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(strings.NewReader("\nghost\nquit\n"), out)))
	require.NoError(t, r.Run(context.Background(), flow))

	assert.Contains(t, out.String(), "unknown guide")
	assert.Contains(t, out.String(), "Bye!")
	assert.True(t, flow.Closed())
}

func TestRunner_ContextCancel(t *testing.T) {
	flow := newFlow(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	r := runner.NewRunner(runner.WithInputHandler(runner.NewTextHandler(pr, io.Discard)))

	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx, flow) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop")
	}
	assert.True(t, flow.Closed())
}

func TestRunner_JSONHandler(t *testing.T) {
	flow := newFlow(t, onboarding.WithDwell(10*time.Millisecond))

	in := strings.NewReader(`{"action":"proceed"}
{"action":"activate","guide":"Orin"}
"yes"
`)
	out := &bytes.Buffer{}
	r := runner.NewRunner(runner.WithInputHandler(runner.NewJSONHandler(in, out)))
	require.NoError(t, r.Run(context.Background(), flow))

	var steps []domain.Step
	var system []string
	dec := json.NewDecoder(out)
	for dec.More() {
		var ev struct {
			Type    string           `json:"type"`
			View    *onboarding.View `json:"view"`
			Message string           `json:"message"`
		}
		require.NoError(t, dec.Decode(&ev))
		if ev.View != nil {
			steps = append(steps, ev.View.Step)
		} else {
			system = append(system, ev.Message)
		}
	}

	assert.Equal(t, []domain.Step{domain.StepWelcome, domain.StepChoose, domain.StepConfirm, domain.StepReveal}, steps)
	assert.Equal(t, []string{"Orin will be your guide."}, system)
}

func TestTextHandler_ReaderStopsWhenRunEnds(t *testing.T) {
	flow := newFlow(t)

	// Lines after quit stay unread by the runner.
	in := strings.NewReader("\nquit\nvela\nyes\n")
	h := runner.NewTextHandler(in, io.Discard)
	r := runner.NewRunner(runner.WithInputHandler(h))
	require.NoError(t, r.Run(context.Background(), flow))

	assert.Eventually(t, func() bool {
		buf := make([]byte, 1<<20)
		n := runtime.Stack(buf, true)
		return !strings.Contains(string(buf[:n]), "(*TextHandler).pump")
	}, time.Second, 10*time.Millisecond, "background reader still running")

	_, err := h.Input(context.Background(), domain.StepChoose)
	assert.ErrorIs(t, err, io.EOF)
}
