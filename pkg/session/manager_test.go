package session_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/vestibule/pkg/adapters/memory"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/aretw0/vestibule/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore simulates latency to provoke race conditions if locking is missing.
type SlowStore struct {
	*memory.Store
	saves atomic.Int32
}

func (s *SlowStore) Save(ctx context.Context, sessionID string, state *domain.State) error {
	time.Sleep(2 * time.Millisecond) // Simulate IO
	s.saves.Add(1)
	return s.Store.Save(ctx, sessionID, state)
}

func factory(dwell time.Duration, onComplete func(string)) session.Factory {
	return func(snap *domain.State, opts ...onboarding.Option) (*onboarding.Flow, error) {
		base := []onboarding.Option{onboarding.WithDwell(dwell), onboarding.WithOnComplete(onComplete)}
		if snap != nil {
			return onboarding.Restore(roster.Builtin(), snap, append(base, opts...)...)
		}
		return onboarding.New(roster.Builtin(), append(base, opts...)...)
	}
}

func newManager(t *testing.T, store *SlowStore, dwell time.Duration) *session.Manager {
	t.Helper()
	mgr := session.NewManager(store, factory(dwell, nil))
	t.Cleanup(mgr.Close)
	return mgr
}

func newStore() *SlowStore {
	return &SlowStore{Store: memory.NewStore()}
}

func TestManager_StartPersistsSnapshot(t *testing.T) {
	store := newStore()
	mgr := newManager(t, store, time.Hour)
	ctx := context.Background()

	f, err := mgr.Start(ctx, "s1", onboarding.WithCapability(domain.CapabilityTouch))
	require.NoError(t, err)
	assert.Equal(t, "s1", f.SessionID())

	snap, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepWelcome, snap.Step)
	assert.Equal(t, domain.CapabilityTouch, snap.Capability)

	_, err = mgr.Start(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionExists, "starting a running session twice is rejected")
}

func TestManager_DoPersistsEveryChange(t *testing.T) {
	store := newStore()
	mgr := newManager(t, store, time.Hour)
	ctx := context.Background()

	_, err := mgr.Start(ctx, "s1")
	require.NoError(t, err)

	_, err = mgr.Do(ctx, "s1", func(f *onboarding.Flow) error { return f.Proceed() })
	require.NoError(t, err)
	_, err = mgr.Do(ctx, "s1", func(f *onboarding.Flow) error { return f.Activate("Orin") })
	require.NoError(t, err)

	snap, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepConfirm, snap.Step)
	assert.Equal(t, "Orin", snap.SelectedGuideID)

	_, err = mgr.Do(ctx, "s1", func(f *onboarding.Flow) error { return f.Proceed() })
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestManager_ResumesAfterRestart(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	first := session.NewManager(store, factory(time.Hour, nil))
	f, err := first.Start(ctx, "s1")
	require.NoError(t, err)
	order := f.State().Order
	_, err = first.Do(ctx, "s1", func(f *onboarding.Flow) error { return f.Proceed() })
	require.NoError(t, err)
	first.Close()

	second := newManager(t, store, time.Hour)
	assert.Equal(t, 0, second.Live())

	resumed, err := second.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoose, resumed.Step())
	assert.Equal(t, order, resumed.State().Order)
	assert.Equal(t, 1, second.Live())
}

func TestManager_ResumedRevealCompletes(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	first := session.NewManager(store, factory(time.Hour, nil))
	_, err := first.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = first.Do(ctx, "s1", func(f *onboarding.Flow) error {
		if err := f.Proceed(); err != nil {
			return err
		}
		if err := f.Activate("Vela"); err != nil {
			return err
		}
		return f.Confirm()
	})
	require.NoError(t, err)
	first.Close()

	done := make(chan string, 1)
	second := session.NewManager(store, factory(time.Millisecond, func(id string) { done <- id }))
	defer second.Close()

	_, err = second.Get(ctx, "s1")
	require.NoError(t, err)

	select {
	case id := <-done:
		assert.Equal(t, "Vela", id)
	case <-time.After(2 * time.Second):
		t.Fatal("resumed reveal did not complete")
	}

	assert.Eventually(t, func() bool {
		snap, err := store.Load(ctx, "s1")
		return err == nil && snap.Completed
	}, time.Second, 10*time.Millisecond)
}

func TestManager_End(t *testing.T) {
	store := newStore()
	mgr := newManager(t, store, time.Hour)
	ctx := context.Background()

	f, err := mgr.Start(ctx, "s1")
	require.NoError(t, err)
	diffs, _ := mgr.Subscribe("s1")

	require.NoError(t, mgr.End(ctx, "s1"))
	assert.True(t, f.Closed())
	assert.Equal(t, 0, mgr.Live())

	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, open := <-diffs
	assert.False(t, open, "subscribers are closed when the session ends")

	assert.ErrorIs(t, mgr.End(ctx, "s1"), domain.ErrSessionNotFound)
	_, err = mgr.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestManager_Subscribe(t *testing.T) {
	mgr := newManager(t, newStore(), time.Hour)
	ctx := context.Background()

	_, err := mgr.Start(ctx, "s1")
	require.NoError(t, err)

	diffs, unsubscribe := mgr.Subscribe("s1")
	defer unsubscribe()

	_, err = mgr.Do(ctx, "s1", func(f *onboarding.Flow) error { return f.Proceed() })
	require.NoError(t, err)

	select {
	case d := <-diffs:
		require.NotNil(t, d.Step)
		assert.Equal(t, domain.StepChoose, *d.Step)
	case <-time.After(time.Second):
		t.Fatal("no diff received")
	}

	unsubscribe()
	unsubscribe()
}

func TestManager_Locking(t *testing.T) {
	store := newStore()
	mgr := newManager(t, store, time.Hour)
	ctx := context.Background()

	_, err := mgr.Start(ctx, "race-test")
	require.NoError(t, err)
	_, err = mgr.Do(ctx, "race-test", func(f *onboarding.Flow) error { return f.Proceed() })
	require.NoError(t, err)

	// Concurrent activations: exactly one can win the choose -> confirm edge.
	var wg sync.WaitGroup
	var wins atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Do(ctx, "race-test", func(f *onboarding.Flow) error { return f.Activate("Sable") })
			if err == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestManager_LockLifecycle(t *testing.T) {
	mgr := newManager(t, newStore(), time.Hour)
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_ = mgr.WithLock(ctx, "s", func(ctx context.Context) error { return nil })
	}
	// Locks are released when unused; a fresh WithLock must not block.
	done := make(chan struct{})
	go func() {
		_ = mgr.WithLock(ctx, "s", func(ctx context.Context) error { return nil })
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock leaked")
	}
}

func TestManager_FinishedFlowsLeaveMemory(t *testing.T) {
	store := newStore()
	var completions atomic.Int32
	mgr := session.NewManager(store, factory(5*time.Millisecond, func(string) { completions.Add(1) }))
	t.Cleanup(mgr.Close)
	ctx := context.Background()

	const n = 20
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("s%d", i)
		_, err := mgr.Start(ctx, id)
		require.NoError(t, err)
		_, err = mgr.Do(ctx, id, func(f *onboarding.Flow) error {
			if err := f.Proceed(); err != nil {
				return err
			}
			if err := f.Activate("Orin"); err != nil {
				return err
			}
			return f.Confirm()
		})
		require.NoError(t, err)
	}

	assert.Eventually(t, func() bool { return mgr.Live() == 0 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(n), completions.Load())

	snap, err := store.Load(ctx, "s7")
	require.NoError(t, err)
	assert.True(t, snap.Completed)

	restored, err := mgr.Snapshot(ctx, "s7")
	require.NoError(t, err)
	assert.Equal(t, domain.StepReveal, restored.Step)
	assert.True(t, restored.Completed)
	assert.Equal(t, int32(n), completions.Load(), "a completed session does not fire again")
}

func TestManager_StartRejectsStoredSession(t *testing.T) {
	store := newStore()
	ctx := context.Background()

	first := session.NewManager(store, factory(time.Hour, nil))
	_, err := first.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = first.Do(ctx, "s1", func(f *onboarding.Flow) error { return f.Proceed() })
	require.NoError(t, err)
	first.Close()

	second := newManager(t, store, time.Hour)
	_, err = second.Start(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionExists)

	snap, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoose, snap.Step, "stored snapshot is left alone")
}

func TestManager_SweepDropsIdleFlows(t *testing.T) {
	store := newStore()
	mgr := session.NewManager(store, factory(time.Hour, nil), session.WithIdleTimeout(20*time.Millisecond))
	t.Cleanup(mgr.Close)
	ctx := context.Background()

	f, err := mgr.Start(ctx, "idle")
	require.NoError(t, err)
	_, err = mgr.Do(ctx, "idle", func(f *onboarding.Flow) error { return f.Proceed() })
	require.NoError(t, err)
	_, err = mgr.Start(ctx, "busy")
	require.NoError(t, err)

	assert.Equal(t, 0, mgr.Sweep(ctx), "nothing is idle yet")

	time.Sleep(40 * time.Millisecond)
	_, err = mgr.Get(ctx, "busy")
	require.NoError(t, err)

	assert.Equal(t, 1, mgr.Sweep(ctx))
	assert.True(t, f.Closed())
	assert.Equal(t, 1, mgr.Live())

	resumed, err := mgr.Get(ctx, "idle")
	require.NoError(t, err)
	assert.Equal(t, domain.StepChoose, resumed.Step())
	assert.Equal(t, 2, mgr.Live())
}

func TestManager_SweepDisabledByDefault(t *testing.T) {
	mgr := newManager(t, newStore(), time.Hour)
	_, err := mgr.Start(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, mgr.Sweep(context.Background()))
	assert.Equal(t, 1, mgr.Live())
}
