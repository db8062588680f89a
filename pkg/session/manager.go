package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/google/uuid"
)

// DefaultLockTTL bounds how long a distributed session lock is held.
const DefaultLockTTL = 30 * time.Second

// Factory builds a flow for a session. snap is nil for a new session and holds
// the stored snapshot when a session is resumed. The manager appends its own
// options (session ID, observer) after the caller's.
type Factory func(snap *domain.State, opts ...onboarding.Option) (*onboarding.Flow, error)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store   ports.StateStore
	factory Factory

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	flowsMu sync.RWMutex
	flows   map[string]*liveFlow

	subsMu sync.Mutex
	subs   map[string]map[chan *domain.StateDiff]struct{}

	saveMu sync.Mutex

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	idle    time.Duration
	logger  *slog.Logger
}

// liveFlow is a flow held in memory and the last time it was used.
type liveFlow struct {
	flow *onboarding.Flow
	seen atomic.Int64
}

func (l *liveFlow) touch() {
	l.seen.Store(time.Now().UnixNano())
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock lease.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithIdleTimeout lets Sweep drop flows that have not been used for d.
// Their snapshots stay in the store and Get resumes them. Zero disables it.
func WithIdleTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.idle = d
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager over a snapshot store and a flow factory.
func NewManager(store ports.StateStore, factory Factory, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		factory: factory,
		locks:   make(map[string]*lockEntry),
		flows:   make(map[string]*liveFlow),
		subs:    make(map[string]map[chan *domain.StateDiff]struct{}),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// Start creates a new flow. An empty sessionID gets a random one.
func (m *Manager) Start(ctx context.Context, sessionID string, opts ...onboarding.Option) (*onboarding.Flow, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var flow *onboarding.Flow
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if _, ok := m.live(sessionID); ok {
			return fmt.Errorf("%w: %s", domain.ErrSessionExists, sessionID)
		}
		// A snapshot may belong to a flow dropped from memory or held by another instance.
		if _, err := m.store.Load(ctx, sessionID); err == nil {
			return fmt.Errorf("%w: %s", domain.ErrSessionExists, sessionID)
		} else if !errors.Is(err, domain.ErrSessionNotFound) {
			return fmt.Errorf("failed to check session: %w", err)
		}

		f, err := m.factory(nil, append(opts, m.flowOptions(sessionID)...)...)
		if err != nil {
			return err
		}
		if err := m.store.Save(ctx, sessionID, f.State()); err != nil {
			f.Close()
			return fmt.Errorf("failed to initialize session: %w", err)
		}
		m.register(sessionID, f)
		flow = f
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("session started", "session_id", sessionID, "capability", flow.Capability())
	return flow, nil
}

// Get returns the live flow for sessionID, resuming it from its snapshot if needed.
func (m *Manager) Get(ctx context.Context, sessionID string) (*onboarding.Flow, error) {
	if f, ok := m.live(sessionID); ok {
		return f, nil
	}

	var flow *onboarding.Flow
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		flow, err = m.resume(ctx, sessionID)
		return err
	})
	return flow, err
}

// Do runs fn against the session's flow while holding the session lock.
// Snapshots are persisted by the flow observer, so fn only drives the flow.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(*onboarding.Flow) error) (*onboarding.Flow, error) {
	var flow *onboarding.Flow
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		f, err := m.resume(ctx, sessionID)
		if err != nil {
			return err
		}
		flow = f
		return fn(f)
	})
	return flow, err
}

// End closes the flow (cancelling a pending completion) and deletes its snapshot.
func (m *Manager) End(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		f, live := m.live(sessionID)
		if !live {
			if _, err := m.store.Load(ctx, sessionID); err != nil {
				return err
			}
		}
		m.unregister(sessionID)
		if f != nil {
			f.Close()
		}
		m.closeSubscribers(sessionID)
		if err := m.store.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
		m.logger.Info("session ended", "session_id", sessionID)
		return nil
	})
}

// Snapshot returns the stored snapshot without resuming the flow.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (*domain.State, error) {
	if f, ok := m.live(sessionID); ok {
		return f.State(), nil
	}
	return m.store.Load(ctx, sessionID)
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying state store.
func (m *Manager) Store() ports.StateStore {
	return m.store
}

// Live returns the number of flows held in memory. Finished flows are dropped
// as soon as their final snapshot is saved.
func (m *Manager) Live() int {
	m.flowsMu.RLock()
	defer m.flowsMu.RUnlock()
	return len(m.flows)
}

// Close closes every live flow. Snapshots are kept so the flows can be resumed.
// Pending completions are cancelled; a resumed reveal re-arms them.
func (m *Manager) Close() {
	m.flowsMu.Lock()
	flows := m.flows
	m.flows = make(map[string]*liveFlow)
	m.flowsMu.Unlock()

	for id, l := range flows {
		l.flow.Close()
		m.closeSubscribers(id)
	}
}

// Sweep closes flows idle for longer than the idle timeout and drops them from
// memory. It returns how many were dropped.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.idle <= 0 {
		return 0
	}
	cutoff := time.Now().Add(-m.idle).UnixNano()

	m.flowsMu.RLock()
	var stale []string
	for id, l := range m.flows {
		if l.seen.Load() < cutoff {
			stale = append(stale, id)
		}
	}
	m.flowsMu.RUnlock()

	dropped := 0
	for _, id := range stale {
		err := m.WithLock(ctx, id, func(ctx context.Context) error {
			m.flowsMu.Lock()
			l, ok := m.flows[id]
			if !ok || l.seen.Load() >= cutoff {
				m.flowsMu.Unlock()
				return nil
			}
			delete(m.flows, id)
			m.flowsMu.Unlock()

			l.flow.Close()
			m.closeSubscribers(id)
			dropped++
			return nil
		})
		if err != nil {
			m.logger.Warn("failed to sweep idle session", "session_id", id, "err", err)
		}
	}
	if dropped > 0 {
		m.logger.Debug("idle sessions dropped", "count", dropped)
	}
	return dropped
}

// RunSweeper calls Sweep every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval time.Duration) {
	if m.idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// Subscribe streams state diffs for sessionID. The returned function
// unsubscribes; the channel is closed when the session ends.
func (m *Manager) Subscribe(sessionID string) (<-chan *domain.StateDiff, func()) {
	ch := make(chan *domain.StateDiff, 16)

	m.subsMu.Lock()
	set, ok := m.subs[sessionID]
	if !ok {
		set = make(map[chan *domain.StateDiff]struct{})
		m.subs[sessionID] = set
	}
	set[ch] = struct{}{}
	m.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.subsMu.Lock()
			defer m.subsMu.Unlock()
			if set, ok := m.subs[sessionID]; ok {
				if _, ok := set[ch]; ok {
					delete(set, ch)
					close(ch)
				}
				if len(set) == 0 {
					delete(m.subs, sessionID)
				}
			}
		})
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// resume returns the live flow or rebuilds it from the store. The caller holds the session lock.
func (m *Manager) resume(ctx context.Context, sessionID string) (*onboarding.Flow, error) {
	if f, ok := m.live(sessionID); ok {
		return f, nil
	}

	snap, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	f, err := m.factory(snap, m.flowOptions(sessionID)...)
	if err != nil {
		return nil, fmt.Errorf("failed to resume session %s: %w", sessionID, err)
	}
	m.register(sessionID, f)
	m.logger.Info("session resumed", "session_id", sessionID, "step", snap.Step)
	return f, nil
}

func (m *Manager) flowOptions(sessionID string) []onboarding.Option {
	return []onboarding.Option{
		onboarding.WithSessionID(sessionID),
		onboarding.WithObserver(func(prev, next *domain.State) {
			m.persist(sessionID, next)
			m.publish(sessionID, domain.Diff(prev, next))
		}),
	}
}

// persist saves the latest state of the live flow. Observers can run out of
// order, so the flow is asked for its current state instead of trusting next.
func (m *Manager) persist(sessionID string, next *domain.State) {
	f, ok := m.live(sessionID)
	if !ok {
		// Not registered yet (Start saves the initial state itself) or already ended.
		return
	}
	m.save(sessionID, f)
}

func (m *Manager) save(sessionID string, f *onboarding.Flow) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	st := f.State()
	if err := m.store.Save(ctx, sessionID, st); err != nil {
		m.logger.Warn("failed to persist session snapshot", "session_id", sessionID, "step", st.Step, "err", err)
	}
}

// retire waits for f to finish and drops it from memory. A completed flow
// saves its final snapshot first; a closed one was ended or swept and keeps
// whatever the store already holds.
func (m *Manager) retire(sessionID string, f *onboarding.Flow) {
	<-f.Done()

	// Local lock only: End holds it too, so a deleted snapshot is never saved again.
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	m.flowsMu.Lock()
	l, ok := m.flows[sessionID]
	current := ok && l.flow == f
	m.flowsMu.Unlock()
	if !current {
		return
	}

	if !f.Closed() {
		m.save(sessionID, f)
	}

	m.flowsMu.Lock()
	if l, ok := m.flows[sessionID]; ok && l.flow == f {
		delete(m.flows, sessionID)
	}
	m.flowsMu.Unlock()
}

func (m *Manager) publish(sessionID string, diff *domain.StateDiff) {
	if diff == nil {
		return
	}
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for ch := range m.subs[sessionID] {
		select {
		case ch <- diff:
		default:
			m.logger.Warn("dropping state diff for slow subscriber", "session_id", sessionID)
		}
	}
}

func (m *Manager) closeSubscribers(sessionID string) {
	m.subsMu.Lock()
	defer m.subsMu.Unlock()
	for ch := range m.subs[sessionID] {
		close(ch)
	}
	delete(m.subs, sessionID)
}

func (m *Manager) live(sessionID string) (*onboarding.Flow, bool) {
	m.flowsMu.RLock()
	defer m.flowsMu.RUnlock()
	l, ok := m.flows[sessionID]
	if !ok {
		return nil, false
	}
	l.touch()
	return l.flow, true
}

func (m *Manager) register(sessionID string, f *onboarding.Flow) {
	l := &liveFlow{flow: f}
	l.touch()

	m.flowsMu.Lock()
	m.flows[sessionID] = l
	m.flowsMu.Unlock()

	go m.retire(sessionID, f)
}

func (m *Manager) unregister(sessionID string) {
	m.flowsMu.Lock()
	defer m.flowsMu.Unlock()
	delete(m.flows, sessionID)
}
