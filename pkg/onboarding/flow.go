package onboarding

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/assets"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/ports"
	"github.com/aretw0/vestibule/pkg/roster"
	"github.com/aretw0/vestibule/pkg/welcome"
	"github.com/google/uuid"
)

// Flow is one onboarding session. It is safe for concurrent use.
type Flow struct {
	mu       sync.Mutex
	state    *domain.State
	guides   []domain.Guide // display order
	message  *domain.Message
	notifier *notifier
	closed   bool

	finished   chan struct{}
	finishOnce sync.Once
	stopCtx    func() bool

	sessionID    string
	capability   domain.Capability
	policy       inputPolicy
	seed         *int64
	messages     welcome.Table
	resolver     *assets.Resolver
	store        ports.SelectionStore
	key          string
	dwell        time.Duration
	storeTimeout time.Duration
	onComplete   func(guideID string)
	hooks        domain.LifecycleHooks
	observers    []func(prev, next *domain.State)
	logger       *slog.Logger
	ctx          context.Context
}

type effect func(ctx context.Context)

func configure(opts []Option) *Flow {
	f := &Flow{
		capability:   domain.CapabilityPointer,
		key:          domain.SelectionKey,
		dwell:        DefaultDwell,
		storeTimeout: DefaultStoreTimeout,
		messages:     welcome.Default(),
		ctx:          context.Background(),
		finished:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.logger == nil {
		f.logger = logging.NewNop()
	}
	if f.sessionID == "" {
		f.sessionID = uuid.NewString()
	}
	if f.capability != domain.CapabilityTouch {
		f.capability = domain.CapabilityPointer
	}
	f.logger = f.logger.With("session_id", f.sessionID)
	f.policy = policyFor(f.capability)
	return f
}

// New starts a flow at the welcome step over a shuffled copy of guides.
func New(guides []domain.Guide, opts ...Option) (*Flow, error) {
	if len(guides) == 0 {
		return nil, domain.ErrEmptyRoster
	}
	f := configure(opts)

	var seed int64
	if f.seed != nil {
		seed = *f.seed
	} else {
		s, err := roster.NewSeed()
		if err != nil {
			return nil, err
		}
		seed = s
	}

	ordered, ids := roster.Order(guides, seed)
	f.guides = ordered
	f.state = domain.NewState(f.sessionID, f.capability, ids, seed)
	f.state.SelectionKey = f.key
	f.bind()

	f.logger.Debug("onboarding started", "capability", f.capability, "guides", len(ordered))
	f.emit(nil, f.state.Snapshot(), []effect{f.stepEnter(domain.StepWelcome, "")})
	return f, nil
}

// Restore resumes a flow from a snapshot. The card order, capability and step are
// taken from the snapshot; guides missing from the roster are dropped from the order.
// A snapshot in reveal that has not completed yet re-arms the completion notifier.
func Restore(guides []domain.Guide, snap *domain.State, opts ...Option) (*Flow, error) {
	if snap == nil {
		return nil, fmt.Errorf("restore: %w", domain.ErrSessionNotFound)
	}
	opts = append(opts,
		WithSessionID(snap.SessionID),
		WithCapability(snap.Capability),
		WithSeed(snap.Seed),
	)
	if snap.SelectionKey != "" {
		opts = append(opts, WithSelectionKey(snap.SelectionKey))
	}
	f := configure(opts)

	ordered := roster.Arrange(guides, snap.Order)
	if len(ordered) == 0 {
		return nil, domain.ErrEmptyRoster
	}
	f.guides = ordered

	st := snap.Snapshot()
	st.Order = roster.IDs(ordered)
	st.Capability = f.capability
	st.SelectionKey = f.key
	switch st.Step {
	case domain.StepWelcome, domain.StepChoose:
		st.SelectedGuideID = ""
		st.Completed = false
	case domain.StepConfirm, domain.StepReveal:
		if _, ok := f.guide(st.SelectedGuideID); !ok {
			return nil, fmt.Errorf("restore %s: %w: %q", st.SessionID, domain.ErrUnknownGuide, st.SelectedGuideID)
		}
	default:
		return nil, fmt.Errorf("restore %s: %w: unknown step %q", st.SessionID, domain.ErrInvalidTransition, st.Step)
	}
	if _, ok := f.guide(st.PreviewFor); !ok {
		st.PreviewFor = ""
	}
	f.state = st
	f.bind()

	f.mu.Lock()
	if st.Step == domain.StepReveal {
		f.enterReveal(st)
	}
	step, completed := st.Step, st.Completed
	f.mu.Unlock()

	f.logger.Debug("onboarding restored", "step", step, "completed", completed)
	return f, nil
}

func (f *Flow) bind() {
	if f.ctx.Done() != nil {
		f.stopCtx = context.AfterFunc(f.ctx, f.Close)
	}
}

// Proceed moves from welcome to choose.
func (f *Flow) Proceed() error {
	return f.apply("proceed", func(st *domain.State) ([]effect, error) {
		if st.Step != domain.StepWelcome {
			return nil, invalid("proceed", st.Step)
		}
		return f.transition(st, domain.StepChoose, ""), nil
	})
}

// Hover previews a guide on pointer devices. Touch devices ignore it.
func (f *Flow) Hover(guideID string) error {
	return f.apply("hover", func(st *domain.State) ([]effect, error) {
		if err := f.checkChoose("hover", st, guideID); err != nil {
			return nil, err
		}
		if !f.policy.hover(st, guideID) {
			return nil, nil
		}
		st.PreviewFor = guideID
		return []effect{f.preview(guideID)}, nil
	})
}

// Unhover hides the current preview.
func (f *Flow) Unhover() error {
	return f.apply("unhover", func(st *domain.State) ([]effect, error) {
		if st.Step != domain.StepChoose {
			return nil, invalid("unhover", st.Step)
		}
		if st.PreviewFor == "" {
			return nil, nil
		}
		st.PreviewFor = ""
		return []effect{f.preview("")}, nil
	})
}

// Activate is a click or tap on a guide card. On pointer devices it selects the
// guide. On touch devices the first tap previews and a second tap on the same
// guide selects it.
func (f *Flow) Activate(guideID string) error {
	return f.apply("activate", func(st *domain.State) ([]effect, error) {
		if err := f.checkChoose("activate", st, guideID); err != nil {
			return nil, err
		}

		switch f.policy.activate(st, guideID) {
		case activatePreview:
			st.PreviewFor = guideID
			return []effect{f.preview(guideID)}, nil
		case activateSelect:
			st.SelectedGuideID = guideID
			st.PreviewFor = guideID
			f.logger.Info("guide selected", "guide_id", guideID, "capability", f.capability)
			return f.transition(st, domain.StepConfirm, guideID), nil
		}
		return nil, nil
	})
}

// Confirm accepts the selected guide and enters reveal.
func (f *Flow) Confirm() error {
	return f.apply("confirm", func(st *domain.State) ([]effect, error) {
		if st.Step != domain.StepConfirm {
			return nil, invalid("confirm", st.Step)
		}
		if st.SelectedGuideID == "" {
			return nil, domain.ErrNoGuideSelected
		}
		effects := f.transition(st, domain.StepReveal, st.SelectedGuideID)
		f.enterReveal(st)
		f.logger.Info("guide confirmed", "guide_id", st.SelectedGuideID, "dwell", f.dwell)
		return effects, nil
	})
}

// Return goes back from confirm to choose and clears the selection.
func (f *Flow) Return() error {
	return f.apply("return", func(st *domain.State) ([]effect, error) {
		if st.Step != domain.StepConfirm {
			return nil, invalid("return", st.Step)
		}
		guideID := st.SelectedGuideID
		st.SelectedGuideID = ""
		st.PreviewFor = ""
		return f.transition(st, domain.StepChoose, guideID), nil
	})
}

// Close tears the flow down. A completion that has not fired yet is cancelled:
// nothing is stored and the callback is not invoked. Close is idempotent.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	n := f.notifier
	step := f.state.Step
	guideID := f.state.SelectedGuideID
	f.mu.Unlock()

	if f.stopCtx != nil {
		f.stopCtx()
	}

	if n != nil && n.cancel() {
		f.logger.Info("pending completion cancelled", "guide_id", guideID)
		if f.hooks.OnCancel != nil {
			f.hooks.OnCancel(f.ctx, &domain.StepEvent{
				EventBase: domain.NewEventBase(domain.EventCancel, f.sessionID),
				Step:      step,
				GuideID:   guideID,
			})
		}
	}
	if n == nil || !n.fired() {
		f.finish()
	}
}

// Done is closed once the flow is finished: the completion callback has
// returned or the flow was closed.
func (f *Flow) Done() <-chan struct{} {
	return f.finished
}

// SessionID returns the flow identifier.
func (f *Flow) SessionID() string {
	return f.sessionID
}

// Capability returns the input capability the flow was started with.
func (f *Flow) Capability() domain.Capability {
	return f.capability
}

// SelectionKey returns the key the selection is stored under.
func (f *Flow) SelectionKey() string {
	return f.key
}

// State returns a snapshot of the flow state.
func (f *Flow) State() *domain.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Snapshot()
}

// Step returns the current step.
func (f *Flow) Step() domain.Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.Step
}

// Guides returns the roster in display order.
func (f *Flow) Guides() []domain.Guide {
	return append([]domain.Guide(nil), f.guides...)
}

// Message returns the welcome message resolved on entering reveal.
func (f *Flow) Message() (domain.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.message == nil {
		return domain.Message{}, false
	}
	return *f.message, true
}

// Closed reports whether Close has been called.
func (f *Flow) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *Flow) apply(action string, fn func(st *domain.State) ([]effect, error)) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return domain.ErrFlowClosed
	}
	prev := f.state.Snapshot()
	effects, err := fn(f.state)
	if err != nil {
		f.state = prev
		f.mu.Unlock()
		f.logger.Debug("action rejected", "action", action, "step", prev.Step, "err", err)
		return err
	}
	var next *domain.State
	if domain.Diff(prev, f.state) != nil {
		next = f.state.Snapshot()
	}
	f.mu.Unlock()

	if next != nil {
		f.emit(prev, next, effects)
	}
	return nil
}

func (f *Flow) emit(prev, next *domain.State, effects []effect) {
	for _, obs := range f.observers {
		obs(prev, next)
	}
	for _, e := range effects {
		e(f.ctx)
	}
}

// transition moves st to the next step. The caller holds f.mu.
func (f *Flow) transition(st *domain.State, to domain.Step, guideID string) []effect {
	from := st.Step
	st.Step = to
	st.History = append(st.History, to)
	f.logger.Debug("step changed", "from", from, "to", to)
	return []effect{f.stepLeave(from, guideID), f.stepEnter(to, guideID)}
}

// enterReveal resolves the message and arms the notifier. The caller holds f.mu.
func (f *Flow) enterReveal(st *domain.State) {
	g, _ := f.guide(st.SelectedGuideID)
	msg, ok := f.messages.Lookup(g.Tone)
	if !ok {
		f.logger.Warn("no welcome message for tone, using fallback", "guide_id", g.ID, "tone", g.Tone)
		msg = welcome.Fallback
	}
	f.message = &msg

	if st.Completed {
		f.finish()
		return
	}
	guideID := g.ID
	f.notifier = startNotifier(f.dwell, func() { f.complete(guideID) })
}

func (f *Flow) complete(guideID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(f.ctx), f.storeTimeout)
	defer cancel()

	var storeErr error
	persisted := false
	if f.store != nil {
		if err := f.store.Put(ctx, f.key, guideID); err != nil {
			storeErr = err
			f.logger.Warn("failed to persist guide selection", "guide_id", guideID, "key", f.key, "err", err)
		} else {
			persisted = true
		}
	}

	f.mu.Lock()
	prev := f.state.Snapshot()
	f.state.Completed = true
	next := f.state.Snapshot()
	f.mu.Unlock()

	f.logger.Info("onboarding complete", "guide_id", guideID, "persisted", persisted)
	f.emit(prev, next, []effect{func(ctx context.Context) {
		if f.hooks.OnComplete != nil {
			f.hooks.OnComplete(ctx, &domain.CompletionEvent{
				EventBase: domain.NewEventBase(domain.EventComplete, f.sessionID),
				GuideID:   guideID,
				Persisted: persisted,
				StoreErr:  storeErr,
				Dwell:     f.dwell,
			})
		}
	}})

	if f.onComplete != nil {
		f.onComplete(guideID)
	}
	f.finish()
}

func (f *Flow) finish() {
	f.finishOnce.Do(func() { close(f.finished) })
}

func (f *Flow) guide(id string) (domain.Guide, bool) {
	if id == "" {
		return domain.Guide{}, false
	}
	return domain.FindGuide(f.guides, id)
}

func (f *Flow) checkChoose(action string, st *domain.State, guideID string) error {
	if st.Step != domain.StepChoose {
		return invalid(action, st.Step)
	}
	if _, ok := f.guide(guideID); !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownGuide, guideID)
	}
	return nil
}

func (f *Flow) stepEnter(step domain.Step, guideID string) effect {
	return func(ctx context.Context) {
		if f.hooks.OnStepEnter != nil {
			f.hooks.OnStepEnter(ctx, &domain.StepEvent{
				EventBase: domain.NewEventBase(domain.EventStepEnter, f.sessionID),
				Step:      step,
				GuideID:   guideID,
			})
		}
	}
}

func (f *Flow) stepLeave(step domain.Step, guideID string) effect {
	return func(ctx context.Context) {
		if f.hooks.OnStepLeave != nil {
			f.hooks.OnStepLeave(ctx, &domain.StepEvent{
				EventBase: domain.NewEventBase(domain.EventStepLeave, f.sessionID),
				Step:      step,
				GuideID:   guideID,
			})
		}
	}
}

func (f *Flow) preview(guideID string) effect {
	return func(ctx context.Context) {
		if f.hooks.OnPreview != nil {
			f.hooks.OnPreview(ctx, &domain.PreviewEvent{
				EventBase:  domain.NewEventBase(domain.EventPreview, f.sessionID),
				GuideID:    guideID,
				Capability: f.capability,
			})
		}
	}
}

func invalid(action string, step domain.Step) error {
	return fmt.Errorf("%w: cannot %s during %s", domain.ErrInvalidTransition, action, step)
}
