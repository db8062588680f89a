package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
)

// Runner handles the interaction loop of one onboarding flow.
// It uses an IOHandler strategy to abstract the interaction mode (Text vs JSON).
type Runner struct {
	// Handler is the strategy for IO. Defaults to a TextHandler on stdin/stdout.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// NewRunner creates a new Runner.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}
	if r.Handler == nil {
		r.Handler = NewTextHandler(nil, nil)
	}
	if r.Logger == nil {
		r.Logger = logging.NewNop()
	}
	return r
}

// Run drives flow until the reveal completes, the visitor quits, the input ends or
// ctx is cancelled. Every exit other than completion closes the flow, which cancels a
// pending completion. It returns ctx.Err() on cancellation and nil otherwise.
// A handler that implements io.Closer is closed on return.
func (r *Runner) Run(ctx context.Context, flow *onboarding.Flow) error {
	logger := r.Logger.With("session_id", flow.SessionID())
	lastKey := ""
	if c, ok := r.Handler.(io.Closer); ok {
		defer c.Close()
	}

	for {
		view := flow.View()
		if key := viewKey(view); key != lastKey {
			lastKey = key
			if err := r.Handler.Output(ctx, view); err != nil {
				flow.Close()
				return fmt.Errorf("output error: %w", err)
			}
		}

		if view.Step == domain.StepReveal {
			return r.awaitCompletion(ctx, flow)
		}

		cmd, err := r.Handler.Input(ctx, view.Step)
		if err != nil {
			flow.Close()
			switch {
			case ctx.Err() != nil:
				return ctx.Err()
			case errors.Is(err, io.EOF):
				logger.Debug("input closed before completion", "step", view.Step)
				return nil
			default:
				return fmt.Errorf("input error: %w", err)
			}
		}

		cmd = cmd.Resolve(view.Guides)
		switch cmd.Action {
		case ActionQuit:
			flow.Close()
			_ = r.Handler.SystemOutput(ctx, "Bye!")
			return nil
		case ActionHelp:
			_ = r.Handler.SystemOutput(ctx, helpText(view.Step))
			continue
		}

		if err := Apply(flow, cmd); err != nil {
			logger.Debug("command rejected", "action", cmd.Action, "guide", cmd.Guide, "err", err)
			_ = r.Handler.SystemOutput(ctx, err.Error())
		}
	}
}

func (r *Runner) awaitCompletion(ctx context.Context, flow *onboarding.Flow) error {
	select {
	case <-flow.Done():
		st := flow.State()
		if st.Completed {
			_ = r.Handler.SystemOutput(ctx, fmt.Sprintf("%s will be your guide.", st.SelectedGuideID))
		}
		return nil
	case <-ctx.Done():
		flow.Close()
		return ctx.Err()
	}
}

// viewKey changes whenever the rendered view would.
func viewKey(v onboarding.View) string {
	key := string(v.Step)
	if v.Preview != nil {
		key += "|p:" + v.Preview.ID
	}
	if v.Selected != nil {
		key += "|s:" + v.Selected.ID
	}
	return key
}
