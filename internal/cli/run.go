package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/vestibule"
	"github.com/aretw0/vestibule/internal/presentation/tui"
	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/runner"
	"golang.org/x/term"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	SessionID string
	VisitorID string
	JSON      bool
	Touch     bool

	In  io.Reader
	Out io.Writer
}

// interactive reports whether the session talks to a human on a terminal.
func (o RunOptions) interactive() bool {
	if o.JSON {
		return false
	}
	f, ok := o.In.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// RunSession drives one onboarding flow in the terminal. An interrupt cancels the
// flow, including a completion that has not fired yet.
func RunSession(ctx context.Context, engine *vestibule.Engine, opts RunOptions, logger *slog.Logger) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	handler, err := newHandler(opts)
	if err != nil {
		return err
	}
	if opts.interactive() {
		tui.PrintBanner(opts.Out, strings.TrimSpace(vestibule.Version))
	}

	sm := runner.NewSignalManager(ctx)
	defer sm.Stop()

	c := domain.CapabilityPointer
	if opts.Touch {
		c = domain.CapabilityTouch
	}

	var flowOpts []onboarding.Option
	if opts.VisitorID != "" {
		flowOpts = append(flowOpts, onboarding.WithSelectionKey(domain.VisitorSelectionKey(opts.VisitorID)))
	}

	flow, err := engine.Begin(sm.Context(), opts.SessionID, c, func(guideID string) {
		logger.Info("onboarding complete", "guide_id", guideID)
	}, flowOpts...)
	if err != nil {
		return fmt.Errorf("failed to start onboarding: %w", err)
	}
	logger.Info("session started", "session_id", flow.SessionID(), "capability", c)

	r := runner.NewRunner(
		runner.WithLogger(logger),
		runner.WithInputHandler(handler),
	)
	runErr := r.Run(sm.Context(), flow)
	if runErr != nil {
		sm.CheckRace()
	}

	if isInterrupted(runErr) && !opts.JSON {
		fmt.Fprintln(opts.Out)
		printSystemMessage(opts.Out, "Interrupted at '%s' step.", flow.Step())
	}
	return handleExecutionError(runErr)
}

func newHandler(opts RunOptions) (runner.IOHandler, error) {
	if opts.JSON {
		return runner.NewJSONHandler(opts.In, opts.Out), nil
	}

	var textOpts []runner.TextHandlerOption
	if opts.interactive() {
		width := 0
		if f, ok := opts.Out.(*os.File); ok {
			if w, _, err := term.GetSize(int(f.Fd())); err == nil {
				width = w
			}
		}
		render, err := tui.NewRenderer(width)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize renderer: %w", err)
		}
		textOpts = append(textOpts, runner.WithTextHandlerRenderer(render))
	}
	return runner.NewTextHandler(opts.In, opts.Out, textOpts...), nil
}
