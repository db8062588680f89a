package runner

import (
	"context"

	"github.com/aretw0/vestibule/pkg/domain"
	"github.com/aretw0/vestibule/pkg/onboarding"
)

// IOHandler defines the strategy for interacting with the visitor.
// This allows switching between Text (CLI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the current view.
	Output(ctx context.Context, view onboarding.View) error

	// Input reads the next command. step lets text handlers interpret shorthand.
	Input(ctx context.Context, step domain.Step) (Command, error)

	// SystemOutput presents a meta-message (errors, help, the final assignment).
	SystemOutput(ctx context.Context, msg string) error
}

// ContentRenderer transforms markdown before it is written.
// This allows terminal styling without coupling the runner to a renderer.
type ContentRenderer func(string) (string, error)
