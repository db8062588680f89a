package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/vestibule/internal/logging"
)

// NewLogger configures the application logger. Hosts that speak a protocol on
// stdout still log to stderr.
func NewLogger(level slog.Level, jsonOutput bool, w io.Writer) *slog.Logger {
	if w == nil {
		return logging.New(level)
	}
	return logging.NewWithWriter(w, level, jsonOutput)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}

// handleExecutionError turns a user interruption into a clean exit.
func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil
	}
	return err
}
