package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aretw0/vestibule"
)

// WatchRoster hot-reloads the roster for new sessions until ctx is done.
// It is a no-op for the built-in roster.
func WatchRoster(ctx context.Context, engine *vestibule.Engine, logger *slog.Logger) error {
	changes, err := engine.Watch(ctx)
	if errors.Is(err, vestibule.ErrNotWatchable) {
		logger.Debug("roster is static, not watching")
		return nil
	}
	if err != nil {
		return err
	}

	go func() {
		for range changes {
			logger.Info("roster changed, new sessions use the updated guides", "guides", len(engine.Guides()))
		}
	}()
	return nil
}
