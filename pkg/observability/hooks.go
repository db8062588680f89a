package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/vestibule/pkg/domain"
)

// LogHooks returns lifecycle hooks that write structured log lines.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_enter", "session_id", e.SessionID, "step", e.Step, "guide_id", e.GuideID)
		},
		OnStepLeave: func(ctx context.Context, e *domain.StepEvent) {
			logger.DebugContext(ctx, "step_leave", "session_id", e.SessionID, "step", e.Step)
		},
		OnPreview: func(ctx context.Context, e *domain.PreviewEvent) {
			logger.DebugContext(ctx, "preview", "session_id", e.SessionID, "guide_id", e.GuideID, "capability", e.Capability)
		},
		OnComplete: func(ctx context.Context, e *domain.CompletionEvent) {
			attrs := []any{"session_id", e.SessionID, "guide_id", e.GuideID, "persisted", e.Persisted}
			if e.StoreErr != nil {
				attrs = append(attrs, "err", e.StoreErr)
			}
			logger.InfoContext(ctx, "complete", attrs...)
		},
		OnCancel: func(ctx context.Context, e *domain.StepEvent) {
			logger.InfoContext(ctx, "cancel", "session_id", e.SessionID, "step", e.Step, "guide_id", e.GuideID)
		},
	}
}

// Combine fans each hook out to every non-nil hook in sets, in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnStepEnter = chain(out.OnStepEnter, h.OnStepEnter)
		out.OnStepLeave = chain(out.OnStepLeave, h.OnStepLeave)
		out.OnPreview = chain(out.OnPreview, h.OnPreview)
		out.OnComplete = chain(out.OnComplete, h.OnComplete)
		out.OnCancel = chain(out.OnCancel, h.OnCancel)
	}
	return out
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
