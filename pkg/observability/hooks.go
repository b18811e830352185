package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/glyphgrid/pkg/domain"
)

// MergeHooks calls every non-nil hook of each set, in order.
func MergeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var merged domain.LifecycleHooks
	for _, h := range sets {
		merged.OnSessionStart = chain(merged.OnSessionStart, h.OnSessionStart)
		merged.OnSessionDelete = chain(merged.OnSessionDelete, h.OnSessionDelete)
		merged.OnDispatch = chain(merged.OnDispatch, h.OnDispatch)
	}
	return merged
}

func chain[E any](a, b func(context.Context, *E)) func(context.Context, *E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// LoggingHooks logs lifecycle events. Failed dispatches log at warn.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(ctx context.Context, e *domain.SessionEvent) {
			logger.InfoContext(ctx, "session_start", "session_id", e.SessionID, "document_id", e.DocumentID)
		},
		OnSessionDelete: func(ctx context.Context, e *domain.SessionEvent) {
			logger.InfoContext(ctx, "session_delete", "session_id", e.SessionID)
		},
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			if e.Err != nil {
				logger.WarnContext(ctx, "dispatch_failed", "session_id", e.SessionID, "err", e.Err)
				return
			}
			logger.DebugContext(ctx, "dispatch",
				"session_id", e.SessionID,
				"actions", len(e.Actions),
				"history", e.Change,
				"cursor", e.Cursor,
				"revisions", e.Length,
				"duration", e.Duration,
			)
		},
	}
}
