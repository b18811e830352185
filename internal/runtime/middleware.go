package runtime

import (
	"log/slog"
	"slices"

	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/history"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// DefaultLogIgnore lists kinds too chatty to log on every dispatch.
var DefaultLogIgnore = []domain.ActionKind{action.KindSetCursor}

// WithLogging logs every reduced action at debug level together with what
// it did to the history. Kinds in ignore are skipped; a nil ignore uses
// DefaultLogIgnore.
func WithLogging(logger *slog.Logger, ignore ...domain.ActionKind) Middleware {
	if ignore == nil {
		ignore = DefaultLogIgnore
	}

	return func(next Reducer) Reducer {
		return func(state workspace.State, a action.Action) workspace.State {
			if slices.Contains(ignore, a.Kind()) {
				return next(state, a)
			}

			after := next(state, a)
			change := history.Compare(state.History, after.History)

			logger.Debug("action",
				"type", a.Kind(),
				"class", action.ClassOf(a.Kind()),
				"history", change.Kind,
				"discarded", change.Discarded,
				"cursor", after.History.Cursor,
				"revisions", after.History.Len(),
			)
			return after
		}
	}
}
