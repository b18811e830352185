package history

import (
	"time"

	"github.com/aretw0/glyphgrid/pkg/domain"
)

// Policy controls when consecutive writes are coalesced into one revision.
type Policy struct {
	// Window is the maximum gap between two same-kind writes for the second
	// to be folded into the first. Zero disables coalescing.
	Window time.Duration
	// MaxBatchSpan closes a revision to coalescing once this much time has
	// passed since its first folded action. Zero means unbounded.
	MaxBatchSpan time.Duration
	// MaxBatchSize closes a revision once it holds this many actions.
	// Zero means unbounded.
	MaxBatchSize int
}

// DefaultPolicy coalesces same-kind edits less than 500ms apart, for at most
// five seconds per revision.
var DefaultPolicy = Policy{
	Window:       500 * time.Millisecond,
	MaxBatchSpan: 5 * time.Second,
}

func (p Policy) coalesces(current Revision, action domain.Action, at time.Time) bool {
	if current.Action == nil || action == nil {
		return false
	}
	if current.Action.Kind() != action.Kind() {
		return false
	}
	if at.Sub(current.Timestamp) >= p.Window {
		return false
	}
	if p.MaxBatchSpan > 0 && at.Sub(current.BatchStart) >= p.MaxBatchSpan {
		return false
	}
	if p.MaxBatchSize > 0 && len(current.Actions) >= p.MaxBatchSize {
		return false
	}
	return true
}
