package history

// ChangeKind classifies the difference between two histories.
type ChangeKind int

const (
	Unchanged ChangeKind = iota
	// Appended means a new revision was written after the previous cursor.
	Appended
	// Coalesced means the revision at the cursor absorbed a new write.
	Coalesced
	// Moved means only the cursor changed (undo, redo, select).
	Moved
)

func (k ChangeKind) String() string {
	switch k {
	case Appended:
		return "appended"
	case Coalesced:
		return "coalesced"
	case Moved:
		return "moved"
	default:
		return "unchanged"
	}
}

// Change describes how next differs from prev.
type Change struct {
	Kind ChangeKind
	// Discarded is the number of future revisions dropped by a write.
	Discarded int
}

// Compare reports what a transition did to the log. It is meant for
// observers such as loggers and metrics, which only see before and after.
func Compare(prev, next History) Change {
	pc, nc := prev.Cursor, next.Cursor
	future := max(len(prev.Revisions)-(pc+1), 0)

	switch {
	case nc == pc+1 && nc < len(next.Revisions) &&
		(nc >= len(prev.Revisions) || !sameRevision(prev.Revisions[nc], next.Revisions[nc])):
		return Change{Kind: Appended, Discarded: future}
	case nc == pc && nc < len(prev.Revisions) && nc < len(next.Revisions) &&
		!sameRevision(prev.Revisions[nc], next.Revisions[nc]):
		return Change{Kind: Coalesced, Discarded: future}
	case nc != pc:
		return Change{Kind: Moved}
	default:
		return Change{Kind: Unchanged}
	}
}

func sameRevision(a, b Revision) bool {
	return a.ID == b.ID &&
		a.Timestamp.Equal(b.Timestamp) &&
		a.BatchStart.Equal(b.BatchStart) &&
		len(a.Actions) == len(b.Actions)
}
