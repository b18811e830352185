// Package history implements the linear undo/redo log over document snapshots.
//
// A History is an immutable value: every operation returns a new History and
// never touches the receiver. Construction always seeds a bootstrap revision,
// so the log is never empty and the cursor always addresses a revision.
//
// New writes after an undo discard the abandoned future. Consecutive writes of
// the same action kind that arrive within Policy.Window of each other are
// coalesced into a single revision.
package history

import (
	"slices"
	"time"

	"github.com/aretw0/glyphgrid/pkg/domain"
)

// Revision is one entry of the log: a document snapshot plus metadata.
type Revision struct {
	// ID is the position of the revision in the log.
	ID        int
	Timestamp time.Time
	// BatchStart is the time of the first action folded into this revision.
	BatchStart time.Time
	Document   domain.Document
	// Action is the primary action. It is nil for the bootstrap revision.
	Action  domain.Action
	Actions []domain.Action
}

// History is an ordered list of revisions plus a cursor.
type History struct {
	Cursor    int
	Revisions []Revision
}

// New creates a history holding a single bootstrap revision for doc.
func New(doc domain.Document, at time.Time) History {
	return History{
		Cursor: 0,
		Revisions: []Revision{{
			ID:         0,
			Timestamp:  at,
			BatchStart: at,
			Document:   doc,
			Actions:    []domain.Action{},
		}},
	}
}

// Len returns the number of revisions in the log.
func (h History) Len() int {
	return len(h.Revisions)
}

// Current returns the revision at the cursor.
func (h History) Current() Revision {
	return h.Revisions[h.Cursor]
}

// CurrentDocument returns the document stored at the cursor.
func (h History) CurrentDocument() domain.Document {
	return h.Current().Document
}

// Revision looks up a revision by id.
func (h History) Revision(id int) (Revision, bool) {
	if id < 0 || id >= len(h.Revisions) {
		return Revision{}, false
	}
	return h.Revisions[id], true
}

func (h History) CanUndo() bool {
	return h.Cursor > 0
}

func (h History) CanRedo() bool {
	return h.Cursor < len(h.Revisions)-1
}

// IsInFuture reports whether revision id lies after the cursor, i.e. would be
// discarded by the next write.
func (h History) IsInFuture(id int) bool {
	return id > h.Cursor && id < len(h.Revisions)
}

// Undo moves the cursor back by one. At the first revision it is a no-op.
func (h History) Undo() History {
	if h.CanUndo() {
		h.Cursor--
	}
	return h
}

// Redo moves the cursor forward by one. At the last revision it is a no-op.
func (h History) Redo() History {
	if h.CanRedo() {
		h.Cursor++
	}
	return h
}

// Select moves the cursor to revision id. Invalid ids are a no-op.
func (h History) Select(id int) History {
	if id >= 0 && id < len(h.Revisions) {
		h.Cursor = id
	}
	return h
}

// AddRevision records doc as the result of action at time at.
//
// Revisions after the cursor are discarded first. The write is then either
// folded into the revision at the cursor (see Policy) or appended after it.
func (h History) AddRevision(doc domain.Document, action domain.Action, at time.Time, policy Policy) History {
	current := h.Revisions[h.Cursor]
	revisions := slices.Clone(h.Revisions[:h.Cursor+1])

	if policy.coalesces(current, action, at) {
		current.Document = doc
		current.Timestamp = at
		current.Actions = append(slices.Clone(current.Actions), action)
		revisions[h.Cursor] = current

		h.Revisions = revisions
		return h
	}

	id := h.Cursor + 1
	h.Revisions = append(revisions, Revision{
		ID:         id,
		Timestamp:  at,
		BatchStart: at,
		Document:   doc,
		Action:     action,
		Actions:    []domain.Action{action},
	})
	h.Cursor = id
	return h
}
