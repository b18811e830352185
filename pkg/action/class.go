package action

import "github.com/aretw0/glyphgrid/pkg/domain"

// Class decides how the history stage treats an action.
type Class int

const (
	// Persistent actions change document content and are recorded.
	Persistent Class = iota
	// Transient actions only touch selection or navigation state.
	Transient
	// Navigation actions move the history cursor and are never recorded.
	Navigation
)

func (c Class) String() string {
	switch c {
	case Transient:
		return "transient"
	case Navigation:
		return "navigation"
	default:
		return "persistent"
	}
}

var classes = map[domain.ActionKind]Class{
	KindNewWorkspace:   Transient,
	KindLoadWorkspace:  Transient,
	KindSelectTool:     Transient,
	KindSelectColor:    Transient,
	KindSelectGlyph:    Transient,
	KindSelectScene:    Transient,
	KindSelectNode:     Transient,
	KindSetCursor:      Transient,
	KindSetSelection:   Transient,
	KindClearSelection: Transient,

	KindUndo:           Navigation,
	KindRedo:           Navigation,
	KindSelectRevision: Navigation,
}

// ClassOf returns the class of an action kind. Kinds outside the transient
// and navigation allow-lists are persistent.
func ClassOf(kind domain.ActionKind) Class {
	if c, ok := classes[kind]; ok {
		return c
	}
	return Persistent
}

// IsRecorded reports whether the history stage writes a revision for kind.
func IsRecorded(kind domain.ActionKind) bool {
	return ClassOf(kind) == Persistent
}
