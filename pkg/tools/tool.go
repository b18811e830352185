// Package tools provides the interactive editing tools and the registry that
// owns them.
//
// A tool never edits the document directly. It turns pointer input into
// actions and may keep its own local state (an in-progress drag, a hovered
// cell) inside workspace.State.Tools, which is neither persisted nor
// recorded in history.
package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Tool describes an editing tool.
type Tool interface {
	ID() string
	Title() string
	// Shortcut lists the keys that select this tool.
	Shortcut() []string
	// Emits declares the action kinds this tool may produce.
	Emits() []domain.ActionKind
}

// PointerPhase is the stage of a pointer gesture.
type PointerPhase int

const (
	PointerDown PointerPhase = iota
	PointerMove
	PointerUp
	PointerClick
)

func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerClick:
		return "click"
	default:
		return "unknown"
	}
}

// PointerEvent is a pointer gesture step in world cell coordinates.
type PointerEvent struct {
	Phase PointerPhase `json:"phase"`
	X     int          `json:"x"`
	Y     int          `json:"y"`
	// Pressed is set on move events while the primary button is held.
	Pressed bool `json:"pressed"`
}

// PointerHandler is implemented by tools that react to pointer input.
// It returns the tool's next local state and the actions to dispatch.
type PointerHandler interface {
	HandlePointer(state workspace.State, ev PointerEvent) (local any, actions []action.Action)
}

// LocalReducer is implemented by tools whose local state must follow
// dispatched actions, for example to cancel a drag.
type LocalReducer interface {
	ReduceLocal(local any, state workspace.State, a action.Action) any
}

type base struct {
	id       string
	title    string
	shortcut []string
	emits    []domain.ActionKind
}

func (b base) ID() string                 { return b.id }
func (b base) Title() string              { return b.title }
func (b base) Shortcut() []string         { return b.shortcut }
func (b base) Emits() []domain.ActionKind { return b.emits }

// Defaults returns the built-in tool set in toolbar order.
func Defaults() []Tool {
	return []Tool{
		NewBrush(),
		NewEraser(),
		NewEyedropper(),
		NewLine(),
		NewSelect(),
		NewMove(),
	}
}
