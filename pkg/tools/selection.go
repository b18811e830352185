package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Marquee is the local state of the select tool during a drag.
type Marquee struct {
	Start domain.Vector
	Rect  domain.Rect
}

// Select draws a rectangular marquee selection.
type Select struct {
	base
}

func NewSelect() *Select {
	return &Select{base: base{
		id:       "select",
		title:    "Select",
		shortcut: []string{"m"},
		emits:    []domain.ActionKind{action.KindSetSelection, action.KindClearSelection},
	}}
}

func (s *Select) HandlePointer(state workspace.State, ev PointerEvent) (any, []action.Action) {
	marquee, dragging := state.ToolState(s.ID()).(Marquee)

	switch ev.Phase {
	case PointerDown:
		return Marquee{
			Start: domain.Vector{X: ev.X, Y: ev.Y},
			Rect:  domain.RectFromSize(ev.X, ev.Y, 1, 1),
		}, nil

	case PointerMove:
		if !dragging {
			return nil, nil
		}
		marquee.Rect = domain.RectFromPoints(marquee.Start.X, marquee.Start.Y, ev.X, ev.Y)
		return marquee, nil

	case PointerUp:
		if !dragging {
			return nil, nil
		}
		if marquee.Start.X != ev.X && marquee.Start.Y != ev.Y {
			rect := domain.RectFromPoints(marquee.Start.X, marquee.Start.Y, ev.X, ev.Y)
			return nil, []action.Action{action.SetSelection{Selection: rect}}
		}
		return nil, []action.Action{action.ClearSelection{}}
	}

	if dragging {
		return marquee, nil
	}
	return nil, nil
}

// ReduceLocal drops an in-progress marquee on clear-selection.
func (s *Select) ReduceLocal(local any, _ workspace.State, a action.Action) any {
	switch a.(type) {
	case action.ClearSelection, action.NewWorkspace, action.LoadWorkspace:
		return nil
	}
	return local
}
