package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// LineDrag is the local state of the line tool while the pointer is held.
type LineDrag struct {
	Start domain.Vector
	End   domain.Vector
}

// Line draws a straight run of cells from pointer down to pointer up.
type Line struct {
	base
}

func NewLine() *Line {
	return &Line{base: base{
		id:       "line",
		title:    "Line",
		shortcut: []string{"l"},
		emits:    []domain.ActionKind{action.KindSetCell},
	}}
}

func (l *Line) HandlePointer(state workspace.State, ev PointerEvent) (any, []action.Action) {
	p := domain.Vector{X: ev.X, Y: ev.Y}
	drag, dragging := state.ToolState(l.ID()).(LineDrag)

	switch ev.Phase {
	case PointerDown:
		return LineDrag{Start: p, End: p}, nil

	case PointerMove:
		if !dragging {
			return nil, nil
		}
		drag.End = p
		return drag, nil

	case PointerUp:
		if !dragging {
			return nil, nil
		}
		node, ok := state.CurrentNode()
		if !ok {
			return nil, nil
		}

		points := Bresenham(drag.Start, p)
		actions := make([]action.Action, 0, len(points))
		for _, pt := range points {
			actions = append(actions, action.SetCell{
				SceneID: state.CurrentSceneID,
				NodeID:  node.ID,
				X:       pt.X,
				Y:       pt.Y,
				Glyph:   state.CurrentGlyph,
				Color:   state.CurrentColor,
			})
		}
		return nil, actions
	}

	if dragging {
		return drag, nil
	}
	return nil, nil
}

// ReduceLocal cancels an in-progress line when the target may have changed.
func (l *Line) ReduceLocal(local any, _ workspace.State, a action.Action) any {
	switch a.(type) {
	case action.SelectScene, action.SelectNode,
		action.Undo, action.Redo, action.SelectRevision,
		action.NewWorkspace, action.LoadWorkspace:
		return nil
	}
	return local
}

// Bresenham returns the cells of the line from a to b, both inclusive.
func Bresenham(a, b domain.Vector) []domain.Vector {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	err := dx + dy

	points := make([]domain.Vector, 0, max(dx, -dy)+1)
	x, y := a.X, a.Y
	for {
		points = append(points, domain.Vector{X: x, Y: y})
		if x == b.X && y == b.Y {
			return points
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
