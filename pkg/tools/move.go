package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/compositor"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// MoveTarget is what a move drag is translating.
type MoveTarget int

const (
	MoveSelection MoveTarget = iota + 1
	MoveNode
)

// MoveDrag is the local state of the move tool during a drag.
type MoveDrag struct {
	Target MoveTarget
	Start  domain.Vector

	// Selection is the marquee at pointer down, for MoveSelection.
	Selection domain.Rect

	// SceneID, NodeID and Origin identify the dragged node and its
	// translation at pointer down, for MoveNode.
	SceneID string
	NodeID  string
	Origin  domain.Vector
}

// Move drags the marquee selection or a node.
//
// A drag that starts inside the selection moves the selection. Otherwise the
// node owning the top-most cell under the pointer is selected and dragged;
// the current node is dragged when nothing is hit.
type Move struct {
	base
}

func NewMove() *Move {
	return &Move{base: base{
		id:       "move",
		title:    "Move",
		shortcut: []string{"v"},
		emits: []domain.ActionKind{
			action.KindSetSelection,
			action.KindSelectNode,
			action.KindSetTranslation,
		},
	}}
}

func (m *Move) HandlePointer(state workspace.State, ev PointerEvent) (any, []action.Action) {
	drag, dragging := state.ToolState(m.ID()).(MoveDrag)
	p := domain.Vector{X: ev.X, Y: ev.Y}

	switch ev.Phase {
	case PointerDown:
		return m.begin(state, p)

	case PointerMove:
		if !dragging {
			return nil, nil
		}
		dx, dy := p.X-drag.Start.X, p.Y-drag.Start.Y

		switch drag.Target {
		case MoveSelection:
			return drag, []action.Action{action.SetSelection{
				Selection: drag.Selection.Translate(dx, dy),
			}}
		case MoveNode:
			return drag, []action.Action{action.SetTranslation{
				SceneID: drag.SceneID,
				NodeID:  drag.NodeID,
				X:       drag.Origin.X + dx,
				Y:       drag.Origin.Y + dy,
			}}
		}
		return nil, nil

	case PointerUp:
		return nil, nil
	}

	if dragging {
		return drag, nil
	}
	return nil, nil
}

func (m *Move) begin(state workspace.State, p domain.Vector) (any, []action.Action) {
	if state.Selection != nil && state.Selection.Contains(p.X, p.Y) {
		return MoveDrag{Target: MoveSelection, Start: p, Selection: *state.Selection}, nil
	}

	scene, ok := state.CurrentScene()
	if !ok {
		return nil, nil
	}

	nodeID, hit := compositor.HitTest(scene, p.X, p.Y)
	if !hit {
		nodeID = state.CurrentNodeID
	}

	node, ok := scene.NodeByID(nodeID)
	if !ok {
		return nil, nil
	}

	drag := MoveDrag{
		Target:  MoveNode,
		Start:   p,
		SceneID: scene.ID,
		NodeID:  node.ID,
		Origin:  node.Translate,
	}

	if node.ID != state.CurrentNodeID {
		return drag, []action.Action{action.SelectNode{NodeID: node.ID}}
	}
	return drag, nil
}

// ReduceLocal cancels a node drag whose target disappeared.
func (m *Move) ReduceLocal(local any, _ workspace.State, a action.Action) any {
	drag, ok := local.(MoveDrag)
	if !ok {
		return local
	}

	switch a := a.(type) {
	case action.DeleteNode:
		if drag.Target == MoveNode && a.NodeID == drag.NodeID {
			return nil
		}
	case action.DeleteScene:
		if drag.Target == MoveNode && a.SceneID == drag.SceneID {
			return nil
		}
	case action.SelectScene, action.NewWorkspace, action.LoadWorkspace:
		return nil
	}
	return local
}
