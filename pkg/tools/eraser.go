package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Eraser clears cells of the current node.
type Eraser struct {
	base
}

func NewEraser() *Eraser {
	return &Eraser{base: base{
		id:       "eraser",
		title:    "Eraser",
		shortcut: []string{"e"},
		emits:    []domain.ActionKind{action.KindClearCell},
	}}
}

func (e *Eraser) HandlePointer(state workspace.State, ev PointerEvent) (any, []action.Action) {
	if !paints(ev) {
		return nil, nil
	}
	if _, ok := state.CurrentNode(); !ok {
		return nil, nil
	}

	return nil, []action.Action{action.ClearCell{
		SceneID: state.CurrentSceneID,
		NodeID:  state.CurrentNodeID,
		X:       ev.X,
		Y:       ev.Y,
	}}
}
