package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Eyedropper picks the glyph and color of a cell in the current node.
// Its local state is the last hovered *domain.Cell.
type Eyedropper struct {
	base
}

func NewEyedropper() *Eyedropper {
	return &Eyedropper{base: base{
		id:       "eyedropper",
		title:    "Eyedropper",
		shortcut: []string{"i"},
		emits:    []domain.ActionKind{action.KindSelectColor, action.KindSelectGlyph},
	}}
}

func (e *Eyedropper) HandlePointer(state workspace.State, ev PointerEvent) (any, []action.Action) {
	hovered, _ := state.ToolState(e.ID()).(*domain.Cell)

	if node, ok := state.CurrentNode(); ok {
		local := node.ToLocal(ev.X, ev.Y)
		if cell, ok := node.Cell(local.X, local.Y); ok {
			hovered = &cell
		}
	}

	if hovered == nil {
		return nil, nil
	}
	if ev.Phase != PointerClick {
		return hovered, nil
	}

	return hovered, []action.Action{
		action.SelectColor{ColorIndex: hovered.Color},
		action.SelectGlyph{GlyphIndex: hovered.Glyph},
	}
}

// ReduceLocal forgets the hovered cell when the edited node changes.
func (e *Eyedropper) ReduceLocal(local any, _ workspace.State, a action.Action) any {
	switch a.(type) {
	case action.SelectNode, action.SelectScene, action.NewWorkspace, action.LoadWorkspace:
		return nil
	}
	return local
}
