package runtime

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// reduceSelection updates the transient selection state. Structural actions
// are seen here before the document stage applies them, so neighbour lookups
// use pre-mutation positions.
func reduceSelection(s workspace.State, a action.Action) workspace.State {
	switch a := a.(type) {
	case action.NewWorkspace:
		return a.State
	case action.LoadWorkspace:
		return a.State

	case action.SelectTool:
		if a.ToolID != s.CurrentToolID {
			s = s.WithToolState(s.CurrentToolID, nil)
		}
		s.CurrentToolID = a.ToolID
	case action.SelectColor:
		s.CurrentColor = a.ColorIndex
	case action.SelectGlyph:
		s.CurrentGlyph = a.GlyphIndex
	case action.SelectNode:
		if _, ok := s.Document.NodeByID(s.CurrentSceneID, a.NodeID); ok {
			s.CurrentNodeID = a.NodeID
		}
	case action.SelectScene:
		if _, ok := s.Document.SceneByID(a.SceneID); ok {
			s.CurrentSceneID = a.SceneID
			s = s.SelectDefaultNode()
		}

	case action.SetCursor:
		s.Cursor = &domain.Vector{X: a.X, Y: a.Y}
	case action.SetSelection:
		sel := a.Selection
		s.Selection = &sel
	case action.ClearSelection:
		s.Selection = nil

	case action.AddScene:
		if !canAddScene(s.Document, a.Scene) {
			return s
		}
		s.CurrentSceneID = a.Scene.ID
		if node, ok := a.Scene.TopNode(); ok {
			s.CurrentNodeID = node.ID
		}
	case action.DeleteScene:
		if a.SceneID == s.CurrentSceneID && s.CanDeleteScene() {
			s = s.SelectNearestScene(a.SceneID)
			s = s.SelectDefaultNode()
		}
	case action.AddNode:
		if a.SceneID == s.CurrentSceneID && canAddNode(s.Document, a.SceneID, a.Node) {
			s.CurrentNodeID = a.Node.ID
		}
	case action.DeleteNode:
		if a.SceneID == s.CurrentSceneID {
			s = s.SelectNearestNode(a.SceneID, a.NodeID)
		}
	}
	return s
}

// revalidateSelection re-points the selection at entities that exist in the
// current document, for use after the document was swapped wholesale.
func revalidateSelection(s workspace.State) workspace.State {
	if _, ok := s.CurrentScene(); !ok {
		if len(s.Document.Scenes) == 0 {
			return s
		}
		s.CurrentSceneID = s.Document.Scenes[0].ID
		return s.SelectDefaultNode()
	}
	if _, ok := s.CurrentNode(); !ok {
		return s.SelectDefaultNode()
	}
	return s
}
