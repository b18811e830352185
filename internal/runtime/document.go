package runtime

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// reduceDocument applies the structural edit of a, keeping the previous
// document value when the result is equal to it.
func reduceDocument(s workspace.State, a action.Action) workspace.State {
	doc := applyDocument(s.Document, a)
	if !doc.Equal(s.Document) {
		s.Document = doc
	}
	return s
}

func applyDocument(doc domain.Document, a action.Action) domain.Document {
	switch a := a.(type) {
	case action.SetName:
		return doc.SetName(a.Name)
	case action.SetFont:
		return doc.SetFont(a.Family, a.Size)
	case action.SetDimensions:
		return doc.SetDimensions(a.Width, a.Height)
	case action.SetCellDimensions:
		return doc.SetCellDimensions(a.Width, a.Height)
	case action.SetBackgroundColor:
		return doc.SetBackgroundColor(a.Color)
	case action.SetGlyphIndex:
		return doc.SetGlyph(a.Index, a.Glyph)
	case action.SetColorIndex:
		return doc.SetColor(a.Index, a.Color)

	case action.AddScene:
		if !canAddScene(doc, a.Scene) {
			return doc
		}
		return doc.AddScene(a.Scene)
	case action.DeleteScene:
		if len(doc.Scenes) <= 1 {
			return doc
		}
		return doc.DeleteScene(a.SceneID)
	case action.RenameScene:
		return doc.RenameScene(a.SceneID, a.Name)

	case action.AddNode:
		if !canAddNode(doc, a.SceneID, a.Node) {
			return doc
		}
		return doc.AddNode(a.SceneID, a.Node)
	case action.DeleteNode:
		return doc.DeleteNode(a.SceneID, a.NodeID)
	case action.RenameNode:
		return doc.RenameNode(a.SceneID, a.NodeID, a.Name)

	case action.SetCell:
		return doc.EditNode(a.SceneID, a.NodeID, func(n domain.Node) domain.Node {
			p := n.ToLocal(a.X, a.Y)
			return n.SetCell(p.X, p.Y, a.Glyph, a.Color)
		})
	case action.ClearCell:
		return doc.EditNode(a.SceneID, a.NodeID, func(n domain.Node) domain.Node {
			p := n.ToLocal(a.X, a.Y)
			return n.ClearCell(p.X, p.Y)
		})
	case action.SetTranslation:
		return doc.EditNode(a.SceneID, a.NodeID, func(n domain.Node) domain.Node {
			return n.SetTranslation(a.X, a.Y)
		})
	case action.SetVisibility:
		return setVisibility(doc, a)

	}
	return doc
}

// canAddScene rejects scenes without an identity or whose id is taken.
func canAddScene(doc domain.Document, scene domain.Scene) bool {
	if scene.ID == "" {
		return false
	}
	_, taken := doc.SceneByID(scene.ID)
	return !taken
}

// canAddNode requires an existing target scene and a node id that no scene
// of the document uses yet.
func canAddNode(doc domain.Document, sceneID string, node domain.Node) bool {
	if node.ID == "" {
		return false
	}
	if _, ok := doc.SceneByID(sceneID); !ok {
		return false
	}
	for _, sc := range doc.Scenes {
		if _, taken := sc.NodeByID(node.ID); taken {
			return false
		}
	}
	return true
}

// setVisibility toggles one node, or solos it when Exclusive is set: a
// visible target becomes the only visible node, a hidden target reveals all.
func setVisibility(doc domain.Document, a action.SetVisibility) domain.Document {
	if !a.Exclusive {
		return doc.EditNode(a.SceneID, a.NodeID, func(n domain.Node) domain.Node {
			return n.SetVisibility(a.Visible)
		})
	}

	target, ok := doc.NodeByID(a.SceneID, a.NodeID)
	if !ok {
		return doc
	}

	return doc.EditScene(a.SceneID, func(s domain.Scene) domain.Scene {
		return s.MapNodes(func(n domain.Node) domain.Node {
			if target.Visible {
				return n.SetVisibility(n.ID == target.ID)
			}
			return n.SetVisibility(true)
		})
	})
}
