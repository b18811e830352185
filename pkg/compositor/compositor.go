// Package compositor flattens the layered nodes of a scene into a single
// world-space cell buffer.
//
// Nodes earlier in Scene.Nodes are drawn on top of later ones. Invisible nodes
// contribute nothing. Results are recomputed on every call; callers own caching.
package compositor

import (
	"iter"
	"maps"

	"github.com/aretw0/glyphgrid/pkg/domain"
)

// Placement is a composited cell together with the node that painted it.
type Placement struct {
	Cell   domain.Cell
	NodeID string
}

// Resolve composites a scene into a map keyed by world coordinate.
// Nodes are visited bottom-up so that the top-most write wins.
func Resolve(scene domain.Scene) map[domain.Vector]Placement {
	out := make(map[domain.Vector]Placement)

	for i := len(scene.Nodes) - 1; i >= 0; i-- {
		node := scene.Nodes[i]
		if !node.Visible {
			continue
		}

		for _, cell := range node.Cells {
			world := node.ToWorld(cell.X, cell.Y)
			out[world] = Placement{
				Cell: domain.Cell{
					X:     world.X,
					Y:     world.Y,
					Glyph: cell.Glyph,
					Color: cell.Color,
				},
				NodeID: node.ID,
			}
		}
	}

	return out
}

// All yields the visible cells of a scene in world coordinates.
// Order is unspecified.
func All(scene domain.Scene) iter.Seq[domain.Cell] {
	return func(yield func(domain.Cell) bool) {
		for p := range maps.Values(Resolve(scene)) {
			if !yield(p.Cell) {
				return
			}
		}
	}
}

// Composite returns the visible cells of a scene in world coordinates.
// Order is unspecified.
func Composite(scene domain.Scene) []domain.Cell {
	resolved := Resolve(scene)
	cells := make([]domain.Cell, 0, len(resolved))
	for _, p := range resolved {
		cells = append(cells, p.Cell)
	}
	return cells
}

// HitTest returns the id of the node owning the top-most visible cell at
// world coordinate (x, y).
func HitTest(scene domain.Scene, x, y int) (string, bool) {
	for _, node := range scene.Nodes {
		if !node.Visible {
			continue
		}
		local := node.ToLocal(x, y)
		if _, ok := node.Cell(local.X, local.Y); ok {
			return node.ID, true
		}
	}
	return "", false
}

// CellAt returns the composited cell at world coordinate (x, y).
func CellAt(scene domain.Scene, x, y int) (domain.Cell, bool) {
	for _, node := range scene.Nodes {
		if !node.Visible {
			continue
		}
		local := node.ToLocal(x, y)
		if c, ok := node.Cell(local.X, local.Y); ok {
			return domain.Cell{X: x, Y: y, Glyph: c.Glyph, Color: c.Color}, true
		}
	}
	return domain.Cell{}, false
}
