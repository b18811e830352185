package tools

import (
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Brush paints the current glyph and color into the current node.
type Brush struct {
	base
	MirrorX bool
	MirrorY bool
}

// BrushOption configures a Brush.
type BrushOption func(*Brush)

// WithMirror reflects every stroke around the node center (or the canvas
// center for an empty node) horizontally, vertically or both.
func WithMirror(x, y bool) BrushOption {
	return func(b *Brush) {
		b.MirrorX, b.MirrorY = x, y
	}
}

func NewBrush(opts ...BrushOption) *Brush {
	b := &Brush{
		base: base{
			id:       "brush",
			title:    "Brush",
			shortcut: []string{"b"},
			emits:    []domain.ActionKind{action.KindSetCell},
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Brush) HandlePointer(state workspace.State, ev PointerEvent) (any, []action.Action) {
	if !paints(ev) {
		return nil, nil
	}

	node, ok := state.CurrentNode()
	if !ok {
		return nil, nil
	}

	center := state.Center()
	if c, ok := node.Center(); ok {
		center = node.ToWorld(c.X, c.Y)
	}

	points := Reflect(domain.Vector{X: ev.X, Y: ev.Y}, center, b.MirrorX, b.MirrorY)
	actions := make([]action.Action, 0, len(points))
	for _, p := range points {
		actions = append(actions, action.SetCell{
			SceneID: state.CurrentSceneID,
			NodeID:  node.ID,
			X:       p.X,
			Y:       p.Y,
			Glyph:   state.CurrentGlyph,
			Color:   state.CurrentColor,
		})
	}
	return nil, actions
}

// paints reports whether a pointer event should apply a stroke.
func paints(ev PointerEvent) bool {
	return ev.Phase == PointerClick || ev.Phase == PointerDown || (ev.Phase == PointerMove && ev.Pressed)
}

// Reflect mirrors p around center. horizontal mirrors across the vertical
// axis, vertical across the horizontal one.
func Reflect(p, center domain.Vector, horizontal, vertical bool) []domain.Vector {
	dx := center.X - p.X
	dy := center.Y - p.Y

	mirroredX := center.X + dx
	mirroredY := center.Y + dy

	switch {
	case horizontal && vertical:
		return []domain.Vector{
			{X: mirroredX, Y: p.Y},
			{X: mirroredX, Y: mirroredY},
			{X: p.X, Y: p.Y},
			{X: p.X, Y: mirroredY},
		}
	case horizontal:
		return []domain.Vector{
			{X: mirroredX, Y: p.Y},
			{X: p.X, Y: p.Y},
		}
	case vertical:
		return []domain.Vector{
			{X: p.X, Y: mirroredY},
			{X: p.X, Y: p.Y},
		}
	default:
		return []domain.Vector{p}
	}
}
