package compositor_test

import (
	"testing"

	"github.com/aretw0/glyphgrid/pkg/compositor"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byCoordinate(cells []domain.Cell) map[domain.Vector]domain.Cell {
	out := make(map[domain.Vector]domain.Cell, len(cells))
	for _, c := range cells {
		out[domain.Vector{X: c.X, Y: c.Y}] = c
	}
	return out
}

func TestComposite_TopNodeWins(t *testing.T) {
	a := domain.NewNode(domain.WithNodeID("a"), domain.WithCells(domain.Cell{X: 1, Y: 1, Glyph: 1, Color: 1}))
	b := domain.NewNode(domain.WithNodeID("b"), domain.WithCells(
		domain.Cell{X: 1, Y: 1, Glyph: 2, Color: 2},
		domain.Cell{X: 2, Y: 1, Glyph: 2, Color: 2},
	))
	scene := domain.NewScene(domain.WithNodes(a, b))

	cells := byCoordinate(compositor.Composite(scene))

	require.Len(t, cells, 2)
	assert.Equal(t, 1, cells[domain.Vector{X: 1, Y: 1}].Glyph, "index 0 is top-most")
	assert.Equal(t, 2, cells[domain.Vector{X: 2, Y: 1}].Glyph)

	owner, ok := compositor.HitTest(scene, 1, 1)
	require.True(t, ok)
	assert.Equal(t, "a", owner)

	owner, ok = compositor.HitTest(scene, 2, 1)
	require.True(t, ok)
	assert.Equal(t, "b", owner)

	_, ok = compositor.HitTest(scene, 9, 9)
	assert.False(t, ok)
}

func TestComposite_Translation(t *testing.T) {
	a := domain.NewNode(
		domain.WithNodeTranslation(10, -5),
		domain.WithCells(domain.Cell{X: 1, Y: 1, Glyph: 3}),
	)
	b := domain.NewNode(domain.WithCells(domain.Cell{X: 11, Y: -4, Glyph: 4}))
	scene := domain.NewScene(domain.WithNodes(a, b))

	cells := compositor.Composite(scene)
	require.Len(t, cells, 1)
	assert.Equal(t, domain.Cell{X: 11, Y: -4, Glyph: 3}, cells[0])

	c, ok := compositor.CellAt(scene, 11, -4)
	require.True(t, ok)
	assert.Equal(t, 3, c.Glyph)
}

func TestComposite_InvisibleNodesContributeNothing(t *testing.T) {
	hidden := domain.NewNode(
		domain.WithNodeVisibility(false),
		domain.WithCells(domain.Cell{X: 0, Y: 0, Glyph: 9}, domain.Cell{X: 5, Y: 5}),
	)
	below := domain.NewNode(domain.WithCells(domain.Cell{X: 0, Y: 0, Glyph: 1}))
	scene := domain.NewScene(domain.WithNodes(hidden, below))

	cells := compositor.Composite(scene)
	require.Len(t, cells, 1)
	assert.Equal(t, 1, cells[0].Glyph)

	owner, _ := compositor.HitTest(scene, 0, 0)
	assert.Equal(t, below.ID, owner)
}

func TestComposite_Deterministic(t *testing.T) {
	n := domain.NewNode(domain.WithCells(
		domain.Cell{X: 0, Y: 0, Glyph: 1},
		domain.Cell{X: 1, Y: 0, Glyph: 2},
		domain.Cell{X: 2, Y: 0, Glyph: 3},
	))
	scene := domain.NewScene(domain.WithNodes(n, domain.NewNode()))

	first := byCoordinate(compositor.Composite(scene))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, byCoordinate(compositor.Composite(scene)))
	}

	var streamed []domain.Cell
	for c := range compositor.All(scene) {
		streamed = append(streamed, c)
	}
	assert.Equal(t, first, byCoordinate(streamed))
}

func TestComposite_EmptyScene(t *testing.T) {
	assert.Empty(t, compositor.Composite(domain.NewScene(domain.WithNodes())))
}
