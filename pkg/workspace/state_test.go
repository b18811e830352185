package workspace_test

import (
	"testing"
	"time"

	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func threeScenes() workspace.State {
	doc := domain.NewDocument(domain.WithScenes(
		domain.NewScene(domain.WithSceneID("s0"), domain.WithNodes(domain.NewNode(domain.WithNodeID("s0n0")))),
		domain.NewScene(domain.WithSceneID("s1"), domain.WithNodes(
			domain.NewNode(domain.WithNodeID("n0")),
			domain.NewNode(domain.WithNodeID("n1")),
			domain.NewNode(domain.WithNodeID("n2")),
		)),
		domain.NewScene(domain.WithSceneID("s2"), domain.WithNodes(domain.NewNode(domain.WithNodeID("s2n0")))),
	))
	return workspace.FromDocument(doc, now)
}

func TestNew(t *testing.T) {
	s := workspace.New(now)

	require.Len(t, s.Document.Scenes, 1)
	require.Len(t, s.Document.Scenes[0].Nodes, 1)
	assert.Equal(t, s.Document.Scenes[0].ID, s.CurrentSceneID)
	assert.Equal(t, s.Document.Scenes[0].Nodes[0].ID, s.CurrentNodeID)
	assert.Equal(t, workspace.DefaultToolID, s.CurrentToolID)
	assert.Zero(t, s.CurrentGlyph)
	assert.Zero(t, s.CurrentColor)
	assert.Nil(t, s.Cursor)
	assert.Nil(t, s.Selection)

	assert.Equal(t, 1, s.History.Len())
	assert.True(t, s.History.CurrentDocument().Equal(s.Document))
	assert.Equal(t, domain.Vector{X: 25, Y: 10}, s.Center())
	assert.False(t, s.CanDeleteScene())
}

func TestCurrentLookups(t *testing.T) {
	s := threeScenes()

	scene, ok := s.CurrentScene()
	require.True(t, ok)
	assert.Equal(t, "s0", scene.ID)

	node, ok := s.CurrentNode()
	require.True(t, ok)
	assert.Equal(t, "s0n0", node.ID)

	s.CurrentNodeID = "n0"
	_, ok = s.CurrentNode()
	assert.False(t, ok, "node must belong to the current scene")
}

func TestSelectNearestScene(t *testing.T) {
	s := threeScenes()

	assert.Equal(t, "s2", s.SelectNearestScene("s1").CurrentSceneID, "prefers next sibling")
	assert.Equal(t, "s1", s.SelectNearestScene("s2").CurrentSceneID, "falls back to previous")
	assert.Equal(t, "s1", s.SelectNearestScene("s0").CurrentSceneID)
	assert.Equal(t, "s0", s.SelectNearestScene("missing").CurrentSceneID)

	single := workspace.New(now)
	assert.Equal(t, single.CurrentSceneID, single.SelectNearestScene(single.CurrentSceneID).CurrentSceneID)
}

func TestSelectNearestNode(t *testing.T) {
	s := threeScenes()

	assert.Equal(t, "n2", s.SelectNearestNode("s1", "n1").CurrentNodeID)
	assert.Equal(t, "n1", s.SelectNearestNode("s1", "n2").CurrentNodeID)
	assert.Equal(t, "s0n0", s.SelectNearestNode("s1", "missing").CurrentNodeID)
	assert.Equal(t, "s0n0", s.SelectNearestNode("missing", "n1").CurrentNodeID)
	assert.Equal(t, "s0n0", s.SelectNearestNode("s2", "s2n0").CurrentNodeID, "only child has no neighbour")
}

func TestToolState(t *testing.T) {
	s := workspace.New(now)
	a := s.WithToolState("line", 1)
	b := a.WithToolState("line", 2)

	assert.Nil(t, s.ToolState("line"))
	assert.Equal(t, 1, a.ToolState("line"))
	assert.Equal(t, 2, b.ToolState("line"))

	assert.Nil(t, b.WithToolState("line", nil).ToolState("line"))
}

func TestPersistent(t *testing.T) {
	s := workspace.New(now)
	s.Cursor = &domain.Vector{X: 1, Y: 2}
	s.Selection = &domain.Rect{X1: 1, Y1: 1}
	s = s.WithToolState("move", "dragging")

	p := s.Persistent()
	assert.Nil(t, p.Cursor)
	assert.Nil(t, p.Selection)
	assert.Nil(t, p.Tools)
	assert.NotNil(t, s.Cursor)
	assert.Equal(t, s.CurrentNodeID, p.CurrentNodeID)
}
