package tools_test

import (
	"testing"
	"time"

	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/tools"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoNodes builds a workspace whose scene "s" holds "top" above "bottom".
// "bottom" is current and translated by (10, 0).
func twoNodes() workspace.State {
	top := domain.NewNode(domain.WithNodeID("top"), domain.WithCells(domain.Cell{X: 1, Y: 1, Glyph: 2, Color: 3}))
	bottom := domain.NewNode(
		domain.WithNodeID("bottom"),
		domain.WithNodeTranslation(10, 0),
		domain.WithCells(domain.Cell{X: 0, Y: 0, Glyph: 4, Color: 1}),
	)
	doc := domain.NewDocument(domain.WithScenes(
		domain.NewScene(domain.WithSceneID("s"), domain.WithNodes(top, bottom)),
	))

	s := workspace.FromDocument(doc, time.Unix(0, 0))
	s.CurrentNodeID = "bottom"
	return s
}

func TestRegistry(t *testing.T) {
	r := tools.NewDefaultRegistry()

	var ids []string
	for _, tool := range r.List() {
		ids = append(ids, tool.ID())
	}
	assert.Equal(t, []string{"brush", "eraser", "eyedropper", "line", "select", "move"}, ids)

	brush, ok := r.Get("brush")
	require.True(t, ok)
	assert.Equal(t, "Brush", brush.Title())
	assert.Equal(t, []string{"b"}, brush.Shortcut())

	r.Register(tools.NewBrush(tools.WithMirror(true, false)))
	assert.Len(t, r.List(), 6, "re-registering replaces in place")
	brush, _ = r.Get("brush")
	assert.True(t, brush.(*tools.Brush).MirrorX)

	assert.True(t, r.Unregister("line"))
	assert.False(t, r.Unregister("line"))
	_, ok = r.Get("line")
	assert.False(t, ok)
	assert.Len(t, r.List(), 5)
}

func TestDefaults_DeclareEmittedKinds(t *testing.T) {
	for _, tool := range tools.Defaults() {
		assert.NotEmpty(t, tool.Emits(), tool.ID())
		for _, kind := range tool.Emits() {
			assert.NotEqual(t, action.KindNewWorkspace, kind)
		}
	}
}

func TestReflect(t *testing.T) {
	p := domain.Vector{X: 2, Y: 1}
	c := domain.Vector{X: 5, Y: 5}

	assert.Equal(t, []domain.Vector{p}, tools.Reflect(p, c, false, false))
	assert.ElementsMatch(t, []domain.Vector{{X: 8, Y: 1}, {X: 2, Y: 1}}, tools.Reflect(p, c, true, false))
	assert.ElementsMatch(t, []domain.Vector{{X: 2, Y: 9}, {X: 2, Y: 1}}, tools.Reflect(p, c, false, true))
	assert.ElementsMatch(t, []domain.Vector{
		{X: 8, Y: 1}, {X: 8, Y: 9}, {X: 2, Y: 1}, {X: 2, Y: 9},
	}, tools.Reflect(p, c, true, true))
}

func TestBresenham(t *testing.T) {
	tests := []struct {
		name string
		a, b domain.Vector
		want []domain.Vector
	}{
		{"point", domain.Vector{X: 1, Y: 1}, domain.Vector{X: 1, Y: 1}, []domain.Vector{{X: 1, Y: 1}}},
		{"horizontal", domain.Vector{X: 0, Y: 0}, domain.Vector{X: 3, Y: 0}, []domain.Vector{{X: 0}, {X: 1}, {X: 2}, {X: 3}}},
		{"reverse vertical", domain.Vector{X: 0, Y: 2}, domain.Vector{X: 0, Y: 0}, []domain.Vector{{Y: 2}, {Y: 1}, {Y: 0}}},
		{"diagonal", domain.Vector{X: 0, Y: 0}, domain.Vector{X: 2, Y: 2}, []domain.Vector{{}, {X: 1, Y: 1}, {X: 2, Y: 2}}},
		{"shallow", domain.Vector{X: 0, Y: 0}, domain.Vector{X: 4, Y: 2}, []domain.Vector{{}, {X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 2}, {X: 4, Y: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tools.Bresenham(tt.a, tt.b))
		})
	}
}

func TestBrush(t *testing.T) {
	s := twoNodes()
	s.CurrentGlyph, s.CurrentColor = 5, 2
	brush := tools.NewBrush()

	_, actions := brush.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 3, Y: 3})
	assert.Empty(t, actions, "hover does not paint")

	_, actions = brush.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerClick, X: 3, Y: 3})
	require.Len(t, actions, 1)
	assert.Equal(t, action.SetCell{SceneID: "s", NodeID: "bottom", X: 3, Y: 3, Glyph: 5, Color: 2}, actions[0])

	_, actions = brush.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 4, Y: 3, Pressed: true})
	assert.Len(t, actions, 1, "drag paints")

	mirrored := tools.NewBrush(tools.WithMirror(true, true))
	_, actions = mirrored.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerClick, X: 3, Y: 3})
	assert.Len(t, actions, 4)

	s.CurrentNodeID = "gone"
	_, actions = brush.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerClick})
	assert.Empty(t, actions)
}

func TestEraser(t *testing.T) {
	s := twoNodes()
	_, actions := tools.NewEraser().HandlePointer(s, tools.PointerEvent{Phase: tools.PointerClick, X: 10, Y: 0})
	assert.Equal(t, []action.Action{action.ClearCell{SceneID: "s", NodeID: "bottom", X: 10, Y: 0}}, actions)
}

func TestEyedropper(t *testing.T) {
	s := twoNodes()
	e := tools.NewEyedropper()

	local, actions := e.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 10, Y: 0})
	assert.Empty(t, actions)
	require.NotNil(t, local)
	s = s.WithToolState(e.ID(), local)

	local, actions = e.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerClick, X: 50, Y: 50})
	assert.Equal(t, []action.Action{
		action.SelectColor{ColorIndex: 1},
		action.SelectGlyph{GlyphIndex: 4},
	}, actions, "click uses the last hovered cell")
	assert.NotNil(t, local)

	assert.Nil(t, e.ReduceLocal(local, s, action.SelectNode{NodeID: "top"}))
}

func TestLine(t *testing.T) {
	s := twoNodes()
	line := tools.NewLine()

	local, actions := line.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerUp, X: 1, Y: 1})
	assert.Nil(t, local)
	assert.Empty(t, actions, "up without down commits nothing")

	local, _ = line.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerDown, X: 0, Y: 0})
	s = s.WithToolState(line.ID(), local)
	local, _ = line.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 2, Y: 0})
	assert.Equal(t, tools.LineDrag{End: domain.Vector{X: 2}}, local)
	s = s.WithToolState(line.ID(), local)

	local, actions = line.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerUp, X: 3, Y: 0})
	assert.Nil(t, local)
	require.Len(t, actions, 4)
	assert.Equal(t, action.SetCell{SceneID: "s", NodeID: "bottom", X: 3, Y: 0}, actions[3])

	assert.Nil(t, line.ReduceLocal(tools.LineDrag{}, s, action.Undo{}))
	assert.NotNil(t, line.ReduceLocal(tools.LineDrag{}, s, action.SetCursor{}))
}

func TestSelect(t *testing.T) {
	s := twoNodes()
	sel := tools.NewSelect()

	local, _ := sel.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerDown, X: 2, Y: 2})
	s = s.WithToolState(sel.ID(), local)
	local, _ = sel.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 0, Y: 5})
	assert.Equal(t, domain.Rect{X0: 0, Y0: 2, X1: 2, Y1: 5}, local.(tools.Marquee).Rect)
	s = s.WithToolState(sel.ID(), local)

	local, actions := sel.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerUp, X: 0, Y: 5})
	assert.Nil(t, local)
	assert.Equal(t, []action.Action{action.SetSelection{Selection: domain.Rect{X0: 0, Y0: 2, X1: 2, Y1: 5}}}, actions)

	local, _ = sel.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerDown, X: 2, Y: 2})
	s = s.WithToolState(sel.ID(), local)
	_, actions = sel.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerUp, X: 2, Y: 7})
	assert.Equal(t, []action.Action{action.ClearSelection{}}, actions, "a drag along one axis clears")

	assert.Nil(t, sel.ReduceLocal(tools.Marquee{}, s, action.ClearSelection{}))
}

func TestMove_DragsHitNode(t *testing.T) {
	s := twoNodes()
	move := tools.NewMove()

	local, actions := move.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerDown, X: 1, Y: 1})
	assert.Equal(t, []action.Action{action.SelectNode{NodeID: "top"}}, actions, "hit node is selected first")
	drag := local.(tools.MoveDrag)
	assert.Equal(t, tools.MoveNode, drag.Target)
	assert.Equal(t, "top", drag.NodeID)

	s.CurrentNodeID = "top"
	s = s.WithToolState(move.ID(), local)
	local, actions = move.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 4, Y: 0})
	assert.Equal(t, []action.Action{action.SetTranslation{SceneID: "s", NodeID: "top", X: 3, Y: -1}}, actions)
	assert.NotNil(t, local)

	local, actions = move.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerUp, X: 4, Y: 0})
	assert.Nil(t, local)
	assert.Empty(t, actions)
}

func TestMove_FallsBackToCurrentNode(t *testing.T) {
	s := twoNodes()
	move := tools.NewMove()

	local, actions := move.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerDown, X: 30, Y: 30})
	assert.Empty(t, actions)
	drag := local.(tools.MoveDrag)
	assert.Equal(t, "bottom", drag.NodeID)
	assert.Equal(t, domain.Vector{X: 10}, drag.Origin)

	assert.Nil(t, move.ReduceLocal(drag, s, action.DeleteNode{SceneID: "s", NodeID: "bottom"}))
	assert.Equal(t, drag, move.ReduceLocal(drag, s, action.DeleteNode{SceneID: "s", NodeID: "top"}))
}

func TestMove_DragsSelection(t *testing.T) {
	s := twoNodes()
	sel := domain.Rect{X0: 0, Y0: 0, X1: 3, Y1: 3}
	s.Selection = &sel
	move := tools.NewMove()

	local, _ := move.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerDown, X: 1, Y: 1})
	assert.Equal(t, tools.MoveSelection, local.(tools.MoveDrag).Target)
	s = s.WithToolState(move.ID(), local)

	_, actions := move.HandlePointer(s, tools.PointerEvent{Phase: tools.PointerMove, X: 3, Y: 2})
	assert.Equal(t, []action.Action{action.SetSelection{Selection: domain.Rect{X0: 2, Y0: 1, X1: 5, Y1: 4}}}, actions)
}
