package glyphgrid_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/glyphgrid"
	"github.com/aretw0/glyphgrid/internal/adapters/file"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/compositor"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/shortcuts"
	"github.com/aretw0/glyphgrid/pkg/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func setCell(sceneID, nodeID string, x, y int) action.SetCell {
	return action.SetCell{SceneID: sceneID, NodeID: nodeID, X: x, Y: y, Glyph: 1, Color: 2}
}

func TestEditor_StartAndDispatch(t *testing.T) {
	clock := newClock()
	var started, dispatched []string
	editor := glyphgrid.New(
		glyphgrid.WithClock(clock.Now),
		glyphgrid.WithLifecycleHooks(domain.LifecycleHooks{
			OnSessionStart: func(_ context.Context, e *domain.SessionEvent) { started = append(started, e.SessionID) },
			OnDispatch:     func(_ context.Context, e *domain.DispatchEvent) { dispatched = append(dispatched, e.Change) },
		}),
	)
	ctx := context.Background()

	state, err := editor.Start(ctx, "s1")
	require.NoError(t, err)
	_, err = editor.Start(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, started, "only a created session fires the start hook")

	scene, node := state.CurrentSceneID, state.CurrentNodeID

	state, err = editor.Dispatch(ctx, "s1", setCell(scene, node, 0, 0))
	require.NoError(t, err)
	clock.Advance(100 * time.Millisecond)
	state, err = editor.Dispatch(ctx, "s1", setCell(scene, node, 1, 0))
	require.NoError(t, err)
	clock.Advance(time.Second)
	state, err = editor.Dispatch(ctx, "s1", setCell(scene, node, 2, 0))
	require.NoError(t, err)

	assert.Equal(t, 3, state.History.Len())
	assert.Equal(t, []string{"appended", "coalesced", "appended"}, dispatched)

	stored, err := editor.State(ctx, "s1")
	require.NoError(t, err)
	current, _ := stored.CurrentScene()
	assert.Len(t, compositor.Composite(current), 3)

	stored, err = editor.Dispatch(ctx, "s1", action.Undo{})
	require.NoError(t, err)
	current, _ = stored.CurrentScene()
	assert.Len(t, compositor.Composite(current), 2)
	assert.True(t, stored.History.CanRedo())
}

func TestEditor_DispatchRejectsLastScene(t *testing.T) {
	editor := glyphgrid.New(glyphgrid.WithClock(newClock().Now))
	ctx := context.Background()

	state, err := editor.Start(ctx, "s")
	require.NoError(t, err)

	_, err = editor.Dispatch(ctx, "s",
		action.SetName{Name: "ignored"},
		action.DeleteScene{SceneID: state.CurrentSceneID},
	)
	assert.ErrorIs(t, err, domain.ErrLastScene)

	after, err := editor.State(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, after.Document.Name, "a rejected batch saves nothing")
	assert.Len(t, after.Document.Scenes, 1)

	// Apply is the raw pipeline: the delete is a no-op there.
	applied := editor.Apply(after, action.DeleteScene{SceneID: after.CurrentSceneID})
	assert.Len(t, applied.Document.Scenes, 1)
}

func TestEditor_DispatchMissingSession(t *testing.T) {
	editor := glyphgrid.New()
	_, err := editor.Dispatch(context.Background(), "ghost", action.Undo{})
	assert.True(t, glyphgrid.IsNotFound(err))
}

func TestEditor_PointerLine(t *testing.T) {
	editor := glyphgrid.New(glyphgrid.WithClock(newClock().Now))
	ctx := context.Background()

	_, err := editor.Start(ctx, "p")
	require.NoError(t, err)
	_, err = editor.Dispatch(ctx, "p", action.SelectTool{ToolID: "line"})
	require.NoError(t, err)

	state, err := editor.Pointer(ctx, "p", tools.PointerEvent{Phase: tools.PointerDown, X: 0, Y: 0})
	require.NoError(t, err)
	assert.IsType(t, tools.LineDrag{}, state.ToolState("line"))

	_, err = editor.Pointer(ctx, "p", tools.PointerEvent{Phase: tools.PointerMove, X: 2, Y: 0, Pressed: true})
	require.NoError(t, err)

	state, err = editor.Pointer(ctx, "p", tools.PointerEvent{Phase: tools.PointerUp, X: 3, Y: 0})
	require.NoError(t, err)

	node, ok := state.CurrentNode()
	require.True(t, ok)
	assert.Len(t, node.Cells, 4)
	assert.Nil(t, state.ToolState("line"))
	require.NotNil(t, state.Cursor)
	assert.Equal(t, domain.Vector{X: 3, Y: 0}, *state.Cursor)
	assert.Equal(t, 2, state.History.Len(), "one gesture is one revision")
}

func TestEditor_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := glyphgrid.New(glyphgrid.WithStore(file.New(dir)))
	state, err := first.Start(ctx, "doc")
	require.NoError(t, err)
	_, err = first.Dispatch(ctx, "doc", action.SetName{Name: "kept"})
	require.NoError(t, err)

	second := glyphgrid.New(glyphgrid.WithStore(file.New(dir)))
	restored, err := second.State(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "kept", restored.Document.Name)
	assert.Equal(t, state.Document.ID, restored.Document.ID)

	ids, err := second.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"doc"}, ids)

	require.NoError(t, second.Delete(ctx, "doc"))
	_, err = second.State(ctx, "doc")
	assert.True(t, glyphgrid.IsNotFound(err))
}

func TestEditor_BindShortcuts(t *testing.T) {
	editor := glyphgrid.New()
	reg := shortcuts.New()

	var got []action.Action
	unbind := editor.BindShortcuts(reg, func(actions ...action.Action) {
		got = append(got, actions...)
	})

	assert.True(t, reg.KeyDown("e"))
	reg.KeyUp("e")
	assert.True(t, reg.KeyDown("z", "Meta"))
	reg.KeyUp("z", "Meta")
	assert.True(t, reg.KeyDown("Escape"))

	assert.Equal(t, []action.Action{
		action.SelectTool{ToolID: "eraser"},
		action.Undo{},
		action.ClearSelection{},
	}, got)

	unbind()
	assert.Zero(t, reg.Len())
}
