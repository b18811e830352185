package mcp

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/glyphgrid"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/view"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewServer(glyphgrid.New(glyphgrid.WithClock(func() time.Time { return now })))
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestServer_StartDispatchState(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	started, err := s.handleStart(ctx, call("start_session", nil), map[string]any{"session_id": "m"})
	require.NoError(t, err)

	cell := map[string]any{
		"type":    string(action.KindSetCell),
		"sceneId": started.CurrentSceneID,
		"nodeId":  started.CurrentNodeID,
		"x":       "2",
		"y":       3.0,
		"glyph":   1,
		"color":   2,
	}
	st, err := s.handleDispatch(ctx, call("dispatch", nil), map[string]any{"session_id": "m", "action": cell})
	require.NoError(t, err)
	assert.Equal(t, 2, st.History.Length)

	st, err = s.handleDispatch(ctx, call("dispatch", nil), map[string]any{
		"session_id": "m",
		"actions":    `[{"type":"document/set-name","name":"mcp"},{"type":"history/undo"}]`,
	})
	require.NoError(t, err)
	assert.Empty(t, st.Document.Name)
	assert.True(t, st.History.CanRedo)

	got, err := s.handleGetState(ctx, call("get_state", nil), map[string]any{"session_id": "m"})
	require.NoError(t, err)
	assert.Equal(t, st.History, got.History)

	comp, err := s.handleComposite(ctx, call("composite", nil), map[string]any{"session_id": "m"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Cell{{X: 2, Y: 3, Glyph: 1, Color: 2}}, comp.Cells)
}

func TestServer_DispatchErrors(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleDispatch(ctx, call("dispatch", nil), map[string]any{"actions": `{"type":"history/undo"}`})
	assert.ErrorContains(t, err, "session_id")

	_, err = s.handleStart(ctx, call("start_session", nil), map[string]any{"session_id": "e"})
	require.NoError(t, err)

	_, err = s.handleDispatch(ctx, call("dispatch", nil), map[string]any{"session_id": "e"})
	assert.ErrorContains(t, err, "required")

	_, err = s.handleDispatch(ctx, call("dispatch", nil), map[string]any{"session_id": "e", "actions": `{"type":"nope"}`})
	assert.ErrorIs(t, err, domain.ErrUnknownAction)

	_, err = s.handleComposite(ctx, call("composite", nil), map[string]any{"session_id": "e", "scene_id": "missing"})
	assert.ErrorContains(t, err, "not found")
}

func TestServer_HistoryAndResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, err := s.handleStart(ctx, call("start_session", nil), map[string]any{"session_id": "h"})
	require.NoError(t, err)

	res, err := s.handleHistory(ctx, call("history", map[string]any{"session_id": "h"}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var revs []view.Revision
	require.NoError(t, json.Unmarshal([]byte(text.Text), &revs))
	assert.Len(t, revs, 1)

	res, err = s.handleHistory(ctx, call("history", map[string]any{"session_id": "ghost"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	contents, err := s.readSessions(ctx, mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.JSONEq(t, `["h"]`, contents[0].(mcp.TextResourceContents).Text)
}
