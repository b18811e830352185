package snapshot_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aretw0/glyphgrid/internal/runtime"
	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/snapshot"
	"github.com/aretw0/glyphgrid/pkg/workspace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func editedState(t *testing.T) workspace.State {
	t.Helper()

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		now = now.Add(300 * time.Millisecond)
		return now
	}
	p := runtime.New(runtime.WithClock(tick))

	s := workspace.New(now)
	sceneID, nodeID := s.CurrentSceneID, s.CurrentNodeID
	s = p.Dispatch(s,
		action.SetCell{SceneID: sceneID, NodeID: nodeID, X: 1, Y: 1, Glyph: 2, Color: 3},
		action.SetCell{SceneID: sceneID, NodeID: nodeID, X: 2, Y: 1, Glyph: 2, Color: 3},
		action.AddNode{SceneID: sceneID, Node: domain.NewNode(domain.WithNodeName("overlay"))},
		action.SetName{Name: "snap"},
		action.Undo{},
		action.SelectColor{ColorIndex: 4},
		action.SetCursor{X: 9, Y: 9},
		action.SetSelection{Selection: domain.RectFromPoints(0, 0, 2, 2)},
	)
	require.Equal(t, 2, s.History.Cursor)
	return s.WithToolState("line", "dragging")
}

func TestRoundTrip(t *testing.T) {
	s := editedState(t)

	data, err := snapshot.Serialize(s)
	require.NoError(t, err)

	got, err := snapshot.Deserialize(data)
	require.NoError(t, err)

	assert.True(t, s.Document.Equal(got.Document))
	assert.Equal(t, s.CurrentToolID, got.CurrentToolID)
	assert.Equal(t, s.CurrentSceneID, got.CurrentSceneID)
	assert.Equal(t, s.CurrentNodeID, got.CurrentNodeID)
	assert.Equal(t, s.CurrentGlyph, got.CurrentGlyph)
	assert.Equal(t, 4, got.CurrentColor)

	require.Equal(t, s.History.Len(), got.History.Len())
	assert.Equal(t, s.History.Cursor, got.History.Cursor)
	for i, want := range s.History.Revisions {
		have := got.History.Revisions[i]
		assert.Equal(t, want.ID, have.ID)
		assert.True(t, want.Timestamp.Equal(have.Timestamp))
		assert.True(t, want.BatchStart.Equal(have.BatchStart))
		assert.True(t, want.Document.Equal(have.Document))
		assert.Equal(t, want.Action, have.Action)
		assert.Equal(t, want.Actions, have.Actions)
	}

	assert.Nil(t, got.Cursor)
	assert.Nil(t, got.Selection)
	assert.Nil(t, got.Tools)
}

func TestSerialize_OmitsEphemeralFields(t *testing.T) {
	data, err := snapshot.Serialize(editedState(t))
	require.NoError(t, err)

	var fields map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Contains(t, fields, "doc")
	assert.Contains(t, fields, "history")
	assert.NotContains(t, fields, "cursor")
	assert.NotContains(t, fields, "selection")
	assert.NotContains(t, fields, "tools")
}

func TestRoundTrip_ContinuesEditing(t *testing.T) {
	s := editedState(t)
	data, err := snapshot.Serialize(s)
	require.NoError(t, err)
	got, err := snapshot.Deserialize(data)
	require.NoError(t, err)

	p := runtime.New()
	got = p.Dispatch(got, action.Redo{})
	assert.Equal(t, "snap", got.Document.Name)
}

func TestDeserialize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"empty history", `{"doc":{},"history":{"cursor":0,"revisions":[]}}`},
		{"cursor out of range", `{"doc":{},"history":{"cursor":2,"revisions":[{"id":0,"action":null,"actions":[]}]}}`},
		{"unknown action", `{"doc":{},"history":{"cursor":0,"revisions":[{"id":0,"action":{"type":"x/y"},"actions":[]}]}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := snapshot.Deserialize([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	_, err := snapshot.Deserialize([]byte(`{"doc":{},"history":{"cursor":0,"revisions":[]}}`))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}

func TestDocumentYAML(t *testing.T) {
	doc := editedState(t).Document

	out, err := snapshot.EncodeDocumentYAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "cellWidth: 12")

	got, err := snapshot.DecodeDocumentYAML(out)
	require.NoError(t, err)
	assert.True(t, doc.Equal(got))
}

func TestDecodeDocumentYAML_Defaults(t *testing.T) {
	doc, err := snapshot.DecodeDocumentYAML([]byte(`
id: d1
name: sketch
scenes:
  - id: s1
    name: main
    nodes:
      - id: n1
        visible: true
        translate: {x: 0, y: 0}
        cells:
          - {x: 0, y: 0, glyph: 1, color: 1}
`))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultColors, doc.Colors)
	assert.Equal(t, domain.DefaultGlyphs, doc.Glyphs)
	assert.Equal(t, domain.DefaultWidth, doc.Width)
	assert.Equal(t, "sketch", doc.Name)

	_, err = snapshot.DecodeDocumentYAML([]byte("name: empty\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidSnapshot)
}
