// Package view projects workspace state into the JSON shapes shared by the
// HTTP, MCP and CLI surfaces.
package view

import (
	"cmp"
	"slices"
	"time"

	"github.com/aretw0/glyphgrid/pkg/compositor"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/history"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// State is the read model of a session.
type State struct {
	SessionID      string          `json:"sessionId"`
	Document       domain.Document `json:"doc"`
	CurrentToolID  string          `json:"currentToolId"`
	CurrentSceneID string          `json:"currentSceneId"`
	CurrentNodeID  string          `json:"currentNodeId"`
	CurrentGlyph   int             `json:"currentGlyph"`
	CurrentColor   int             `json:"currentColor"`
	Cursor         *domain.Vector  `json:"cursor,omitempty"`
	Selection      *domain.Rect    `json:"selection,omitempty"`
	History        Summary         `json:"history"`
}

// Summary is the position of the history cursor.
type Summary struct {
	Cursor  int  `json:"cursor"`
	Length  int  `json:"length"`
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
}

// Revision is one history entry without its document.
type Revision struct {
	ID        int               `json:"id"`
	Timestamp time.Time         `json:"timestamp"`
	Action    domain.ActionKind `json:"action,omitempty"`
	Actions   int               `json:"actions"`
	Current   bool              `json:"current"`
	Future    bool              `json:"future"`
}

// Composite is the flattened content of one scene.
type Composite struct {
	SceneID string        `json:"sceneId"`
	Width   int           `json:"width"`
	Height  int           `json:"height"`
	Cells   []domain.Cell `json:"cells"`
}

// FromState builds the session read model.
func FromState(sessionID string, s workspace.State) State {
	return State{
		SessionID:      sessionID,
		Document:       s.Document,
		CurrentToolID:  s.CurrentToolID,
		CurrentSceneID: s.CurrentSceneID,
		CurrentNodeID:  s.CurrentNodeID,
		CurrentGlyph:   s.CurrentGlyph,
		CurrentColor:   s.CurrentColor,
		Cursor:         s.Cursor,
		Selection:      s.Selection,
		History:        Summarize(s.History),
	}
}

func Summarize(h history.History) Summary {
	return Summary{
		Cursor:  h.Cursor,
		Length:  h.Len(),
		CanUndo: h.CanUndo(),
		CanRedo: h.CanRedo(),
	}
}

// Revisions lists the log oldest first.
func Revisions(h history.History) []Revision {
	out := make([]Revision, len(h.Revisions))
	for i, r := range h.Revisions {
		out[i] = Revision{
			ID:        r.ID,
			Timestamp: r.Timestamp,
			Actions:   len(r.Actions),
			Current:   i == h.Cursor,
			Future:    h.IsInFuture(i),
		}
		if r.Action != nil {
			out[i].Action = r.Action.Kind()
		}
	}
	return out
}

// CompositeOf flattens a scene. Cells are sorted by row, then column.
func CompositeOf(doc domain.Document, scene domain.Scene) Composite {
	cells := compositor.Composite(scene)
	slices.SortFunc(cells, func(a, b domain.Cell) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return Composite{
		SceneID: scene.ID,
		Width:   doc.Width,
		Height:  doc.Height,
		Cells:   cells,
	}
}
