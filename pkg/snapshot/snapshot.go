// Package snapshot converts workspace state to and from bytes.
//
// Ephemeral fields (cursor, marquee selection, tool-local state) are never
// written; restored state starts with them empty. The format carries no
// version of its own.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/glyphgrid/pkg/action"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/history"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

type stateDTO struct {
	Doc            domain.Document `json:"doc"`
	History        historyDTO      `json:"history"`
	CurrentToolID  string          `json:"currentToolId"`
	CurrentSceneID string          `json:"currentSceneId"`
	CurrentNodeID  string          `json:"currentNodeId"`
	CurrentGlyph   int             `json:"currentGlyph"`
	CurrentColor   int             `json:"currentColor"`
}

type historyDTO struct {
	Cursor    int           `json:"cursor"`
	Revisions []revisionDTO `json:"revisions"`
}

type revisionDTO struct {
	ID         int               `json:"id"`
	Timestamp  time.Time         `json:"timestamp"`
	BatchStart time.Time         `json:"batchStart"`
	Doc        domain.Document   `json:"doc"`
	Action     json.RawMessage   `json:"action"`
	Actions    []json.RawMessage `json:"actions"`
}

var null = json.RawMessage("null")

// Serialize encodes the persistent part of s as JSON.
func Serialize(s workspace.State) ([]byte, error) {
	dto := stateDTO{
		Doc:            s.Document,
		CurrentToolID:  s.CurrentToolID,
		CurrentSceneID: s.CurrentSceneID,
		CurrentNodeID:  s.CurrentNodeID,
		CurrentGlyph:   s.CurrentGlyph,
		CurrentColor:   s.CurrentColor,
		History: historyDTO{
			Cursor:    s.History.Cursor,
			Revisions: make([]revisionDTO, 0, s.History.Len()),
		},
	}

	for _, r := range s.History.Revisions {
		rev := revisionDTO{
			ID:         r.ID,
			Timestamp:  r.Timestamp,
			BatchStart: r.BatchStart,
			Doc:        r.Document,
			Action:     null,
			Actions:    make([]json.RawMessage, 0, len(r.Actions)),
		}

		if r.Action != nil {
			raw, err := action.Marshal(r.Action)
			if err != nil {
				return nil, fmt.Errorf("revision %d: %w", r.ID, err)
			}
			rev.Action = raw
		}
		for _, a := range r.Actions {
			raw, err := action.Marshal(a)
			if err != nil {
				return nil, fmt.Errorf("revision %d: %w", r.ID, err)
			}
			rev.Actions = append(rev.Actions, raw)
		}

		dto.History.Revisions = append(dto.History.Revisions, rev)
	}

	return json.Marshal(dto)
}

// Deserialize restores state written by Serialize.
func Deserialize(data []byte) (workspace.State, error) {
	var dto stateDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return workspace.State{}, fmt.Errorf("decode snapshot: %w", err)
	}

	h, err := restoreHistory(dto.History)
	if err != nil {
		return workspace.State{}, err
	}

	return workspace.State{
		Document:       dto.Doc,
		History:        h,
		CurrentToolID:  dto.CurrentToolID,
		CurrentSceneID: dto.CurrentSceneID,
		CurrentNodeID:  dto.CurrentNodeID,
		CurrentGlyph:   dto.CurrentGlyph,
		CurrentColor:   dto.CurrentColor,
	}, nil
}

func restoreHistory(dto historyDTO) (history.History, error) {
	if len(dto.Revisions) == 0 {
		return history.History{}, fmt.Errorf("%w: empty history", domain.ErrInvalidSnapshot)
	}
	if dto.Cursor < 0 || dto.Cursor >= len(dto.Revisions) {
		return history.History{}, fmt.Errorf("%w: cursor %d out of %d revisions",
			domain.ErrInvalidSnapshot, dto.Cursor, len(dto.Revisions))
	}

	h := history.History{
		Cursor:    dto.Cursor,
		Revisions: make([]history.Revision, 0, len(dto.Revisions)),
	}

	for i, r := range dto.Revisions {
		rev := history.Revision{
			ID:         i,
			Timestamp:  r.Timestamp,
			BatchStart: r.BatchStart,
			Document:   r.Doc,
			Actions:    make([]domain.Action, 0, len(r.Actions)),
		}

		if len(r.Action) > 0 && string(r.Action) != "null" {
			a, err := action.Unmarshal(r.Action)
			if err != nil {
				return history.History{}, fmt.Errorf("revision %d: %w", i, err)
			}
			rev.Action = a
		}
		for _, raw := range r.Actions {
			a, err := action.Unmarshal(raw)
			if err != nil {
				return history.History{}, fmt.Errorf("revision %d: %w", i, err)
			}
			rev.Actions = append(rev.Actions, a)
		}

		h.Revisions = append(h.Revisions, rev)
	}

	return h, nil
}
