// Package workspace holds the full application state of an editing session:
// the document, its history and the transient selection around them.
package workspace

import (
	"maps"
	"time"

	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/history"
)

// DefaultToolID is the tool selected in a new workspace.
const DefaultToolID = "brush"

// State is one immutable snapshot of an editing session.
//
// Cursor and Selection are ephemeral and never persisted. Tools holds
// tool-local state keyed by tool id; it is neither persisted nor recorded.
type State struct {
	Document domain.Document
	History  history.History

	CurrentToolID  string
	CurrentSceneID string
	CurrentNodeID  string
	CurrentGlyph   int
	CurrentColor   int

	Cursor    *domain.Vector
	Selection *domain.Rect

	Tools map[string]any
}

// New creates a workspace with one scene holding one node, the default
// palettes and a bootstrap revision stamped at now.
func New(now time.Time) State {
	node := domain.NewNode()
	scene := domain.NewScene(domain.WithNodes(node))
	doc := domain.NewDocument(domain.WithScenes(scene))

	return FromDocument(doc, now)
}

// FromDocument creates a workspace around an existing document with a fresh
// history. The first scene and its top node are selected.
func FromDocument(doc domain.Document, now time.Time) State {
	s := State{
		Document:      doc,
		History:       history.New(doc, now),
		CurrentToolID: DefaultToolID,
	}
	if len(doc.Scenes) > 0 {
		s.CurrentSceneID = doc.Scenes[0].ID
	}
	return s.SelectDefaultNode()
}

// CurrentScene resolves CurrentSceneID against the document.
func (s State) CurrentScene() (domain.Scene, bool) {
	return s.Document.SceneByID(s.CurrentSceneID)
}

// CurrentNode resolves CurrentNodeID inside the current scene.
func (s State) CurrentNode() (domain.Node, bool) {
	return s.Document.NodeByID(s.CurrentSceneID, s.CurrentNodeID)
}

// Center returns the center of the canvas, rounded down.
func (s State) Center() domain.Vector {
	return domain.Vector{X: s.Document.Width / 2, Y: s.Document.Height / 2}
}

// CanDeleteScene reports whether deleting a scene keeps at least one.
func (s State) CanDeleteScene() bool {
	return len(s.Document.Scenes) > 1
}

// SelectDefaultNode selects the top node of the current scene, if any.
func (s State) SelectDefaultNode() State {
	scene, ok := s.CurrentScene()
	if !ok {
		return s
	}
	if node, ok := scene.TopNode(); ok {
		s.CurrentNodeID = node.ID
	}
	return s
}

// SelectNearestScene selects the neighbour of sceneID, preferring the next
// scene over the previous one. It must run before the scene is removed.
func (s State) SelectNearestScene(sceneID string) State {
	i := s.Document.SceneIndex(sceneID)
	if i < 0 {
		return s
	}
	if id, ok := nearest(s.Document.Scenes, i, func(sc domain.Scene) string { return sc.ID }); ok {
		s.CurrentSceneID = id
	}
	return s
}

// SelectNearestNode selects the neighbour of nodeID within sceneID,
// preferring the next node over the previous one.
func (s State) SelectNearestNode(sceneID, nodeID string) State {
	scene, ok := s.Document.SceneByID(sceneID)
	if !ok {
		return s
	}
	i := scene.NodeIndex(nodeID)
	if i < 0 {
		return s
	}
	if id, ok := nearest(scene.Nodes, i, func(n domain.Node) string { return n.ID }); ok {
		s.CurrentNodeID = id
	}
	return s
}

func nearest[T any](items []T, i int, id func(T) string) (string, bool) {
	switch {
	case i+1 < len(items):
		return id(items[i+1]), true
	case i-1 >= 0:
		return id(items[i-1]), true
	default:
		return "", false
	}
}

// ToolState returns the local state of a tool.
func (s State) ToolState(toolID string) any {
	return s.Tools[toolID]
}

// WithToolState returns s with the local state of toolID replaced.
// A nil value removes the entry.
func (s State) WithToolState(toolID string, local any) State {
	tools := maps.Clone(s.Tools)
	if tools == nil {
		tools = make(map[string]any, 1)
	}
	if local == nil {
		delete(tools, toolID)
	} else {
		tools[toolID] = local
	}
	s.Tools = tools
	return s
}

// Persistent strips every field that must not survive a save.
func (s State) Persistent() State {
	s.Cursor = nil
	s.Selection = nil
	s.Tools = nil
	return s
}
