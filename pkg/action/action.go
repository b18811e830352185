// Package action defines the closed set of edits that can be dispatched to a
// workspace, their transient/persistent classification and their encodings.
package action

import (
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/aretw0/glyphgrid/pkg/workspace"
)

// Action is a sealed union over the concrete action structs of this package.
type Action interface {
	domain.Action
	isAction()
}

const (
	KindNewWorkspace   domain.ActionKind = "workspace/new"
	KindLoadWorkspace  domain.ActionKind = "workspace/load"
	KindSelectTool     domain.ActionKind = "workspace/select-tool"
	KindSelectColor    domain.ActionKind = "workspace/select-color"
	KindSelectGlyph    domain.ActionKind = "workspace/select-glyph"
	KindSelectScene    domain.ActionKind = "workspace/select-scene"
	KindSelectNode     domain.ActionKind = "workspace/select-node"
	KindSetCursor      domain.ActionKind = "workspace/set-cursor"
	KindSetSelection   domain.ActionKind = "workspace/set-selection"
	KindClearSelection domain.ActionKind = "workspace/clear-selection"

	KindUndo           domain.ActionKind = "history/undo"
	KindRedo           domain.ActionKind = "history/redo"
	KindSelectRevision domain.ActionKind = "history/select-revision"

	KindSetName            domain.ActionKind = "document/set-name"
	KindSetFont            domain.ActionKind = "document/set-font"
	KindSetDimensions      domain.ActionKind = "document/set-dimensions"
	KindSetCellDimensions  domain.ActionKind = "document/set-cell-dimensions"
	KindSetBackgroundColor domain.ActionKind = "document/set-background-color"
	KindSetGlyphIndex      domain.ActionKind = "document/set-glyph-index"
	KindSetColorIndex      domain.ActionKind = "document/set-color-index"

	KindAddScene    domain.ActionKind = "scene/add"
	KindDeleteScene domain.ActionKind = "scene/delete"
	KindRenameScene domain.ActionKind = "scene/rename"

	KindAddNode        domain.ActionKind = "node/add"
	KindDeleteNode     domain.ActionKind = "node/delete"
	KindRenameNode     domain.ActionKind = "node/rename"
	KindSetCell        domain.ActionKind = "node/set-cell"
	KindClearCell      domain.ActionKind = "node/clear-cell"
	KindSetVisibility  domain.ActionKind = "node/set-visibility"
	KindSetTranslation domain.ActionKind = "node/set-translation"
)

// Workspace actions.

// NewWorkspace replaces the whole state with a fresh workspace.
type NewWorkspace struct {
	State workspace.State `json:"-" mapstructure:"-"`
}

// LoadWorkspace replaces the whole state with a restored one.
type LoadWorkspace struct {
	State workspace.State `json:"-" mapstructure:"-"`
}

type SelectTool struct {
	ToolID string `json:"toolId" mapstructure:"toolId"`
}

type SelectColor struct {
	ColorIndex int `json:"colorIndex" mapstructure:"colorIndex"`
}

type SelectGlyph struct {
	GlyphIndex int `json:"glyphIndex" mapstructure:"glyphIndex"`
}

// SelectScene selects a scene and its top node.
type SelectScene struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
}

type SelectNode struct {
	NodeID string `json:"nodeId" mapstructure:"nodeId"`
}

// SetCursor records the hovered cell in world coordinates.
type SetCursor struct {
	X int `json:"x" mapstructure:"x"`
	Y int `json:"y" mapstructure:"y"`
}

type SetSelection struct {
	Selection domain.Rect `json:"selection" mapstructure:"selection"`
}

type ClearSelection struct{}

// History navigation.

type Undo struct{}

type Redo struct{}

// SelectRevision moves the history cursor to a revision id.
type SelectRevision struct {
	ID int `json:"id" mapstructure:"id"`
}

// Document settings.

type SetName struct {
	Name string `json:"name" mapstructure:"name"`
}

type SetFont struct {
	Family string `json:"family" mapstructure:"family"`
	Size   int    `json:"size" mapstructure:"size"`
}

type SetDimensions struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

type SetCellDimensions struct {
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

type SetBackgroundColor struct {
	Color string `json:"color" mapstructure:"color"`
}

type SetGlyphIndex struct {
	Index int    `json:"index" mapstructure:"index"`
	Glyph string `json:"glyph" mapstructure:"glyph"`
}

type SetColorIndex struct {
	Index int    `json:"index" mapstructure:"index"`
	Color string `json:"color" mapstructure:"color"`
}

// Scenes.

// AddScene appends a scene. The scene is built by the dispatcher so that
// its top node can be selected in the same transition.
type AddScene struct {
	Scene domain.Scene `json:"scene" mapstructure:"scene"`
}

type DeleteScene struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
}

type RenameScene struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
	Name    string `json:"name" mapstructure:"name"`
}

// Nodes.

// AddNode puts a node on top of a scene.
type AddNode struct {
	SceneID string      `json:"sceneId" mapstructure:"sceneId"`
	Node    domain.Node `json:"node" mapstructure:"node"`
}

type DeleteNode struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
	NodeID  string `json:"nodeId" mapstructure:"nodeId"`
}

type RenameNode struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
	NodeID  string `json:"nodeId" mapstructure:"nodeId"`
	Name    string `json:"name" mapstructure:"name"`
}

// SetCell paints a cell. X and Y are world coordinates.
type SetCell struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
	NodeID  string `json:"nodeId" mapstructure:"nodeId"`
	X       int    `json:"x" mapstructure:"x"`
	Y       int    `json:"y" mapstructure:"y"`
	Glyph   int    `json:"glyph" mapstructure:"glyph"`
	Color   int    `json:"color" mapstructure:"color"`
}

// ClearCell erases a cell. X and Y are world coordinates.
type ClearCell struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
	NodeID  string `json:"nodeId" mapstructure:"nodeId"`
	X       int    `json:"x" mapstructure:"x"`
	Y       int    `json:"y" mapstructure:"y"`
}

// SetVisibility shows or hides a node. With Exclusive set, Visible is
// ignored: a visible target becomes the only visible node of its scene and
// a hidden target makes every node visible again.
type SetVisibility struct {
	SceneID   string `json:"sceneId" mapstructure:"sceneId"`
	NodeID    string `json:"nodeId" mapstructure:"nodeId"`
	Visible   bool   `json:"visible" mapstructure:"visible"`
	Exclusive bool   `json:"exclusive" mapstructure:"exclusive"`
}

type SetTranslation struct {
	SceneID string `json:"sceneId" mapstructure:"sceneId"`
	NodeID  string `json:"nodeId" mapstructure:"nodeId"`
	X       int    `json:"x" mapstructure:"x"`
	Y       int    `json:"y" mapstructure:"y"`
}

func (NewWorkspace) Kind() domain.ActionKind       { return KindNewWorkspace }
func (LoadWorkspace) Kind() domain.ActionKind      { return KindLoadWorkspace }
func (SelectTool) Kind() domain.ActionKind         { return KindSelectTool }
func (SelectColor) Kind() domain.ActionKind        { return KindSelectColor }
func (SelectGlyph) Kind() domain.ActionKind        { return KindSelectGlyph }
func (SelectScene) Kind() domain.ActionKind        { return KindSelectScene }
func (SelectNode) Kind() domain.ActionKind         { return KindSelectNode }
func (SetCursor) Kind() domain.ActionKind          { return KindSetCursor }
func (SetSelection) Kind() domain.ActionKind       { return KindSetSelection }
func (ClearSelection) Kind() domain.ActionKind     { return KindClearSelection }
func (Undo) Kind() domain.ActionKind               { return KindUndo }
func (Redo) Kind() domain.ActionKind               { return KindRedo }
func (SelectRevision) Kind() domain.ActionKind     { return KindSelectRevision }
func (SetName) Kind() domain.ActionKind            { return KindSetName }
func (SetFont) Kind() domain.ActionKind            { return KindSetFont }
func (SetDimensions) Kind() domain.ActionKind      { return KindSetDimensions }
func (SetCellDimensions) Kind() domain.ActionKind  { return KindSetCellDimensions }
func (SetBackgroundColor) Kind() domain.ActionKind { return KindSetBackgroundColor }
func (SetGlyphIndex) Kind() domain.ActionKind      { return KindSetGlyphIndex }
func (SetColorIndex) Kind() domain.ActionKind      { return KindSetColorIndex }
func (AddScene) Kind() domain.ActionKind           { return KindAddScene }
func (DeleteScene) Kind() domain.ActionKind        { return KindDeleteScene }
func (RenameScene) Kind() domain.ActionKind        { return KindRenameScene }
func (AddNode) Kind() domain.ActionKind            { return KindAddNode }
func (DeleteNode) Kind() domain.ActionKind         { return KindDeleteNode }
func (RenameNode) Kind() domain.ActionKind         { return KindRenameNode }
func (SetCell) Kind() domain.ActionKind            { return KindSetCell }
func (ClearCell) Kind() domain.ActionKind          { return KindClearCell }
func (SetVisibility) Kind() domain.ActionKind      { return KindSetVisibility }
func (SetTranslation) Kind() domain.ActionKind     { return KindSetTranslation }

func (NewWorkspace) isAction()       {}
func (LoadWorkspace) isAction()      {}
func (SelectTool) isAction()         {}
func (SelectColor) isAction()        {}
func (SelectGlyph) isAction()        {}
func (SelectScene) isAction()        {}
func (SelectNode) isAction()         {}
func (SetCursor) isAction()          {}
func (SetSelection) isAction()       {}
func (ClearSelection) isAction()     {}
func (Undo) isAction()               {}
func (Redo) isAction()               {}
func (SelectRevision) isAction()     {}
func (SetName) isAction()            {}
func (SetFont) isAction()            {}
func (SetDimensions) isAction()      {}
func (SetCellDimensions) isAction()  {}
func (SetBackgroundColor) isAction() {}
func (SetGlyphIndex) isAction()      {}
func (SetColorIndex) isAction()      {}
func (AddScene) isAction()           {}
func (DeleteScene) isAction()        {}
func (RenameScene) isAction()        {}
func (AddNode) isAction()            {}
func (DeleteNode) isAction()         {}
func (RenameNode) isAction()         {}
func (SetCell) isAction()            {}
func (ClearCell) isAction()          {}
func (SetVisibility) isAction()      {}
func (SetTranslation) isAction()     {}
