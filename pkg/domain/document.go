package domain

import "slices"

// Default document settings.
const (
	DefaultWidth           = 50
	DefaultHeight          = 20
	DefaultCellWidth       = 12
	DefaultCellHeight      = 20
	DefaultFontFamily      = "mononoki"
	DefaultFontSize        = 20
	DefaultBackgroundColor = "#282c33"
)

// DefaultColors is the palette of a new document.
var DefaultColors = []string{"#000", "#fff", "#f00", "#0f0", "#00f"}

// DefaultGlyphs is the glyph palette of a new document.
var DefaultGlyphs = []string{".", "|", "-", "_", "/", "\\", "=", "*", "'", `"`, "`"}

// Document is the full editable artifact: settings, palettes and scenes.
type Document struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Width           int      `json:"width" yaml:"width"`
	Height          int      `json:"height" yaml:"height"`
	CellWidth       int      `json:"cellWidth" yaml:"cellWidth"`
	CellHeight      int      `json:"cellHeight" yaml:"cellHeight"`
	FontFamily      string   `json:"fontFamily" yaml:"fontFamily"`
	FontSize        int      `json:"fontSize" yaml:"fontSize"`
	BackgroundColor string   `json:"backgroundColor" yaml:"backgroundColor"`
	Scenes          []Scene  `json:"scenes" yaml:"scenes"`
	Colors          []string `json:"colors" yaml:"colors"`
	Glyphs          []string `json:"glyphs" yaml:"glyphs"`
}

// DocumentOption overrides a default of NewDocument.
type DocumentOption func(*Document)

// WithDocumentID sets an explicit identity instead of a generated one.
func WithDocumentID(id string) DocumentOption {
	return func(d *Document) {
		d.ID = id
	}
}

// WithDocumentName sets the display name.
func WithDocumentName(name string) DocumentOption {
	return func(d *Document) {
		d.Name = name
	}
}

// WithScenes replaces the default single scene.
func WithScenes(scenes ...Scene) DocumentOption {
	return func(d *Document) {
		d.Scenes = slices.Clone(scenes)
	}
}

// WithColors replaces the color palette.
func WithColors(colors ...string) DocumentOption {
	return func(d *Document) {
		d.Colors = slices.Clone(colors)
	}
}

// WithGlyphs replaces the glyph palette.
func WithGlyphs(glyphs ...string) DocumentOption {
	return func(d *Document) {
		d.Glyphs = slices.Clone(glyphs)
	}
}

// WithDimensions sets the canvas size in cells.
func WithDimensions(width, height int) DocumentOption {
	return func(d *Document) {
		d.Width, d.Height = width, height
	}
}

// NewDocument creates a document with the default palettes and one scene.
func NewDocument(opts ...DocumentOption) Document {
	d := Document{
		ID:              NewID(),
		Width:           DefaultWidth,
		Height:          DefaultHeight,
		CellWidth:       DefaultCellWidth,
		CellHeight:      DefaultCellHeight,
		FontFamily:      DefaultFontFamily,
		FontSize:        DefaultFontSize,
		BackgroundColor: DefaultBackgroundColor,
		Scenes:          []Scene{NewScene()},
		Colors:          slices.Clone(DefaultColors),
		Glyphs:          slices.Clone(DefaultGlyphs),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// SceneIndex returns the listing position of a scene, or -1.
func (d Document) SceneIndex(sceneID string) int {
	return slices.IndexFunc(d.Scenes, func(s Scene) bool {
		return s.ID == sceneID
	})
}

// SceneByID looks up a scene.
func (d Document) SceneByID(sceneID string) (Scene, bool) {
	i := d.SceneIndex(sceneID)
	if i < 0 {
		return Scene{}, false
	}
	return d.Scenes[i], true
}

// NodeByID looks up a node inside a scene.
func (d Document) NodeByID(sceneID, nodeID string) (Node, bool) {
	scene, ok := d.SceneByID(sceneID)
	if !ok {
		return Node{}, false
	}
	return scene.NodeByID(nodeID)
}

// AddScene appends a scene to the listing.
func (d Document) AddScene(scene Scene) Document {
	scenes := make([]Scene, len(d.Scenes), len(d.Scenes)+1)
	copy(scenes, d.Scenes)
	d.Scenes = append(scenes, scene)
	return d
}

// DeleteScene removes a scene. Refusing to delete the last scene is up to the caller.
func (d Document) DeleteScene(sceneID string) Document {
	i := d.SceneIndex(sceneID)
	if i < 0 {
		return d
	}
	d.Scenes = slices.Delete(slices.Clone(d.Scenes), i, i+1)
	return d
}

// EditScene replaces the addressed scene with fn(scene).
// Unknown ids return the document unchanged.
func (d Document) EditScene(sceneID string, fn func(Scene) Scene) Document {
	i := d.SceneIndex(sceneID)
	if i < 0 {
		return d
	}
	scenes := slices.Clone(d.Scenes)
	scenes[i] = fn(scenes[i])
	d.Scenes = scenes
	return d
}

// EditNode replaces the addressed node with fn(node).
func (d Document) EditNode(sceneID, nodeID string, fn func(Node) Node) Document {
	if _, ok := d.NodeByID(sceneID, nodeID); !ok {
		return d
	}
	return d.EditScene(sceneID, func(s Scene) Scene {
		return s.EditNode(nodeID, fn)
	})
}

// AddNode puts a node on top of the addressed scene.
func (d Document) AddNode(sceneID string, node Node) Document {
	return d.EditScene(sceneID, func(s Scene) Scene {
		return s.AddNode(node)
	})
}

// DeleteNode removes a node from the addressed scene.
func (d Document) DeleteNode(sceneID, nodeID string) Document {
	if _, ok := d.NodeByID(sceneID, nodeID); !ok {
		return d
	}
	return d.EditScene(sceneID, func(s Scene) Scene {
		return s.DeleteNode(nodeID)
	})
}

// RenameScene sets the display name of a scene.
func (d Document) RenameScene(sceneID, name string) Document {
	return d.EditScene(sceneID, func(s Scene) Scene {
		return s.Rename(name)
	})
}

// RenameNode sets the display name of a node.
func (d Document) RenameNode(sceneID, nodeID, name string) Document {
	return d.EditNode(sceneID, nodeID, func(n Node) Node {
		return n.Rename(name)
	})
}

// Color returns the palette entry at index. Out-of-range indices report false.
func (d Document) Color(index int) (string, bool) {
	return paletteAt(d.Colors, index)
}

// Glyph returns the glyph palette entry at index.
func (d Document) Glyph(index int) (string, bool) {
	return paletteAt(d.Glyphs, index)
}

func paletteAt(palette []string, index int) (string, bool) {
	if index < 0 || index >= len(palette) {
		return "", false
	}
	return palette[index], true
}

// SetColor writes a palette entry, growing the palette with empty entries as needed.
// Negative indices are ignored.
func (d Document) SetColor(index int, color string) Document {
	d.Colors = setPaletteAt(d.Colors, index, color)
	return d
}

// SetGlyph writes a glyph palette entry, growing the palette as needed.
func (d Document) SetGlyph(index int, glyph string) Document {
	d.Glyphs = setPaletteAt(d.Glyphs, index, glyph)
	return d
}

func setPaletteAt(palette []string, index int, value string) []string {
	if index < 0 {
		return palette
	}
	out := make([]string, max(len(palette), index+1))
	copy(out, palette)
	out[index] = value
	return out
}

// SetColors replaces the whole color palette.
func (d Document) SetColors(colors []string) Document {
	d.Colors = slices.Clone(colors)
	return d
}

// SetGlyphs replaces the whole glyph palette.
func (d Document) SetGlyphs(glyphs []string) Document {
	d.Glyphs = slices.Clone(glyphs)
	return d
}

// SetName returns the document with a new display name.
func (d Document) SetName(name string) Document {
	d.Name = name
	return d
}

// SetFont sets the font family and size.
func (d Document) SetFont(family string, size int) Document {
	d.FontFamily, d.FontSize = family, size
	return d
}

// SetDimensions sets the canvas size in cells.
func (d Document) SetDimensions(width, height int) Document {
	d.Width, d.Height = width, height
	return d
}

// SetCellDimensions sets the pixel size of one cell.
func (d Document) SetCellDimensions(width, height int) Document {
	d.CellWidth, d.CellHeight = width, height
	return d
}

// SetBackgroundColor sets the canvas background.
func (d Document) SetBackgroundColor(color string) Document {
	d.BackgroundColor = color
	return d
}

// Equal compares two documents by content.
func (d Document) Equal(o Document) bool {
	return d.ID == o.ID &&
		d.Name == o.Name &&
		d.Width == o.Width &&
		d.Height == o.Height &&
		d.CellWidth == o.CellWidth &&
		d.CellHeight == o.CellHeight &&
		d.FontFamily == o.FontFamily &&
		d.FontSize == o.FontSize &&
		d.BackgroundColor == o.BackgroundColor &&
		slices.Equal(d.Colors, o.Colors) &&
		slices.Equal(d.Glyphs, o.Glyphs) &&
		slices.EqualFunc(d.Scenes, o.Scenes, Scene.Equal)
}
