package domain

import "slices"

// Vector is an integer offset or point on the cell grid.
type Vector struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Cell is a single glyph and color at a coordinate.
// Glyph and Color are indices into the Document palettes.
type Cell struct {
	X     int `json:"x" yaml:"x"`
	Y     int `json:"y" yaml:"y"`
	Glyph int `json:"glyph" yaml:"glyph"`
	Color int `json:"color" yaml:"color"`
}

// Bounds is an inclusive axis-aligned box over cell coordinates.
type Bounds struct {
	X0 int `json:"x0" yaml:"x0"`
	Y0 int `json:"y0" yaml:"y0"`
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
}

// Node is a named, positionable layer of cells within a Scene.
// Cells are unique per local (x, y).
type Node struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Visible   bool   `json:"visible" yaml:"visible"`
	Translate Vector `json:"translate" yaml:"translate"`
	Cells     []Cell `json:"cells" yaml:"cells"`
}

// NodeOption overrides a default of NewNode.
type NodeOption func(*Node)

// WithNodeID sets an explicit identity instead of a generated one.
func WithNodeID(id string) NodeOption {
	return func(n *Node) {
		n.ID = id
	}
}

// WithNodeName sets the display name.
func WithNodeName(name string) NodeOption {
	return func(n *Node) {
		n.Name = name
	}
}

// WithNodeVisibility sets the initial visibility (default true).
func WithNodeVisibility(visible bool) NodeOption {
	return func(n *Node) {
		n.Visible = visible
	}
}

// WithNodeTranslation sets the initial offset.
func WithNodeTranslation(x, y int) NodeOption {
	return func(n *Node) {
		n.Translate = Vector{X: x, Y: y}
	}
}

// WithCells seeds the node with cells. Later cells win on duplicate coordinates.
func WithCells(cells ...Cell) NodeOption {
	return func(n *Node) {
		for _, c := range cells {
			*n = n.SetCell(c.X, c.Y, c.Glyph, c.Color)
		}
	}
}

// NewNode creates a visible, empty node at the origin with a fresh identity.
func NewNode(opts ...NodeOption) Node {
	n := Node{
		ID:      NewID(),
		Visible: true,
		Cells:   []Cell{},
	}
	for _, opt := range opts {
		opt(&n)
	}
	return n
}

func (n Node) cellIndex(x, y int) int {
	return slices.IndexFunc(n.Cells, func(c Cell) bool {
		return c.X == x && c.Y == y
	})
}

// SetCell inserts or replaces the cell at local (x, y).
func (n Node) SetCell(x, y, glyph, color int) Node {
	cell := Cell{X: x, Y: y, Glyph: glyph, Color: color}

	cells := make([]Cell, len(n.Cells), len(n.Cells)+1)
	copy(cells, n.Cells)

	if i := n.cellIndex(x, y); i >= 0 {
		cells[i] = cell
	} else {
		cells = append(cells, cell)
	}

	n.Cells = cells
	return n
}

// ClearCell removes the cell at local (x, y). Absent cells are a no-op.
func (n Node) ClearCell(x, y int) Node {
	i := n.cellIndex(x, y)
	if i < 0 {
		return n
	}
	n.Cells = slices.Delete(slices.Clone(n.Cells), i, i+1)
	return n
}

// Cell returns the cell at local (x, y).
func (n Node) Cell(x, y int) (Cell, bool) {
	i := n.cellIndex(x, y)
	if i < 0 {
		return Cell{}, false
	}
	return n.Cells[i], true
}

// IsEmpty reports whether the node holds no cells.
func (n Node) IsEmpty() bool {
	return len(n.Cells) == 0
}

// Bounds returns the inclusive box around all cells in local coordinates.
// ok is false for an empty node.
func (n Node) Bounds() (b Bounds, ok bool) {
	if n.IsEmpty() {
		return Bounds{}, false
	}

	b = Bounds{X0: n.Cells[0].X, Y0: n.Cells[0].Y, X1: n.Cells[0].X, Y1: n.Cells[0].Y}
	for _, c := range n.Cells[1:] {
		b.X0 = min(b.X0, c.X)
		b.Y0 = min(b.Y0, c.Y)
		b.X1 = max(b.X1, c.X)
		b.Y1 = max(b.Y1, c.Y)
	}
	return b, true
}

// Center returns the center of Bounds, rounded towards negative infinity.
func (n Node) Center() (Vector, bool) {
	b, ok := n.Bounds()
	if !ok {
		return Vector{}, false
	}
	return Vector{
		X: floorHalf(b.X0, b.X1),
		Y: floorHalf(b.Y0, b.Y1),
	}, true
}

// floorHalf computes floor(a + (b-a)/2) for a <= b.
func floorHalf(a, b int) int {
	sum := a + b
	if sum < 0 && sum%2 != 0 {
		return sum/2 - 1
	}
	return sum / 2
}

// SetVisibility returns the node with the given visibility.
func (n Node) SetVisibility(visible bool) Node {
	n.Visible = visible
	return n
}

// SetTranslation returns the node moved to offset (x, y).
func (n Node) SetTranslation(x, y int) Node {
	n.Translate = Vector{X: x, Y: y}
	return n
}

// Rename returns the node with a new display name.
func (n Node) Rename(name string) Node {
	n.Name = name
	return n
}

// ToLocal converts a world coordinate into this node's local space.
func (n Node) ToLocal(x, y int) Vector {
	return Vector{X: x - n.Translate.X, Y: y - n.Translate.Y}
}

// ToWorld converts a local coordinate into world space.
func (n Node) ToWorld(x, y int) Vector {
	return Vector{X: x + n.Translate.X, Y: y + n.Translate.Y}
}

// Equal compares two nodes by content. Cell order is significant.
func (n Node) Equal(o Node) bool {
	return n.ID == o.ID &&
		n.Name == o.Name &&
		n.Visible == o.Visible &&
		n.Translate == o.Translate &&
		slices.Equal(n.Cells, o.Cells)
}
