package domain

// Rect is a marquee selection on the grid. X1 and Y1 are exclusive.
type Rect struct {
	X0 int `json:"x0" yaml:"x0"`
	Y0 int `json:"y0" yaml:"y0"`
	X1 int `json:"x1" yaml:"x1"`
	Y1 int `json:"y1" yaml:"y1"`
}

// RectFromPoints builds a normalized rect spanning two corners.
// A degenerate axis is widened to one cell.
func RectFromPoints(x0, y0, x1, y1 int) Rect {
	minX, maxX := min(x0, x1), max(x0, x1)
	minY, maxY := min(y0, y1), max(y0, y1)

	if minX == maxX {
		maxX++
	}
	if minY == maxY {
		maxY++
	}

	return Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY}
}

// RectFromSize builds a rect from an origin and a size.
func RectFromSize(x, y, w, h int) Rect {
	return RectFromPoints(x, y, x+w, y+h)
}

// Translate moves the rect by (dx, dy).
func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 + dx, Y1: r.Y1 + dy}
}

// Contains reports whether (x, y) lies inside the half-open rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && y >= r.Y0 && x < r.X1 && y < r.Y1
}

// Width returns the horizontal extent in cells.
func (r Rect) Width() int { return r.X1 - r.X0 }

// Height returns the vertical extent in cells.
func (r Rect) Height() int { return r.Y1 - r.Y0 }
