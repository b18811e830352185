package domain

import "testing"

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           Rect
	}{
		{"Normalized", 4, 5, 1, 2, Rect{X0: 1, Y0: 2, X1: 4, Y1: 5}},
		{"Single cell", 3, 3, 3, 3, Rect{X0: 3, Y0: 3, X1: 4, Y1: 4}},
		{"Flat row", 0, 2, 5, 2, Rect{X0: 0, Y0: 2, X1: 5, Y1: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectFromPoints(tt.x0, tt.y0, tt.x1, tt.y1); got != tt.want {
				t.Errorf("RectFromPoints() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRect_ContainsAndTranslate(t *testing.T) {
	r := RectFromSize(2, 2, 1, 1)

	if !r.Contains(2, 2) {
		t.Error("expected origin to be inside")
	}
	if r.Contains(3, 3) {
		t.Error("expected far corner to be outside (half-open)")
	}

	moved := r.Translate(-2, 1)
	if moved != (Rect{X0: 0, Y0: 3, X1: 1, Y1: 4}) {
		t.Errorf("unexpected translate result: %+v", moved)
	}
	if moved.Width() != 1 || moved.Height() != 1 {
		t.Errorf("unexpected size %dx%d", moved.Width(), moved.Height())
	}
}
