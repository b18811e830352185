package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/glyphgrid/pkg/compositor"
	"github.com/aretw0/glyphgrid/pkg/domain"
	"github.com/muesli/termenv"
)

// RenderScene draws the composited scene as a Width x Height block of glyphs.
// Cells outside the canvas are clipped; empty cells are blank.
// With termenv.Ascii no escape sequences are written.
func RenderScene(w io.Writer, doc domain.Document, scene domain.Scene, profile termenv.Profile) error {
	grid := make([][]*domain.Cell, doc.Height)
	for y := range grid {
		grid[y] = make([]*domain.Cell, doc.Width)
	}
	for cell := range compositor.All(scene) {
		if cell.X < 0 || cell.Y < 0 || cell.X >= doc.Width || cell.Y >= doc.Height {
			continue
		}
		if grid[cell.Y][cell.X] == nil {
			c := cell
			grid[cell.Y][cell.X] = &c
		}
	}

	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	background := profile.Color(doc.BackgroundColor)

	var sb strings.Builder
	for _, row := range grid {
		for _, cell := range row {
			sb.WriteString(renderCell(out, doc, cell, background))
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func renderCell(out *termenv.Output, doc domain.Document, cell *domain.Cell, background termenv.Color) string {
	if out.Profile == termenv.Ascii {
		if cell == nil {
			return " "
		}
		g, ok := doc.Glyph(cell.Glyph)
		if !ok || g == "" {
			return " "
		}
		return g
	}

	style := out.String(" ").Background(background)
	if cell != nil {
		if g, ok := doc.Glyph(cell.Glyph); ok && g != "" {
			style = out.String(g).Background(background)
		}
		if c, ok := doc.Color(cell.Color); ok && c != "" {
			style = style.Foreground(out.Color(c))
		}
	}
	return style.String()
}

// SceneTitle is the heading printed above a rendered scene.
func SceneTitle(doc domain.Document, scene domain.Scene) string {
	name := scene.Name
	if name == "" {
		name = scene.ID
	}
	title := doc.Name
	if title == "" {
		title = doc.ID
	}
	return fmt.Sprintf("%s / %s (%dx%d)", title, name, doc.Width, doc.Height)
}
