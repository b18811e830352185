package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// SessionRow is one line of the session listing.
type SessionRow struct {
	ID       string
	Name     string
	Scenes   int
	Cursor   int
	Length   int
	Modified string
}

var headerStyle = lipgloss.NewStyle().Bold(true)

// SessionTable lays out the session listing with rounded borders.
func SessionTable(rows []SessionRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		name := r.Name
		if name == "" {
			name = "—"
		}
		cells[i] = []string{
			r.ID,
			name,
			strconv.Itoa(r.Scenes),
			strconv.Itoa(r.Cursor) + "/" + strconv.Itoa(r.Length-1),
			r.Modified,
		}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("Session", "Document", "Scenes", "Revision", "Modified").
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.String()
}
