package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/glyphgrid/pkg/view"
)

// HistoryMarkdown formats revisions as a markdown table. The current revision
// is marked with "▶" and redoable ones with "·".
func HistoryMarkdown(revisions []view.Revision) string {
	var sb strings.Builder
	sb.WriteString("| | # | Time | Action | Folded |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, r := range revisions {
		marker := ""
		switch {
		case r.Current:
			marker = "▶"
		case r.Future:
			marker = "·"
		}
		action := string(r.Action)
		if action == "" {
			action = "(initial)"
		}
		fmt.Fprintf(&sb, "| %s | %d | %s | `%s` | %d |\n",
			marker, r.ID, r.Timestamp.Format("15:04:05.000"), action, r.Actions)
	}
	return sb.String()
}
