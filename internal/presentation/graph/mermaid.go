// Package graph renders a session history as a Mermaid diagram.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/glyphgrid/pkg/view"
)

// GenerateMermaid produces a left-to-right flowchart of the revisions.
// Each revision links to the next one; the cursor revision is styled as
// current and redoable revisions as future.
// Shapes:
// - Initial revision: ((Circle))
// - Folded revisions (more than one action): [[Subroutine]]
// - Default: [Rectangle]
func GenerateMermaid(revisions []view.Revision) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	var current string
	var future []string
	for i, r := range revisions {
		id := fmt.Sprintf("r%d", r.ID)

		opener, closer := "[", "]"
		switch {
		case r.Action == "":
			opener, closer = "((", "))"
		case r.Actions > 1:
			opener, closer = "[[", "]]"
		}

		label := labelOf(r)
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, label, closer))

		if i > 0 {
			arrow := "-->"
			if r.Future {
				arrow = "-.->"
			}
			sb.WriteString(fmt.Sprintf("    r%d %s %s\n", revisions[i-1].ID, arrow, id))
		}

		if r.Current {
			current = id
		}
		if r.Future {
			future = append(future, id)
		}
	}

	if current == "" && len(future) == 0 {
		return sb.String()
	}

	sb.WriteString("\n    %% Cursor Styles\n")
	sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
	sb.WriteString("    classDef future fill:#eceff1,stroke:#90a4ae,stroke-dasharray:4 2,color:#000;\n")
	if current != "" {
		sb.WriteString(fmt.Sprintf("    class %s current;\n", current))
	}
	if len(future) > 0 {
		sb.WriteString(fmt.Sprintf("    class %s future;\n", strings.Join(future, ",")))
	}
	return sb.String()
}

func labelOf(r view.Revision) string {
	if r.Action == "" {
		return "start"
	}
	label := strings.ReplaceAll(string(r.Action), "\"", "'")
	if r.Actions > 1 {
		label = fmt.Sprintf("%s x%d", label, r.Actions)
	}
	return label
}
