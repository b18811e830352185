package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/glyphgrid/internal/presentation/graph"
	"github.com/aretw0/glyphgrid/pkg/view"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name        string
		revisions   []view.Revision
		contains    []string
		notContains []string
	}{
		{
			name:      "Initial Revision Shape",
			revisions: []view.Revision{{ID: 0, Current: true}},
			contains: []string{
				"graph LR",
				"r0((\"start\"))",
				"class r0 current;",
			},
			notContains: []string{"-->", "future;"},
		},
		{
			name: "Folded Revision Shape",
			revisions: []view.Revision{
				{ID: 0},
				{ID: 1, Action: "node/set-cell", Actions: 4, Current: true},
			},
			contains: []string{
				"r1[[\"node/set-cell x4\"]]",
				"r0 --> r1",
			},
		},
		{
			name: "Future Revisions",
			revisions: []view.Revision{
				{ID: 0},
				{ID: 1, Action: "scene/add", Actions: 1, Current: true},
				{ID: 2, Action: "node/add", Actions: 1, Future: true},
				{ID: 3, Action: "node/rename", Actions: 1, Future: true},
			},
			contains: []string{
				"r1[\"scene/add\"]",
				"r1 -.-> r2",
				"r2 -.-> r3",
				"class r1 current;",
				"class r2,r3 future;",
			},
		},
		{
			name:        "Empty",
			revisions:   nil,
			contains:    []string{"graph LR"},
			notContains: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.revisions)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.notContains {
				assert.False(t, strings.Contains(got, unwanted), "unexpected %q in:\n%s", unwanted, got)
			}
		})
	}
}
