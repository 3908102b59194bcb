package graph_test

import (
	"strings"
	"testing"

	"github.com/serenelab/wellspring/internal/presentation/graph"
	"github.com/serenelab/wellspring/pkg/workflow"
)

func noop(g *workflow.Graph, names ...string) *workflow.Graph {
	for _, n := range names {
		g.AddNode(n, nil)
	}
	return g
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		build    func() *workflow.Graph
		overlay  *graph.Overlay
		contains []string
	}{
		{
			name: "entry node renders as circle",
			build: func() *workflow.Graph {
				return noop(workflow.New("triage"), "analysis", "web_search").Chain("analysis", "web_search")
			},
			contains: []string{
				`analysis(("analysis"))`,
				`web_search["web_search"]`,
				"analysis --> web_search",
			},
		},
		{
			name: "ids are sanitized",
			build: func() *workflow.Graph {
				return noop(workflow.New("g"), "meal-plan.v2")
			},
			contains: []string{`meal_plan_v2(("meal-plan.v2"))`},
		},
		{
			name: "overlay marks visited and current",
			build: func() *workflow.Graph {
				return noop(workflow.New("g"), "a", "b").Chain("a", "b")
			},
			overlay: &graph.Overlay{VisitedNodes: []string{"a", "a"}, CurrentNode: "b"},
			contains: []string{
				"classDef visited",
				"class a visited;",
				"class b current;",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := graph.GenerateMermaid(tt.build(), tt.overlay)
			if !strings.HasPrefix(out, "graph TD\n") {
				t.Fatalf("output must start with graph TD, got %q", out)
			}
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestGenerateMermaid_VisitedDeduplicated(t *testing.T) {
	g := noop(workflow.New("g"), "a")
	out := graph.GenerateMermaid(g, &graph.Overlay{VisitedNodes: []string{"a", "a", "a"}})
	if strings.Count(out, "class a visited;") != 1 {
		t.Errorf("visited class must appear once:\n%s", out)
	}
}
