package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/forcefield/pkg/graph"
)

func TestRenderDegreeTable(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "hub", Label: "Hub", Group: "core"},
			{ID: "leaf"},
		},
		Links: []graph.Link{{Source: "hub", Target: "leaf"}},
	}

	out := renderDegreeTable(g)
	for _, want := range []string{"Hub", "leaf", "core", "Degree"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderDegreeTableCapsRows(t *testing.T) {
	g := graph.Graph{}
	for i := 0; i < inspectTopNodes+5; i++ {
		g.Nodes = append(g.Nodes, graph.Node{ID: string(rune('a' + i))})
	}

	out := renderDegreeTable(g)
	if strings.Count(out, "\n") > inspectTopNodes+5 {
		t.Errorf("table should cap at %d rows:\n%s", inspectTopNodes, out)
	}
}

func TestJoinLimited(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	if got := joinLimited(items, 4); got != "a, b, c, d" {
		t.Errorf("joinLimited() = %q", got)
	}
	if got := joinLimited(items, 2); got != "a, b and 2 more" {
		t.Errorf("joinLimited() = %q", got)
	}
}
