package graph

import (
	"testing"

	"github.com/matzehuels/forcefield/pkg/errors"
)

func TestUnmarshal(t *testing.T) {
	data := []byte(`{
		"nodes": [
			{"id": "a", "label": "Alpha", "color": "#5e81ac", "group": "core"},
			{"id": "b"},
			{"id": "c"}
		],
		"links": [
			{"source": "a", "target": "b"},
			{"source": "b", "target": "c"}
		]
	}`)

	g, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
	if len(g.Links) != 2 {
		t.Errorf("links = %d, want 2", len(g.Links))
	}
	if g.Nodes[0].Label != "Alpha" || g.Nodes[0].Group != "core" {
		t.Errorf("metadata not preserved: %+v", g.Nodes[0])
	}
}

func TestUnmarshalDropsDanglingLinks(t *testing.T) {
	data := []byte(`{
		"nodes": [{"id": "a"}, {"id": "b"}],
		"links": [
			{"source": "a", "target": "b"},
			{"source": "a", "target": "ghost"},
			{"source": "ghost", "target": "b"}
		]
	}`)

	g, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if len(g.Links) != 1 {
		t.Fatalf("links = %d, want 1 (dangling links dropped)", len(g.Links))
	}
	if g.Links[0].Source != "a" || g.Links[0].Target != "b" {
		t.Errorf("surviving link = %+v", g.Links[0])
	}
}

func TestUnmarshalRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`{"nodes": [{"id": "a"}, {"id": "a"}], "links": []}`)

	_, err := Unmarshal(data)
	if err == nil {
		t.Fatal("expected error for duplicate id")
	}
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("error code = %s, want INVALID_GRAPH", errors.GetCode(err))
	}
}

func TestUnmarshalRejectsEmptyID(t *testing.T) {
	data := []byte(`{"nodes": [{"id": ""}], "links": []}`)

	if _, err := Unmarshal(data); err == nil {
		t.Fatal("expected error for empty id")
	}
}

func TestUnmarshalRejectsBadJSON(t *testing.T) {
	if _, err := Unmarshal([]byte(`{nope`)); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestDegrees(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Links: []Link{
			{Source: "a", Target: "b"},
			{Source: "a", Target: "c"},
		},
	}

	deg := g.Degrees()
	if deg["a"] != 2 || deg["b"] != 1 || deg["c"] != 1 {
		t.Errorf("degrees = %v", deg)
	}
	if g.MaxDegree() != 2 {
		t.Errorf("MaxDegree = %d, want 2", g.MaxDegree())
	}
}

func TestMaxDegreeEmptyGraph(t *testing.T) {
	var g Graph
	if g.MaxDegree() != 1 {
		t.Errorf("MaxDegree of empty graph = %d, want 1", g.MaxDegree())
	}
}
