// Package graph defines the input data model for force-directed graphs.
//
// The canonical serialization format is JSON:
//
//	{
//	  "nodes": [{"id": "a", "label": "Node A", "color": "#5e81ac", "group": "core"}],
//	  "links": [{"source": "a", "target": "b"}]
//	}
//
// Node ids must be unique. Links referencing unknown ids are dropped silently
// during normalization rather than failing the whole graph: input data often
// comes from external tools that emit partial edges.
package graph

import (
	"encoding/json"

	"github.com/matzehuels/forcefield/pkg/errors"
)

// Node is a single graph node as supplied by the caller.
type Node struct {
	// ID uniquely identifies this node. Used to reference nodes in links.
	ID string `json:"id"`
	// Label is an optional display label. Labeled nodes are rendered larger.
	Label string `json:"label,omitempty"`
	// Color is an optional CSS color override ("#ff0000" or "rgb(255, 0, 0)").
	// If empty, the color is derived from the cluster table or theme palette.
	Color string `json:"color,omitempty"`
	// Group is an optional cluster name for group-based coloring.
	Group string `json:"group,omitempty"`
}

// Link is a directed edge between two nodes, referenced by id.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Graph is the complete input: nodes plus links.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Unmarshal deserializes JSON bytes into a validated Graph.
// Links with endpoints that don't resolve to a node are dropped.
func Unmarshal(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidGraph, err, "failed to parse graph JSON")
	}
	if err := g.Validate(); err != nil {
		return Graph{}, err
	}
	g.Links = g.resolvedLinks()
	return g, nil
}

// Validate checks structural constraints: non-empty unique node ids.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidGraph, "node with empty id")
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidGraph, "duplicate node id: %s", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	return nil
}

// resolvedLinks returns the links whose endpoints both exist.
func (g Graph) resolvedLinks() []Link {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	out := make([]Link, 0, len(g.Links))
	for _, l := range g.Links {
		if _, ok := ids[l.Source]; !ok {
			continue
		}
		if _, ok := ids[l.Target]; !ok {
			continue
		}
		out = append(out, l)
	}
	return out
}

// Degrees returns the number of links touching each node id.
// Both endpoints of a link count, so a self-link contributes two.
func (g Graph) Degrees() map[string]int {
	counts := make(map[string]int, len(g.Nodes))
	for _, l := range g.Links {
		counts[l.Source]++
		counts[l.Target]++
	}
	return counts
}

// MaxDegree returns the largest value in Degrees, and at least 1 so it is
// always safe to divide by.
func (g Graph) MaxDegree() int {
	maxDeg := 1
	for _, c := range g.Degrees() {
		if c > maxDeg {
			maxDeg = c
		}
	}
	return maxDeg
}

// Marshal serializes the graph back to JSON.
func (g Graph) Marshal() ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to serialize graph")
	}
	return data, nil
}
