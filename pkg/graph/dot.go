package graph

import (
	"bytes"
	"fmt"
	"strings"
)

// ToDOT converts the graph to Graphviz DOT format. Links are emitted as
// undirected edges, matching the force simulation which treats every link
// as a symmetric spring. Nodes in the same group share a fillcolor slot so
// Graphviz output mirrors the cluster coloring of the rendered frames.
func (g Graph) ToDOT() string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(dotAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		fmt.Fprintf(&buf, "  %q -- %q;\n", l.Source, l.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotAttrs(n Node) []string {
	label := n.ID
	if n.Label != "" {
		label = n.Label
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Color != "" {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", n.Color), "fontcolor=white")
	}
	if n.Group != "" {
		attrs = append(attrs, fmt.Sprintf("group=%q", n.Group))
	}
	return attrs
}
