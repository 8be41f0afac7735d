package graph

import (
	"slices"
	"sort"
)

// Components returns the connected components of the graph, treating links
// as undirected. Each component lists node ids in sorted order; components
// are ordered largest first, ties broken by the first id.
func (g Graph) Components() [][]string {
	adjacency := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		adjacency[n.ID] = nil
	}
	for _, l := range g.Links {
		adjacency[l.Source] = append(adjacency[l.Source], l.Target)
		adjacency[l.Target] = append(adjacency[l.Target], l.Source)
	}

	visited := make(map[string]bool, len(g.Nodes))
	var components [][]string

	for _, n := range g.Nodes {
		if visited[n.ID] {
			continue
		}

		var component []string
		queue := []string{n.ID}
		visited[n.ID] = true
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			component = append(component, id)
			for _, next := range adjacency[id] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}

		slices.Sort(component)
		components = append(components, component)
	}

	sort.SliceStable(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	return components
}

// Isolated returns the ids of nodes with no links, in input order.
func (g Graph) Isolated() []string {
	degrees := g.Degrees()
	var out []string
	for _, n := range g.Nodes {
		if degrees[n.ID] == 0 {
			out = append(out, n.ID)
		}
	}
	return out
}

// Groups returns the distinct group names in sorted order, skipping nodes
// without a group.
func (g Graph) Groups() []string {
	seen := make(map[string]struct{})
	for _, n := range g.Nodes {
		if n.Group != "" {
			seen[n.Group] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
