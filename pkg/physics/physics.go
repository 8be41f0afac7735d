// Package physics implements a small force-directed layout simulation.
//
// The simulation owns node positions and advances them one step per Update
// call: pairwise charge repulsion pushes nodes apart, springs along edges pull
// connected nodes together, and velocity damping settles the layout. Anchored
// nodes (pinned by a drag, for example) keep their position but still exert
// forces on their neighbors.
//
// Nodes are addressed by dense integer handles, assigned in insertion order.
// Handles stay valid for the lifetime of the simulation; there is no removal.
// Iteration is read-only via VisitNodes/VisitEdges; mutation goes through the
// indexed setters (SetPosition, SetAnchor).
//
// The simulation is fully deterministic: identical construction and Update
// sequences produce identical positions.
package physics

import "math"

// NodeID is a dense integer handle identifying a node in the simulation.
type NodeID int

// Params tunes the force model.
type Params struct {
	// Charge is the strength of pairwise repulsion.
	Charge float64
	// Spring is the stiffness of edge attraction.
	Spring float64
	// MaxForce caps the magnitude of any single accumulated force.
	MaxForce float64
	// Speed scales how far velocities move nodes per unit time.
	Speed float64
	// Damping is the per-step velocity retention factor in (0, 1].
	Damping float64
}

// DefaultParams returns the force parameters the renderer's layouts are tuned
// against.
func DefaultParams() Params {
	return Params{
		Charge:   150.0,
		Spring:   0.05,
		MaxForce: 100.0,
		Speed:    3000.0,
		Damping:  0.9,
	}
}

type node[T any] struct {
	x, y   float64
	vx, vy float64
	mass   float64
	anchor bool
	data   T
}

type edge struct {
	src, dst NodeID
}

// Graph is a force simulation carrying per-node user data of type T.
type Graph[T any] struct {
	params Params
	nodes  []node[T]
	edges  []edge
}

// New creates an empty simulation with the given parameters.
func New[T any](params Params) *Graph[T] {
	return &Graph[T]{params: params}
}

// AddNode inserts a node at (x, y) and returns its handle.
// Anchored nodes are excluded from integration but still repel others.
func (g *Graph[T]) AddNode(x, y, mass float64, anchor bool, data T) NodeID {
	g.nodes = append(g.nodes, node[T]{x: x, y: y, mass: mass, anchor: anchor, data: data})
	return NodeID(len(g.nodes) - 1)
}

// AddEdge connects two nodes with a spring. Out-of-range handles are ignored.
func (g *Graph[T]) AddEdge(src, dst NodeID) {
	if !g.valid(src) || !g.valid(dst) {
		return
	}
	g.edges = append(g.edges, edge{src: src, dst: dst})
}

// Len returns the number of nodes in the simulation.
func (g *Graph[T]) Len() int { return len(g.nodes) }

// Position returns the current position of a node.
func (g *Graph[T]) Position(id NodeID) (x, y float64) {
	if !g.valid(id) {
		return 0, 0
	}
	return g.nodes[id].x, g.nodes[id].y
}

// SetPosition moves a node directly, zeroing its velocity.
// Used to pin a node under the pointer during a drag.
func (g *Graph[T]) SetPosition(id NodeID, x, y float64) {
	if !g.valid(id) {
		return
	}
	n := &g.nodes[id]
	n.x, n.y = x, y
	n.vx, n.vy = 0, 0
}

// SetAnchor pins or releases a node. Anchored nodes ignore integration.
func (g *Graph[T]) SetAnchor(id NodeID, anchor bool) {
	if !g.valid(id) {
		return
	}
	g.nodes[id].anchor = anchor
}

// Data returns a pointer to the user data of a node, or nil for an invalid
// handle.
func (g *Graph[T]) Data(id NodeID) *T {
	if !g.valid(id) {
		return nil
	}
	return &g.nodes[id].data
}

// VisitNodes calls fn for every node with its handle, position, and user data.
// The callback must not mutate the simulation.
func (g *Graph[T]) VisitNodes(fn func(id NodeID, x, y float64, data *T)) {
	for i := range g.nodes {
		n := &g.nodes[i]
		fn(NodeID(i), n.x, n.y, &n.data)
	}
}

// VisitEdges calls fn for every edge with both endpoint handles.
func (g *Graph[T]) VisitEdges(fn func(src, dst NodeID)) {
	for _, e := range g.edges {
		fn(e.src, e.dst)
	}
}

// Edges returns the edge list as handle pairs, in insertion order.
func (g *Graph[T]) Edges() [][2]NodeID {
	out := make([][2]NodeID, len(g.edges))
	for i, e := range g.edges {
		out[i] = [2]NodeID{e.src, e.dst}
	}
	return out
}

// Update advances the simulation one step of dt seconds.
func (g *Graph[T]) Update(dt float64) {
	n := len(g.nodes)
	if n == 0 {
		return
	}

	fx := make([]float64, n)
	fy := make([]float64, n)

	// Charge repulsion between all pairs.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := g.nodes[i].x - g.nodes[j].x
			dy := g.nodes[i].y - g.nodes[j].y
			distSq := dx*dx + dy*dy
			if distSq < 1e-6 {
				// Coincident nodes: push apart along a fixed axis so the
				// simulation cannot deadlock.
				dx, dy, distSq = 1, 0, 1
			}
			dist := math.Sqrt(distSq)
			f := g.params.Charge * g.nodes[i].mass * g.nodes[j].mass / distSq
			ux, uy := dx/dist, dy/dist
			fx[i] += f * ux
			fy[i] += f * uy
			fx[j] -= f * ux
			fy[j] -= f * uy
		}
	}

	// Spring attraction along edges.
	for _, e := range g.edges {
		a, b := &g.nodes[e.src], &g.nodes[e.dst]
		dx := b.x - a.x
		dy := b.y - a.y
		dist := math.Hypot(dx, dy)
		if dist < 1e-6 {
			continue
		}
		f := g.params.Spring * dist
		ux, uy := dx/dist, dy/dist
		fx[e.src] += f * ux
		fy[e.src] += f * uy
		fx[e.dst] -= f * ux
		fy[e.dst] -= f * uy
	}

	// Integrate with force cap and damping.
	for i := range g.nodes {
		nd := &g.nodes[i]
		if nd.anchor {
			nd.vx, nd.vy = 0, 0
			continue
		}
		f := math.Hypot(fx[i], fy[i])
		if f > g.params.MaxForce {
			s := g.params.MaxForce / f
			fx[i] *= s
			fy[i] *= s
		}
		nd.vx = (nd.vx + fx[i]/nd.mass*dt) * g.params.Damping
		nd.vy = (nd.vy + fy[i]/nd.mass*dt) * g.params.Damping
		nd.x += nd.vx * dt * g.params.Speed / 1000.0
		nd.y += nd.vy * dt * g.params.Speed / 1000.0
	}
}

func (g *Graph[T]) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}
