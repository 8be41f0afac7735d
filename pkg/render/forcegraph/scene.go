package forcegraph

import (
	"math"

	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/physics"
)

// initialRingRadius is how far from the viewport center nodes start out
// before the simulation pulls them into shape.
const initialRingRadius = 100.0

// DefaultClusterColors maps well-known group names to colors.
func DefaultClusterColors() map[string]string {
	return map[string]string{
		"modules.home":                 "#1976d2",
		"modules.nixos":                "#7b1fa2",
		"outputs.nixosConfigurations":  "#e65100",
		"outputs.homeConfigurations":   "#2e7d32",
		"outputs.perSystem":            "#757575",
		"hosts.server":                 "#c62828",
		"hosts.vm":                     "#c62828",
		"hosts.workstation":            "#c62828",
		"users.alice":                  "#00838f",
		"flake":                        "#455a64",
		"flake.inputs":                 "#78909c",
	}
}

// NodeInfo is the display metadata attached to each simulation node.
type NodeInfo struct {
	Label string // empty means unlabeled
	Color Color
	// Size is a radius multiplier: 1.0 is normal, larger values mark more
	// important nodes.
	Size float64
}

// Transform is the pan and zoom applied to the whole graph view.
type Transform struct {
	X, Y float64
	// K is the zoom factor (1.0 = 100%), clamped to [0.1, 10].
	K float64
}

// DragState tracks an in-progress node drag.
type DragState struct {
	Active                 bool
	Node                   physics.NodeID
	StartX, StartY         float64
	NodeStartX, NodeStartY float64
}

// PanState tracks an in-progress canvas pan.
type PanState struct {
	Active                 bool
	StartX, StartY         float64
	TransformStartX        float64
	TransformStartY        float64
}

// Scene combines the physics simulation with interaction state, highlight
// animation and visual configuration. Create it once per graph, then drive
// it with pointer events and Step calls from the frame loop.
type Scene struct {
	Graph     *physics.Graph[NodeInfo]
	Transform Transform
	Drag      DragState
	Pan       PanState
	Highlight *HighlightState
	Particles *ParticleField

	Scale ScaleConfig
	Theme Theme

	Width, Height    float64
	AnimationRunning bool
	FlowTime         float64

	edges [][2]physics.NodeID
}

// SceneOption customizes scene construction.
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	theme         Theme
	scale         ScaleConfig
	clusterColors map[string]string
	params        physics.Params
}

// WithTheme selects the visual theme.
func WithTheme(t Theme) SceneOption {
	return func(o *sceneOptions) { o.theme = t }
}

// WithScaleConfig overrides the zoom scaling policy.
func WithScaleConfig(c ScaleConfig) SceneOption {
	return func(o *sceneOptions) { o.scale = c }
}

// WithClusterColors overrides the group-to-color mapping.
func WithClusterColors(colors map[string]string) SceneOption {
	return func(o *sceneOptions) { o.clusterColors = colors }
}

// WithPhysicsParams overrides the simulation parameters.
func WithPhysicsParams(p physics.Params) SceneOption {
	return func(o *sceneOptions) { o.params = p }
}

// NewScene builds a scene from graph data for a width x height viewport.
//
// Nodes start evenly spaced on a ring around the viewport center. Node color
// resolves as explicit color, then group cluster color, then the theme
// palette by node index. Node size grows with connectivity, and labeled
// nodes render larger than unlabeled ones.
func NewScene(data *graph.Graph, width, height float64, opts ...SceneOption) *Scene {
	o := sceneOptions{
		theme:         DefaultTheme(),
		scale:         DefaultScaleConfig(),
		clusterColors: DefaultClusterColors(),
		params:        physics.DefaultParams(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	sim := physics.New[NodeInfo](o.params)
	idToHandle := make(map[string]physics.NodeID, len(data.Nodes))

	degrees := data.Degrees()
	maxDegree := data.MaxDegree()

	for i, n := range data.Nodes {
		color := n.Color
		if color == "" {
			if c, ok := o.clusterColors[n.Group]; ok {
				color = c
			} else {
				color = o.theme.Palette.At(i).Hex()
			}
		}

		angle := float64(i) * 2 * math.Pi / float64(len(data.Nodes))
		x := width/2 + initialRingRadius*math.Cos(angle)
		y := height/2 + initialRingRadius*math.Sin(angle)

		// sqrt softens the connectivity scaling.
		degreeFactor := math.Sqrt(float64(degrees[n.ID]) / float64(maxDegree))
		size := 0.7 + 0.5*degreeFactor
		if n.Label != "" {
			size = 1.4 + 0.6*degreeFactor
		}

		id := sim.AddNode(x, y, 10.0, false, NodeInfo{
			Label: n.Label,
			Color: ParseColor(color),
			Size:  size,
		})
		idToHandle[n.ID] = id
	}

	var edges [][2]physics.NodeID
	for _, l := range data.Links {
		src, okSrc := idToHandle[l.Source]
		tgt, okTgt := idToHandle[l.Target]
		if okSrc && okTgt {
			sim.AddEdge(src, tgt)
			edges = append(edges, [2]physics.NodeID{src, tgt})
		}
	}

	s := &Scene{
		Graph:            sim,
		Transform:        Transform{X: width / 2, Y: height / 2, K: 1.0},
		Highlight:        NewHighlightState(sim.Len()),
		Scale:            o.scale,
		Theme:            o.theme,
		Width:            width,
		Height:           height,
		AnimationRunning: true,
		edges:            edges,
	}
	s.Drag.Node = -1
	if o.theme.Particles.Enabled {
		s.Particles = NewParticleField(o.theme.Particles, width, height)
	}
	return s
}

// Edges returns the simulation edge list.
func (s *Scene) Edges() [][2]physics.NodeID {
	return s.edges
}

// ScreenToWorld converts screen coordinates to graph coordinates under the
// current view transform.
func (s *Scene) ScreenToWorld(sx, sy float64) (float64, float64) {
	return (sx - s.Transform.X) / s.Transform.K, (sy - s.Transform.Y) / s.Transform.K
}

// NodeAt returns the node under a screen position, or -1. The hit radius is
// zoom-compensated and scales with the node's size multiplier; when nodes
// overlap, the one with the highest index wins.
func (s *Scene) NodeAt(sx, sy float64) physics.NodeID {
	gx, gy := s.ScreenToWorld(sx, sy)
	scale := ResolveScale(s.Scale, s.Transform.K)
	found := physics.NodeID(-1)
	s.Graph.VisitNodes(func(id physics.NodeID, x, y float64, info *NodeInfo) {
		dx, dy := x-gx, y-gy
		hit := scale.HitRadius * info.Size
		if math.Sqrt(dx*dx+dy*dy) < hit {
			found = id
		}
	})
	return found
}

// SetHover updates the hover target. Pass -1 to clear.
func (s *Scene) SetHover(node physics.NodeID) {
	s.Highlight.SetHover(node, s.edges)
}

// Step advances one frame: physics, flow time and highlight easing when the
// animation is running, and the particle field always.
func (s *Scene) Step(dt float64) {
	if s.AnimationRunning {
		s.Graph.Update(dt)
		s.FlowTime += dt
		s.Highlight.Tick(dt)
	}
	if s.Particles != nil {
		s.Particles.Update(dt)
	}
}

// Resize updates the viewport bounds.
func (s *Scene) Resize(width, height float64) {
	s.Width = width
	s.Height = height
	if s.Particles != nil {
		s.Particles.Resize(width, height)
	}
}

// PointerDown begins a node drag when a node is under the pointer,
// otherwise a pan.
func (s *Scene) PointerDown(x, y float64) {
	if id := s.NodeAt(x, y); id >= 0 {
		s.Drag.Active = true
		s.Drag.Node = id
		s.Drag.StartX, s.Drag.StartY = x, y
		s.Drag.NodeStartX, s.Drag.NodeStartY = s.Graph.Position(id)
		return
	}
	s.Pan.Active = true
	s.Pan.StartX, s.Pan.StartY = x, y
	s.Pan.TransformStartX = s.Transform.X
	s.Pan.TransformStartY = s.Transform.Y
}

// PointerMove updates hover when idle, moves the dragged node, or pans the
// view. A dragged node becomes an anchor so the simulation stops moving it.
func (s *Scene) PointerMove(x, y float64) {
	if !s.Drag.Active {
		s.SetHover(s.NodeAt(x, y))
	}

	switch {
	case s.Drag.Active && s.Drag.Node >= 0:
		dx := (x - s.Drag.StartX) / s.Transform.K
		dy := (y - s.Drag.StartY) / s.Transform.K
		s.Graph.SetPosition(s.Drag.Node, s.Drag.NodeStartX+dx, s.Drag.NodeStartY+dy)
		s.Graph.SetAnchor(s.Drag.Node, true)
	case s.Pan.Active:
		s.Transform.X = s.Pan.TransformStartX + (x - s.Pan.StartX)
		s.Transform.Y = s.Pan.TransformStartY + (y - s.Pan.StartY)
	}
}

// PointerUp ends any drag or pan. A dragged node stays anchored where it
// was dropped.
func (s *Scene) PointerUp() {
	if s.Drag.Active && s.Drag.Node >= 0 {
		s.Graph.SetAnchor(s.Drag.Node, true)
	}
	s.Drag.Active = false
	s.Drag.Node = -1
	s.Pan.Active = false
}

// PointerLeave cancels interactions and clears the hover.
func (s *Scene) PointerLeave() {
	s.Drag.Active = false
	s.Drag.Node = -1
	s.Pan.Active = false
	s.SetHover(-1)
}

// Wheel zooms about the cursor position. deltaY > 0 zooms out by a factor
// of 0.9, deltaY <= 0 zooms in by 1.1, and the point under the cursor stays
// fixed on screen.
func (s *Scene) Wheel(x, y, deltaY float64) {
	factor := 1.1
	if deltaY > 0 {
		factor = 0.9
	}
	newK := math.Min(math.Max(s.Transform.K*factor, 0.1), 10.0)
	ratio := newK / s.Transform.K
	s.Transform.X = x - (x-s.Transform.X)*ratio
	s.Transform.Y = y - (y-s.Transform.Y)*ratio
	s.Transform.K = newK
}
