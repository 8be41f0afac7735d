package forcegraph

import "math"

// =============================================================================
// Scale behaviors
// =============================================================================

// ScaleKind discriminates ScaleBehavior variants.
type ScaleKind int

const (
	// ScaleWorld keeps a constant world-space size, so the element appears
	// larger when zoomed in.
	ScaleWorld ScaleKind = iota
	// ScaleScreen keeps a constant screen-space pixel size regardless of
	// zoom.
	ScaleScreen
	// ScaleClamped scales in world space but clamps the resulting screen
	// size to [MinScreen, MaxScreen].
	ScaleClamped
)

// ScaleBehavior defines how a visual size responds to the zoom level.
type ScaleBehavior struct {
	Kind ScaleKind
	// MinScreen and MaxScreen bound the on-screen pixel size for
	// ScaleClamped. Use math.Inf for an open bound.
	MinScreen float64
	MaxScreen float64
}

// World returns a constant world-space behavior.
func World() ScaleBehavior { return ScaleBehavior{Kind: ScaleWorld} }

// Screen returns a constant screen-space behavior.
func Screen() ScaleBehavior { return ScaleBehavior{Kind: ScaleScreen} }

// Clamped returns a world-space behavior with screen-size bounds.
func Clamped(minScreen, maxScreen float64) ScaleBehavior {
	return ScaleBehavior{Kind: ScaleClamped, MinScreen: minScreen, MaxScreen: maxScreen}
}

// Apply computes the world-space value for a base size at zoom level k. The
// result is used directly in world-space drawing after the view transform.
func (b ScaleBehavior) Apply(base, k float64) float64 {
	switch b.Kind {
	case ScaleScreen:
		return base / k
	case ScaleClamped:
		minWorld := b.MinScreen / k
		maxWorld := b.MaxScreen / k
		return math.Min(math.Max(base, minWorld), maxWorld)
	default:
		return base
	}
}

// AlphaKind discriminates AlphaBehavior variants.
type AlphaKind int

const (
	// AlphaConstant keeps alpha fixed regardless of zoom.
	AlphaConstant AlphaKind = iota
	// AlphaScaleWithZoom multiplies alpha by k, clamped to [0, 1].
	AlphaScaleWithZoom
	// AlphaFade ramps alpha from zero at ZeroK to full at FullK.
	AlphaFade
)

// AlphaBehavior defines how an opacity multiplier responds to the zoom level.
type AlphaBehavior struct {
	Kind  AlphaKind
	ZeroK float64
	FullK float64
}

// ConstantAlpha returns a zoom-independent alpha behavior.
func ConstantAlpha() AlphaBehavior { return AlphaBehavior{Kind: AlphaConstant} }

// ZoomAlpha returns an alpha behavior that scales linearly with zoom.
func ZoomAlpha() AlphaBehavior { return AlphaBehavior{Kind: AlphaScaleWithZoom} }

// FadeAlpha returns an alpha behavior that fades between two zoom thresholds.
func FadeAlpha(zeroK, fullK float64) AlphaBehavior {
	return AlphaBehavior{Kind: AlphaFade, ZeroK: zeroK, FullK: fullK}
}

// Apply computes the alpha multiplier for zoom level k.
func (b AlphaBehavior) Apply(k float64) float64 {
	switch b.Kind {
	case AlphaScaleWithZoom:
		return clamp01(k)
	case AlphaFade:
		if b.ZeroK == b.FullK {
			return 1.0
		}
		return clamp01((k - b.ZeroK) / (b.FullK - b.ZeroK))
	default:
		return 1.0
	}
}

// =============================================================================
// Scale configuration
// =============================================================================

// NodeScaleConfig controls node sizing across zoom levels.
type NodeScaleConfig struct {
	Radius         float64 // base node radius in world units
	RadiusBehavior ScaleBehavior
	HitRadius      float64 // hit detection radius in world units
	HitBehavior    ScaleBehavior
	LabelSize      float64 // label font size in screen pixels
	LabelMinK      float64 // zoom floor for label font scaling
}

// EdgeScaleConfig controls edge sizing and the flow animation.
type EdgeScaleConfig struct {
	LineWidth float64 // base line width in screen pixels
	DashLen   float64 // dash length in world units
	GapLen    float64 // gap length in world units
	FlowSpeed float64 // flow animation speed in world units per second
	// DashAlphaBehavior fades the dash pattern with zoom. When it reaches
	// zero, edges draw as solid lines.
	DashAlphaBehavior AlphaBehavior
}

// ArrowScaleConfig controls direction arrow sizing.
type ArrowScaleConfig struct {
	Size          float64 // base arrow size in world units
	SizeBehavior  ScaleBehavior
	AlphaBehavior AlphaBehavior
	CullAlpha     float64 // minimum alpha worth drawing
}

// GlowScaleConfig controls the hover emphasis geometry.
type GlowScaleConfig struct {
	HoveredRadius  float64 // glow radius multiplier for the hovered node
	NeighborRadius float64 // glow radius multiplier for neighbor nodes
	RingWidth      float64 // hover ring stroke width in screen pixels
	RingOffset     float64 // ring offset from the node edge in screen pixels
}

// ScaleConfig bundles the zoom policy for every graph element.
type ScaleConfig struct {
	Node  NodeScaleConfig
	Edge  EdgeScaleConfig
	Arrow ArrowScaleConfig
	Glow  GlowScaleConfig
}

// DefaultScaleConfig returns the tuned defaults.
func DefaultScaleConfig() ScaleConfig {
	return ScaleConfig{
		Node: NodeScaleConfig{
			Radius:         5.0,
			RadiusBehavior: Clamped(5.0, math.Inf(1)),
			HitRadius:      12.0,
			HitBehavior:    Clamped(5.0, math.Inf(1)),
			LabelSize:      10.0,
			LabelMinK:      0.5,
		},
		Edge: EdgeScaleConfig{
			LineWidth:         1.5,
			DashLen:           8.0,
			GapLen:            4.0,
			FlowSpeed:         12.0,
			DashAlphaBehavior: FadeAlpha(0.4, 0.9),
		},
		Arrow: ArrowScaleConfig{
			Size:          5.0,
			SizeBehavior:  Clamped(0.0, 18.0),
			AlphaBehavior: ZoomAlpha(),
			CullAlpha:     0.05,
		},
		Glow: GlowScaleConfig{
			HoveredRadius:  3.0,
			NeighborRadius: 2.0,
			RingWidth:      1.5,
			RingOffset:     2.0,
		},
	}
}

// =============================================================================
// Resolved values
// =============================================================================

// ScaledValues holds the per-frame resolution of a ScaleConfig at a specific
// zoom level. All sizes are in world space, ready to use after the view
// transform.
type ScaledValues struct {
	K             float64
	NodeRadius    float64
	HitRadius     float64
	LabelFontSize float64
	EdgeLineWidth float64
	DashLen       float64
	GapLen        float64
	DashAlpha     float64 // dash visibility; at 0 edges are solid
	ArrowSize     float64
	ArrowAlpha    float64
	CullArrows    bool
	RingWidth     float64
	RingOffset    float64
}

// ResolveScale computes scaled values from a configuration and zoom level.
// Call once per frame and share across render passes.
func ResolveScale(cfg ScaleConfig, k float64) ScaledValues {
	arrowAlpha := cfg.Arrow.AlphaBehavior.Apply(k)
	return ScaledValues{
		K:             k,
		NodeRadius:    cfg.Node.RadiusBehavior.Apply(cfg.Node.Radius, k),
		HitRadius:     cfg.Node.HitBehavior.Apply(cfg.Node.HitRadius, k),
		LabelFontSize: cfg.Node.LabelSize / math.Max(k, cfg.Node.LabelMinK),
		EdgeLineWidth: cfg.Edge.LineWidth / k,
		DashLen:       cfg.Edge.DashLen,
		GapLen:        cfg.Edge.GapLen,
		DashAlpha:     cfg.Edge.DashAlphaBehavior.Apply(k),
		ArrowSize:     cfg.Arrow.SizeBehavior.Apply(cfg.Arrow.Size, k),
		ArrowAlpha:    arrowAlpha,
		CullArrows:    arrowAlpha < cfg.Arrow.CullAlpha,
		RingWidth:     cfg.Glow.RingWidth / k,
		RingOffset:    cfg.Glow.RingOffset / k,
	}
}

// DashOffset computes the dash phase for the edge flow animation.
func (s ScaledValues) DashOffset(flowTime, flowSpeed float64) float64 {
	return -flowTime * flowSpeed
}
