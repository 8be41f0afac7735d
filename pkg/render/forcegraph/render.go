package forcegraph

import (
	"math"

	"github.com/matzehuels/forcefield/pkg/physics"
)

// smoothStep eases a [0, 1] value so transitions avoid abrupt visual jumps.
func smoothStep(t float64) float64 {
	return t * t * (3.0 - 2.0*t)
}

// RenderFrame draws the complete scene onto a canvas.
//
// Rendering uses multiple passes for correct z-ordering: background and
// particles in screen space, then edge glows, edge lines, node glows,
// non-highlighted nodes and highlighted nodes in world space, and finally
// the vignette back in screen space. The pass order is fixed, so the same
// scene state always produces the same draw sequence.
func RenderFrame(s *Scene, c Canvas) {
	scale := ResolveScale(s.Scale, s.Transform.K)

	drawBackground(s, c)
	if s.Particles != nil {
		drawParticles(s, c)
	}

	c.Save()
	c.Translate(s.Transform.X, s.Transform.Y)
	c.Scale(s.Transform.K, s.Transform.K)

	drawEdges(s, c, scale)
	drawNodes(s, c, scale)

	c.Restore()

	if s.Theme.Background.Vignette > 0 {
		drawVignette(s, c)
	}
}

func drawBackground(s *Scene, c Canvas) {
	bg := s.Theme.Background
	if bg.UseGradient {
		cx, cy := s.Width/2, s.Height/2
		r := math.Max(s.Width, s.Height) * 0.8
		c.FillRect(0, 0, s.Width, s.Height, Radial(cx, cy, 0, cx, cy, r,
			Stop{Offset: 0, Color: bg.ColorSecondary},
			Stop{Offset: 1, Color: bg.Color},
		))
		return
	}
	c.FillRect(0, 0, s.Width, s.Height, Solid(bg.Color))
}

func drawVignette(s *Scene, c Canvas) {
	cx, cy := s.Width/2, s.Height/2
	r0 := math.Min(s.Width, s.Height) * 0.3
	r1 := math.Max(s.Width, s.Height) * 0.7
	c.FillRect(0, 0, s.Width, s.Height, Radial(cx, cy, r0, cx, cy, r1,
		Stop{Offset: 0, Color: RGBA(0, 0, 0, 0)},
		Stop{Offset: 1, Color: RGBA(0, 0, 0, s.Theme.Background.Vignette)},
	))
}

func drawParticles(s *Scene, c Canvas) {
	color := s.Theme.Particles.Color
	for _, p := range s.Particles.Particles {
		alpha := s.Particles.TwinkleAlpha(p, s.FlowTime)
		c.FillCircle(p.X, p.Y, p.Size, Solid(color.WithAlpha(alpha)))
	}
}

// =============================================================================
// Edges
// =============================================================================

func drawEdges(s *Scene, c Canvas, scale ScaledValues) {
	dashOffset := scale.DashOffset(s.FlowTime, s.Scale.Edge.FlowSpeed)

	if s.Theme.Edge.GlowIntensity > 0 {
		s.Graph.VisitEdges(func(a, b physics.NodeID) {
			drawEdgeGlow(s, c, scale, a, b)
		})
	}

	s.Graph.VisitEdges(func(a, b physics.NodeID) {
		drawEdgeMain(s, c, scale, a, b, dashOffset)
	})

	c.ClearDash()
}

func drawEdgeGlow(s *Scene, c Canvas, scale ScaledValues, a, b physics.NodeID) {
	x1, y1 := s.Graph.Position(a)
	x2, y2 := s.Graph.Position(b)
	dx, dy := x2-x1, y2-y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 0.001 {
		return
	}

	edgeT := s.Highlight.EdgeIntensity(a, b)
	maxT := s.Highlight.MaxIntensity()

	var glowAlpha float64
	switch {
	case edgeT > 0.01:
		glowAlpha = s.Theme.Edge.GlowIntensity * (0.6 + 0.4*smoothStep(edgeT))
	case maxT > 0.01:
		glowAlpha = s.Theme.Edge.GlowIntensity * (0.6 - 0.4*smoothStep(maxT))
	default:
		glowAlpha = s.Theme.Edge.GlowIntensity * 0.6
	}
	if glowAlpha < 0.01 {
		return
	}

	glow := s.Theme.Edge.GlowColor
	paint := Solid(glow.WithAlpha(glowAlpha * glow.A))
	width := scale.EdgeLineWidth * 4.0
	ux, uy := dx/dist, dy/dist

	c.ClearDash()
	if s.Theme.Edge.Curved && dist > scale.NodeRadius*4.0 {
		drawCurvedEdge(c, x1, y1, x2, y2, ux, uy, scale.NodeRadius,
			s.Theme.Edge.CurveTension, width, paint)
		return
	}
	c.StrokeLine(
		x1+ux*scale.NodeRadius, y1+uy*scale.NodeRadius,
		x2-ux*scale.NodeRadius, y2-uy*scale.NodeRadius,
		width, paint)
}

func drawEdgeMain(s *Scene, c Canvas, scale ScaledValues, a, b physics.NodeID, dashOffset float64) {
	x1, y1 := s.Graph.Position(a)
	x2, y2 := s.Graph.Position(b)
	dx, dy := x2-x1, y2-y1
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 0.001 {
		return
	}

	edgeT := smoothStep(s.Highlight.EdgeIntensity(a, b))
	maxT := smoothStep(s.Highlight.MaxIntensity())

	var edgeAlpha, baseArrowAlpha, baseWidth float64
	switch {
	case edgeT > 0.01:
		edgeAlpha = 0.7 + 0.3*edgeT
		baseArrowAlpha = 0.9 + 0.1*edgeT
		baseWidth = scale.EdgeLineWidth * (1.0 + 0.4*edgeT)
	case maxT > 0.01:
		edgeAlpha = 0.7 - 0.5*maxT
		baseArrowAlpha = 0.9 - 0.6*maxT
		baseWidth = scale.EdgeLineWidth * (1.0 - 0.3*maxT)
	default:
		edgeAlpha, baseArrowAlpha, baseWidth = 0.7, 0.9, scale.EdgeLineWidth
	}

	// Widen slightly as the dash pattern fades to solid so edges keep the
	// same visual weight.
	width := baseWidth * (1.0 + 0.3*(1.0-scale.DashAlpha))
	arrowAlpha := baseArrowAlpha * scale.ArrowAlpha

	edgeColor := s.Theme.Edge.Color
	paint := Solid(edgeColor.WithAlpha(edgeAlpha * edgeColor.A))

	effectiveGap := scale.GapLen * scale.DashAlpha
	if effectiveGap > 0.1 {
		c.SetDash(scale.DashLen, effectiveGap, dashOffset)
	} else {
		c.ClearDash()
	}

	ux, uy := dx/dist, dy/dist

	if s.Theme.Edge.Curved && dist > scale.NodeRadius*4.0 {
		drawCurvedEdge(c, x1, y1, x2, y2, ux, uy, scale.NodeRadius+scale.ArrowSize,
			s.Theme.Edge.CurveTension, width, paint)
	} else {
		c.StrokeLine(
			x1+ux*scale.NodeRadius, y1+uy*scale.NodeRadius,
			x2-ux*(scale.NodeRadius+scale.ArrowSize), y2-uy*(scale.NodeRadius+scale.ArrowSize),
			width, paint)
	}

	if !scale.CullArrows && arrowAlpha > 0 {
		c.ClearDash()
		fill := Solid(edgeColor.WithAlpha(arrowAlpha * edgeColor.A))

		tipX, tipY := x2-ux*scale.NodeRadius, y2-uy*scale.NodeRadius
		backX, backY := tipX-ux*scale.ArrowSize, tipY-uy*scale.ArrowSize
		px, py := -uy*scale.ArrowSize*0.5, ux*scale.ArrowSize*0.5

		c.FillTriangle(tipX, tipY, backX+px, backY+py, backX-px, backY-py, fill)
	}
}

func drawCurvedEdge(c Canvas, x1, y1, x2, y2, ux, uy, offset, tension, width float64, p Paint) {
	dx, dy := x2-x1, y2-y1
	dist := math.Sqrt(dx*dx + dy*dy)

	curveOffset := dist * tension * 0.3
	px, py := -uy*curveOffset, ux*curveOffset

	startX, startY := x1+ux*offset, y1+uy*offset
	endX, endY := x2-ux*offset, y2-uy*offset
	midX, midY := (x1+x2)/2+px, (y1+y2)/2+py

	c.StrokeQuad(startX, startY, midX, midY, endX, endY, width, p)
}

// =============================================================================
// Nodes
// =============================================================================

func drawNodes(s *Scene, c Canvas, scale ScaledValues) {
	maxT := smoothStep(s.Highlight.MaxIntensity())
	hasHighlight := maxT > 0.01

	pulse := 0.0
	if s.Theme.Node.PulseIntensity > 0 {
		pulse = math.Sin(s.FlowTime*s.Theme.Node.PulseSpeed) * s.Theme.Node.PulseIntensity
	}

	// Pass 1: node glows.
	if s.Theme.Node.GlowIntensity > 0 {
		s.Graph.VisitNodes(func(id physics.NodeID, x, y float64, info *NodeInfo) {
			nodeT := smoothStep(s.Highlight.NodeIntensity(id))
			hoverT := smoothStep(s.Highlight.RingIntensity(id))

			var glowMult float64
			switch {
			case nodeT > 0.001:
				neighborGlow := 1.0 + 0.3*nodeT
				hoveredGlow := 1.5 + 0.5*nodeT
				glowMult = neighborGlow + (hoveredGlow-neighborGlow)*hoverT
			case hasHighlight:
				glowMult = 1.0 - 0.7*maxT
			default:
				glowMult = 1.0
			}
			drawNodeGlow(s, c, scale, x, y, info, glowMult, pulse)
		})
	}

	// Pass 2: non-highlighted nodes.
	s.Graph.VisitNodes(func(id physics.NodeID, x, y float64, info *NodeInfo) {
		if s.Highlight.NodeIntensity(id) > 0.001 {
			return
		}
		alpha, radiusMult := 1.0, 1.0
		if hasHighlight {
			alpha = 1.0 - 0.7*maxT
			radiusMult = 1.0 - 0.15*maxT
		}
		drawNode(s, c, scale, x, y, info, alpha, radiusMult, pulse)
	})

	// Pass 3: highlighted and transitioning nodes on top.
	s.Graph.VisitNodes(func(id physics.NodeID, x, y float64, info *NodeInfo) {
		nodeT := s.Highlight.NodeIntensity(id)
		if nodeT <= 0.001 {
			return
		}

		easedT := smoothStep(nodeT)
		hoverT := smoothStep(s.Highlight.RingIntensity(id))

		dimAlpha, dimRadius := 1.0, 1.0
		if hasHighlight {
			dimAlpha = 1.0 - 0.7*maxT
			dimRadius = 1.0 - 0.15*maxT
		}

		neighborRadius := 1.0 + 0.25*easedT
		hoveredRadius := 1.0 + 0.4*easedT
		highlightRadius := neighborRadius + (hoveredRadius-neighborRadius)*hoverT

		alpha := dimAlpha + (1.0-dimAlpha)*easedT
		radiusMult := dimRadius + (highlightRadius-dimRadius)*easedT

		drawNode(s, c, scale, x, y, info, alpha, radiusMult, pulse)

		radius := scale.NodeRadius * radiusMult * info.Size * (1.0 + pulse)
		if hoverT > 0.01 {
			c.StrokeCircle(x, y, radius+scale.RingOffset, scale.RingWidth,
				Solid(RGBA(255, 255, 255, 0.8*hoverT)))
			c.StrokeCircle(x, y, radius+scale.RingOffset*2.5, scale.RingWidth*0.5,
				Solid(RGBA(255, 255, 255, 0.3*hoverT)))
		}

		if info.Label != "" {
			c.FillText(info.Label, x+radius+4.0, y+3.0, scale.LabelFontSize,
				Solid(RGBA(255, 255, 255, 0.95*alpha)))
		}
	})
}

func drawNodeGlow(s *Scene, c Canvas, scale ScaledValues, x, y float64, info *NodeInfo, intensityMult, pulse float64) {
	radius := scale.NodeRadius * info.Size * (1.0 + pulse)
	glowRadius := radius * 3.0 * intensityMult
	alpha := s.Theme.Node.GlowIntensity * intensityMult * 0.4
	if alpha < 0.01 {
		return
	}

	glowColor := info.Color.WithAlpha(alpha * s.Theme.Node.GlowSaturation)
	whiteGlow := RGBA(255, 255, 255, alpha*0.3)

	c.FillCircle(x, y, glowRadius, Radial(x, y, radius*0.5, x, y, glowRadius,
		Stop{Offset: 0, Color: whiteGlow.Lerp(glowColor, 0.5)},
		Stop{Offset: 0.4, Color: glowColor.WithAlpha(alpha * 0.5)},
		Stop{Offset: 1, Color: RGBA(0, 0, 0, 0)},
	))
}

func drawNode(s *Scene, c Canvas, scale ScaledValues, x, y float64, info *NodeInfo, alpha, radiusMult, pulse float64) {
	radius := scale.NodeRadius * radiusMult * info.Size * (1.0 + pulse)

	c.SetGlobalAlpha(alpha)

	if s.Theme.Node.UseGradient {
		base := info.Color
		highlight := base.Lighten(0.4)
		shadow := base.Darken(0.2)
		c.FillCircle(x, y, radius, Radial(x-radius*0.3, y-radius*0.3, 0, x, y, radius,
			Stop{Offset: 0, Color: highlight},
			Stop{Offset: 0.7, Color: base},
			Stop{Offset: 1, Color: shadow},
		))
	} else {
		c.FillCircle(x, y, radius, Solid(info.Color))
	}

	if s.Theme.Node.BorderWidth > 0 {
		c.StrokeCircle(x, y, radius, s.Theme.Node.BorderWidth/scale.K,
			Solid(s.Theme.Node.BorderColor))
	}

	c.SetGlobalAlpha(1.0)

	// Dimmed labels disappear; highlighted ones are drawn again on top in
	// the final pass.
	if info.Label != "" && alpha > 0.5 {
		c.SetGlobalAlpha(alpha * 0.8)
		c.FillText(info.Label, x+radius+4.0, y+3.0, scale.LabelFontSize,
			Solid(RGBA(255, 255, 255, 0.85)))
		c.SetGlobalAlpha(1.0)
	}
}
