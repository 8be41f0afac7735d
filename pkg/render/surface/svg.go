package surface

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/forcefield/pkg/fonts"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// SVG accumulates draw calls into a standalone SVG document. Transforms map
// to nested <g> elements, gradients collect into <defs>, and the global
// alpha folds into element colors.
type SVG struct {
	width, height float64

	defs bytes.Buffer
	body bytes.Buffer

	alpha  float64
	dashOn bool
	dash   float64
	gap    float64
	offset float64

	// groups counts open <g> elements per save level so Restore closes
	// exactly the groups its level opened.
	groups []int
	saved  []svgState

	gradients int
}

type svgState struct {
	alpha  float64
	dashOn bool
	dash   float64
	gap    float64
	offset float64
}

// NewSVG creates an SVG surface of the given pixel dimensions.
func NewSVG(width, height float64) *SVG {
	return &SVG{width: width, height: height, alpha: 1.0, groups: []int{0}}
}

// Bytes serializes the accumulated document. The surface remains usable;
// further draws extend the same document.
func (s *SVG) Bytes() []byte {
	var out bytes.Buffer
	fmt.Fprintf(&out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		s.width, s.height, s.width, s.height)
	if s.defs.Len() > 0 {
		out.WriteString("<defs>\n")
		out.Write(s.defs.Bytes())
		out.WriteString("</defs>\n")
	}
	out.Write(s.body.Bytes())
	// Close any groups still open at serialization time.
	for _, n := range s.groups {
		for i := 0; i < n; i++ {
			out.WriteString("</g>\n")
		}
	}
	out.WriteString("</svg>\n")
	return out.Bytes()
}

func (s *SVG) Size() (float64, float64) { return s.width, s.height }

func (s *SVG) Save() {
	s.saved = append(s.saved, svgState{
		alpha: s.alpha, dashOn: s.dashOn, dash: s.dash, gap: s.gap, offset: s.offset,
	})
	s.groups = append(s.groups, 0)
}

func (s *SVG) Restore() {
	if len(s.saved) == 0 {
		return
	}
	n := s.groups[len(s.groups)-1]
	for i := 0; i < n; i++ {
		s.body.WriteString("</g>\n")
	}
	s.groups = s.groups[:len(s.groups)-1]

	st := s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
	s.alpha, s.dashOn, s.dash, s.gap, s.offset = st.alpha, st.dashOn, st.dash, st.gap, st.offset
}

func (s *SVG) openGroup(transform string) {
	fmt.Fprintf(&s.body, "<g transform=%q>\n", transform)
	s.groups[len(s.groups)-1]++
}

func (s *SVG) Translate(dx, dy float64) {
	s.openGroup(fmt.Sprintf("translate(%g %g)", dx, dy))
}

func (s *SVG) Scale(sx, sy float64) {
	s.openGroup(fmt.Sprintf("scale(%g %g)", sx, sy))
}

func (s *SVG) SetGlobalAlpha(a float64) { s.alpha = a }

func (s *SVG) SetDash(dash, gap, offset float64) {
	s.dashOn = true
	s.dash, s.gap, s.offset = dash, gap, offset
}

func (s *SVG) ClearDash() { s.dashOn = false }

func (s *SVG) FillRect(x, y, w, h float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<rect x="%g" y="%g" width="%g" height="%g" fill=%q/>`+"\n",
		x, y, w, h, s.paintRef(p))
}

func (s *SVG) FillCircle(x, y, r float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<circle cx="%g" cy="%g" r="%g" fill=%q/>`+"\n", x, y, r, s.paintRef(p))
}

func (s *SVG) StrokeCircle(x, y, r, width float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<circle cx="%g" cy="%g" r="%g" fill="none" stroke=%q stroke-width="%g"%s/>`+"\n",
		x, y, r, s.paintRef(p), width, s.dashAttrs())
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<line x1="%g" y1="%g" x2="%g" y2="%g" stroke=%q stroke-width="%g" stroke-linecap="round"%s/>`+"\n",
		x0, y0, x1, y1, s.paintRef(p), width, s.dashAttrs())
}

func (s *SVG) StrokeQuad(x0, y0, cx, cy, x1, y1, width float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<path d="M %g %g Q %g %g %g %g" fill="none" stroke=%q stroke-width="%g" stroke-linecap="round"%s/>`+"\n",
		x0, y0, cx, cy, x1, y1, s.paintRef(p), width, s.dashAttrs())
}

func (s *SVG) FillTriangle(x0, y0, x1, y1, x2, y2 float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<polygon points="%g,%g %g,%g %g,%g" fill=%q/>`+"\n",
		x0, y0, x1, y1, x2, y2, s.paintRef(p))
}

func (s *SVG) FillText(text string, x, y, size float64, p forcegraph.Paint) {
	fmt.Fprintf(&s.body, `<text x="%g" y="%g" font-family=%q font-size="%g" fill=%q>%s</text>`+"\n",
		x, y, fonts.FontFamily, size, s.paintRef(p), escapeText(text))
}

func (s *SVG) dashAttrs() string {
	if !s.dashOn {
		return ""
	}
	return fmt.Sprintf(` stroke-dasharray="%g %g" stroke-dashoffset="%g"`, s.dash, s.gap, s.offset)
}

// paintRef returns the fill/stroke attribute value for a paint: an rgba()
// color for solids, or a url(#...) reference to a gradient registered in
// the defs.
func (s *SVG) paintRef(p forcegraph.Paint) string {
	switch p.Kind {
	case forcegraph.PaintLinear:
		id := fmt.Sprintf("grad%d", s.gradients)
		s.gradients++
		fmt.Fprintf(&s.defs, `<linearGradient id=%q gradientUnits="userSpaceOnUse" x1="%g" y1="%g" x2="%g" y2="%g">`+"\n",
			id, p.X0, p.Y0, p.X1, p.Y1)
		s.writeStops(p.Stops)
		s.defs.WriteString("</linearGradient>\n")
		return "url(#" + id + ")"
	case forcegraph.PaintRadial:
		id := fmt.Sprintf("grad%d", s.gradients)
		s.gradients++
		fmt.Fprintf(&s.defs, `<radialGradient id=%q gradientUnits="userSpaceOnUse" fx="%g" fy="%g" fr="%g" cx="%g" cy="%g" r="%g">`+"\n",
			id, p.X0, p.Y0, p.R0, p.X1, p.Y1, p.R1)
		s.writeStops(p.Stops)
		s.defs.WriteString("</radialGradient>\n")
		return "url(#" + id + ")"
	default:
		return s.cssColor(p.Color)
	}
}

func (s *SVG) writeStops(stops []forcegraph.Stop) {
	for _, st := range stops {
		fmt.Fprintf(&s.defs, `<stop offset="%g" stop-color=%q/>`+"\n", st.Offset, s.cssColor(st.Color))
	}
}

// cssColor formats a color with the global alpha folded in.
func (s *SVG) cssColor(c forcegraph.Color) string {
	return c.WithAlpha(c.A * s.alpha).CSS()
}

func escapeText(t string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(t)
}
