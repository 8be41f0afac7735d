package surface

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/fonts"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// rasterState is the part of the surface state not covered by the gg
// context's own stack.
type rasterState struct {
	alpha  float64
	dashOn bool
	dash   float64
	gap    float64
	offset float64
}

// Raster renders frames into an in-memory RGBA image using fogleman/gg.
type Raster struct {
	dc    *gg.Context
	state rasterState
	stack []rasterState

	faces map[float64]font.Face
}

// NewRaster creates a raster surface of the given pixel dimensions. The
// bundled Go Regular font handles label text.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "surface dimensions must be positive")
	}
	if _, err := fonts.Regular(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parsing label font")
	}
	return &Raster{
		dc:    gg.NewContext(width, height),
		state: rasterState{alpha: 1.0},
		faces: make(map[float64]font.Face),
	}, nil
}

// Image returns the rendered image. The surface keeps ownership; render the
// next frame only after the caller is done with it.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the current image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if err := r.dc.EncodePNG(w); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encoding png")
	}
	return nil
}

func (r *Raster) Size() (float64, float64) {
	return float64(r.dc.Width()), float64(r.dc.Height())
}

func (r *Raster) Save() {
	r.dc.Push()
	r.stack = append(r.stack, r.state)
}

func (r *Raster) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.dc.Pop()
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Raster) Translate(dx, dy float64) { r.dc.Translate(dx, dy) }
func (r *Raster) Scale(sx, sy float64)     { r.dc.Scale(sx, sy) }

func (r *Raster) SetGlobalAlpha(a float64) { r.state.alpha = a }

func (r *Raster) SetDash(dash, gap, offset float64) {
	r.state.dashOn = true
	r.state.dash, r.state.gap, r.state.offset = dash, gap, offset
}

func (r *Raster) ClearDash() { r.state.dashOn = false }

func (r *Raster) FillRect(x, y, w, h float64, p forcegraph.Paint) {
	r.dc.DrawRectangle(x, y, w, h)
	r.fill(p)
}

func (r *Raster) FillCircle(x, y, radius float64, p forcegraph.Paint) {
	r.dc.DrawCircle(x, y, radius)
	r.fill(p)
}

func (r *Raster) StrokeCircle(x, y, radius, width float64, p forcegraph.Paint) {
	r.dc.DrawCircle(x, y, radius)
	r.stroke(width, p)
}

func (r *Raster) StrokeLine(x0, y0, x1, y1, width float64, p forcegraph.Paint) {
	r.dc.MoveTo(x0, y0)
	r.dc.LineTo(x1, y1)
	r.stroke(width, p)
}

func (r *Raster) StrokeQuad(x0, y0, cx, cy, x1, y1, width float64, p forcegraph.Paint) {
	r.dc.MoveTo(x0, y0)
	r.dc.QuadraticTo(cx, cy, x1, y1)
	r.stroke(width, p)
}

func (r *Raster) FillTriangle(x0, y0, x1, y1, x2, y2 float64, p forcegraph.Paint) {
	r.dc.MoveTo(x0, y0)
	r.dc.LineTo(x1, y1)
	r.dc.LineTo(x2, y2)
	r.dc.ClosePath()
	r.fill(p)
}

func (r *Raster) FillText(text string, x, y, size float64, p forcegraph.Paint) {
	face, ok := r.faces[size]
	if !ok {
		var err error
		face, err = fonts.NewFace(size)
		if err != nil {
			return
		}
		r.faces[size] = face
	}
	r.dc.SetFontFace(face)
	r.dc.SetColor(r.nrgba(paintColor(p)))
	r.dc.DrawString(text, x, y)
}

func (r *Raster) fill(p forcegraph.Paint) {
	r.setPaint(p, false)
	r.dc.Fill()
}

func (r *Raster) stroke(width float64, p forcegraph.Paint) {
	r.setPaint(p, true)
	r.dc.SetLineWidth(width)
	if r.state.dashOn {
		r.dc.SetDash(r.state.dash, r.state.gap)
		r.dc.SetDashOffset(r.state.offset)
	} else {
		r.dc.SetDash()
	}
	r.dc.Stroke()
	r.dc.SetDash()
}

func (r *Raster) setPaint(p forcegraph.Paint, stroke bool) {
	switch p.Kind {
	case forcegraph.PaintLinear:
		grad := gg.NewLinearGradient(p.X0, p.Y0, p.X1, p.Y1)
		for _, s := range p.Stops {
			grad.AddColorStop(s.Offset, r.nrgba(s.Color))
		}
		if stroke {
			r.dc.SetStrokeStyle(grad)
		} else {
			r.dc.SetFillStyle(grad)
		}
	case forcegraph.PaintRadial:
		grad := gg.NewRadialGradient(p.X0, p.Y0, p.R0, p.X1, p.Y1, p.R1)
		for _, s := range p.Stops {
			grad.AddColorStop(s.Offset, r.nrgba(s.Color))
		}
		if stroke {
			r.dc.SetStrokeStyle(grad)
		} else {
			r.dc.SetFillStyle(grad)
		}
	default:
		r.dc.SetColor(r.nrgba(p.Color))
	}
}

// nrgba converts a paint color to image/color, folding in the global alpha.
func (r *Raster) nrgba(c forcegraph.Color) color.NRGBA {
	a := c.A * r.state.alpha
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(a*255 + 0.5)}
}

// paintColor extracts a representative solid color from a paint.
func paintColor(p forcegraph.Paint) forcegraph.Color {
	if p.Kind == forcegraph.PaintSolid || len(p.Stops) == 0 {
		return p.Color
	}
	return p.Stops[0].Color
}
