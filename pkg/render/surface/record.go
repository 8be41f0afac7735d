package surface

import (
	"fmt"

	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// Recorder captures the draw call sequence of a frame as readable strings.
// It backs the renderer tests and the render command's dry-run mode, where
// the sequence itself is the output of interest.
type Recorder struct {
	width, height float64
	Ops           []string
}

// NewRecorder creates a recording surface of the given dimensions.
func NewRecorder(width, height float64) *Recorder {
	return &Recorder{width: width, height: height}
}

// Reset discards the recorded operations.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) record(format string, args ...any) {
	r.Ops = append(r.Ops, fmt.Sprintf(format, args...))
}

func (r *Recorder) Size() (float64, float64) { return r.width, r.height }

func (r *Recorder) Save()    { r.record("save") }
func (r *Recorder) Restore() { r.record("restore") }

func (r *Recorder) Translate(dx, dy float64) { r.record("translate %.3f %.3f", dx, dy) }
func (r *Recorder) Scale(sx, sy float64)     { r.record("scale %.3f %.3f", sx, sy) }

func (r *Recorder) SetGlobalAlpha(a float64) { r.record("global-alpha %.3f", a) }

func (r *Recorder) SetDash(dash, gap, offset float64) {
	r.record("dash %.3f %.3f offset %.3f", dash, gap, offset)
}

func (r *Recorder) ClearDash() { r.record("dash-clear") }

func (r *Recorder) FillRect(x, y, w, h float64, p forcegraph.Paint) {
	r.record("fill-rect %.3f %.3f %.3f %.3f %s", x, y, w, h, describePaint(p))
}

func (r *Recorder) FillCircle(x, y, radius float64, p forcegraph.Paint) {
	r.record("fill-circle %.3f %.3f r=%.3f %s", x, y, radius, describePaint(p))
}

func (r *Recorder) StrokeCircle(x, y, radius, width float64, p forcegraph.Paint) {
	r.record("stroke-circle %.3f %.3f r=%.3f w=%.3f %s", x, y, radius, width, describePaint(p))
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, p forcegraph.Paint) {
	r.record("stroke-line %.3f %.3f %.3f %.3f w=%.3f %s", x0, y0, x1, y1, width, describePaint(p))
}

func (r *Recorder) StrokeQuad(x0, y0, cx, cy, x1, y1, width float64, p forcegraph.Paint) {
	r.record("stroke-quad %.3f %.3f %.3f %.3f %.3f %.3f w=%.3f %s",
		x0, y0, cx, cy, x1, y1, width, describePaint(p))
}

func (r *Recorder) FillTriangle(x0, y0, x1, y1, x2, y2 float64, p forcegraph.Paint) {
	r.record("fill-triangle %.3f %.3f %.3f %.3f %.3f %.3f %s",
		x0, y0, x1, y1, x2, y2, describePaint(p))
}

func (r *Recorder) FillText(text string, x, y, size float64, p forcegraph.Paint) {
	r.record("fill-text %q %.3f %.3f size=%.3f %s", text, x, y, size, describePaint(p))
}

func describePaint(p forcegraph.Paint) string {
	switch p.Kind {
	case forcegraph.PaintLinear:
		return fmt.Sprintf("linear(%d stops)", len(p.Stops))
	case forcegraph.PaintRadial:
		return fmt.Sprintf("radial(%d stops)", len(p.Stops))
	default:
		return p.Color.CSS()
	}
}
