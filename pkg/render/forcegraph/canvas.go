package forcegraph

// PaintKind discriminates the Paint variants.
type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintLinear
	PaintRadial
)

// Stop is a single gradient color stop.
type Stop struct {
	Offset float64 // 0..1 along the gradient
	Color  Color
}

// Paint describes how a shape is filled or stroked. It is a tagged value:
// Kind selects which fields are meaningful.
type Paint struct {
	Kind  PaintKind
	Color Color // PaintSolid

	// PaintLinear: gradient from (X0,Y0) to (X1,Y1).
	// PaintRadial: gradient from circle (X0,Y0,R0) to circle (X1,Y1,R1).
	X0, Y0, R0 float64
	X1, Y1, R1 float64
	Stops      []Stop
}

// Solid creates a flat color paint.
func Solid(c Color) Paint {
	return Paint{Kind: PaintSolid, Color: c}
}

// Linear creates a linear gradient paint.
func Linear(x0, y0, x1, y1 float64, stops ...Stop) Paint {
	return Paint{Kind: PaintLinear, X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}
}

// Radial creates a radial gradient paint between two circles.
func Radial(x0, y0, r0, x1, y1, r1 float64, stops ...Stop) Paint {
	return Paint{Kind: PaintRadial, X0: x0, Y0: y0, R0: r0, X1: x1, Y1: y1, R1: r1, Stops: stops}
}

// Canvas is the drawing surface a frame renders onto. Coordinates are in the
// surface's current local space, which Translate and Scale modify between
// Save/Restore pairs. Implementations do not need to be safe for concurrent
// use; a frame is drawn from a single goroutine.
//
// All draw operations take their style as arguments instead of mutating
// surface state, so individual render passes stay order-independent in the
// styles they use.
type Canvas interface {
	// Size reports the surface dimensions in device pixels.
	Size() (w, h float64)

	// Save pushes the current transform and dash state, Restore pops it.
	Save()
	Restore()
	Translate(dx, dy float64)
	Scale(sx, sy float64)

	// GlobalAlpha multiplies into every subsequent draw until changed.
	SetGlobalAlpha(a float64)

	// SetDash enables a dash-gap stroke pattern with a phase offset for
	// subsequent stroke operations. ClearDash returns to solid strokes.
	SetDash(dash, gap, offset float64)
	ClearDash()

	FillRect(x, y, w, h float64, p Paint)
	FillCircle(x, y, r float64, p Paint)
	StrokeCircle(x, y, r, width float64, p Paint)
	StrokeLine(x0, y0, x1, y1, width float64, p Paint)
	// StrokeQuad strokes a quadratic bezier from (x0,y0) to (x1,y1) with
	// control point (cx,cy).
	StrokeQuad(x0, y0, cx, cy, x1, y1, width float64, p Paint)
	FillTriangle(x0, y0, x1, y1, x2, y2 float64, p Paint)

	// FillText draws text with its baseline-left anchor at (x, y) using a
	// font of the given pixel size.
	FillText(text string, x, y, size float64, p Paint)
}
