package forcegraph

import (
	"math"
	"testing"
)

func TestScaleBehaviorWorld(t *testing.T) {
	b := World()
	for _, k := range []float64{0.1, 0.5, 1.0, 4.0} {
		if got := b.Apply(5.0, k); got != 5.0 {
			t.Errorf("World at k=%v: got %v, want 5", k, got)
		}
	}
}

func TestScaleBehaviorScreen(t *testing.T) {
	b := Screen()
	if got := b.Apply(10.0, 2.0); got != 5.0 {
		t.Errorf("Screen at k=2: got %v, want 5", got)
	}
	if got := b.Apply(10.0, 0.5); got != 20.0 {
		t.Errorf("Screen at k=0.5: got %v, want 20", got)
	}
}

func TestScaleBehaviorClamped(t *testing.T) {
	b := Clamped(5.0, 20.0)

	// Within bounds the base value passes through.
	if got := b.Apply(10.0, 1.0); got != 10.0 {
		t.Errorf("in-bounds: got %v, want 10", got)
	}
	// Zoomed far out, screen size would drop below the floor: 5px at k=0.25
	// means 20 world units.
	if got := b.Apply(10.0, 0.25); got != 20.0 {
		t.Errorf("min clamp: got %v, want 20", got)
	}
	// Zoomed far in, screen size hits the ceiling: 20px at k=10 means 2
	// world units.
	if got := b.Apply(10.0, 10.0); got != 2.0 {
		t.Errorf("max clamp: got %v, want 2", got)
	}
}

func TestScaleBehaviorClampedOpenBound(t *testing.T) {
	b := Clamped(5.0, math.Inf(1))
	if got := b.Apply(5.0, 100.0); got != 5.0 {
		t.Errorf("open upper bound: got %v, want 5", got)
	}
}

func TestAlphaBehaviors(t *testing.T) {
	if got := ConstantAlpha().Apply(0.2); got != 1.0 {
		t.Errorf("Constant: got %v, want 1", got)
	}
	if got := ZoomAlpha().Apply(0.3); got != 0.3 {
		t.Errorf("ZoomAlpha at 0.3: got %v", got)
	}
	if got := ZoomAlpha().Apply(2.0); got != 1.0 {
		t.Errorf("ZoomAlpha clamps at 1: got %v", got)
	}
}

func TestFadeAlpha(t *testing.T) {
	b := FadeAlpha(0.4, 0.9)
	if got := b.Apply(0.3); got != 0.0 {
		t.Errorf("below zeroK: got %v, want 0", got)
	}
	if got := b.Apply(1.2); got != 1.0 {
		t.Errorf("above fullK: got %v, want 1", got)
	}
	mid := b.Apply(0.65)
	if math.Abs(mid-0.5) > 1e-9 {
		t.Errorf("midpoint: got %v, want 0.5", mid)
	}
}

func TestFadeAlphaDegenerate(t *testing.T) {
	// Equal thresholds would divide by zero; the behavior reports fully
	// visible instead.
	b := FadeAlpha(0.5, 0.5)
	if got := b.Apply(0.5); got != 1.0 {
		t.Errorf("degenerate fade: got %v, want 1", got)
	}
}

func TestResolveScaleIdentityZoom(t *testing.T) {
	s := ResolveScale(DefaultScaleConfig(), 1.0)
	if s.NodeRadius != 5.0 {
		t.Errorf("NodeRadius = %v, want 5", s.NodeRadius)
	}
	if s.HitRadius != 12.0 {
		t.Errorf("HitRadius = %v, want 12", s.HitRadius)
	}
	if s.EdgeLineWidth != 1.5 {
		t.Errorf("EdgeLineWidth = %v, want 1.5", s.EdgeLineWidth)
	}
	if s.LabelFontSize != 10.0 {
		t.Errorf("LabelFontSize = %v, want 10", s.LabelFontSize)
	}
	if s.CullArrows {
		t.Error("arrows culled at k=1")
	}
}

func TestResolveScaleZoomedOut(t *testing.T) {
	s := ResolveScale(DefaultScaleConfig(), 0.1)

	// Node radius holds 5 screen pixels: 50 world units at k=0.1.
	if s.NodeRadius != 50.0 {
		t.Errorf("NodeRadius = %v, want 50", s.NodeRadius)
	}
	// Dash pattern fully faded below the fade window.
	if s.DashAlpha != 0.0 {
		t.Errorf("DashAlpha = %v, want 0", s.DashAlpha)
	}
	// Arrow alpha 0.1 is above the 0.05 cull threshold.
	if s.CullArrows {
		t.Error("arrows culled at k=0.1")
	}
	if got := ResolveScale(DefaultScaleConfig(), 0.04); !got.CullArrows {
		t.Error("arrows not culled at k=0.04")
	}
}

func TestResolveScaleLabelFloor(t *testing.T) {
	// Below LabelMinK the divisor freezes, so labels stop growing.
	a := ResolveScale(DefaultScaleConfig(), 0.5)
	b := ResolveScale(DefaultScaleConfig(), 0.2)
	if a.LabelFontSize != b.LabelFontSize {
		t.Errorf("label size changed below floor: %v vs %v", a.LabelFontSize, b.LabelFontSize)
	}
	if a.LabelFontSize != 20.0 {
		t.Errorf("LabelFontSize = %v, want 20", a.LabelFontSize)
	}
}

func TestDashOffsetAdvances(t *testing.T) {
	s := ResolveScale(DefaultScaleConfig(), 1.0)
	o1 := s.DashOffset(1.0, 12.0)
	o2 := s.DashOffset(2.0, 12.0)
	if o2 >= o1 {
		t.Errorf("dash offset not advancing: %v then %v", o1, o2)
	}
	if o1 != -12.0 {
		t.Errorf("DashOffset(1, 12) = %v, want -12", o1)
	}
}
