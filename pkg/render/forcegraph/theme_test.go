package forcegraph

import "testing"

func TestParseColorHex(t *testing.T) {
	c := ParseColor("#1976d2")
	if c.R != 0x19 || c.G != 0x76 || c.B != 0xd2 || c.A != 1.0 {
		t.Errorf("ParseColor(#1976d2) = %+v", c)
	}
}

func TestParseColorFunctional(t *testing.T) {
	c := ParseColor("rgb(10, 20, 30)")
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 1.0 {
		t.Errorf("rgb: %+v", c)
	}
	c = ParseColor("rgba(10, 20, 30, 0.5)")
	if c.R != 10 || c.G != 20 || c.B != 30 || c.A != 0.5 {
		t.Errorf("rgba: %+v", c)
	}
}

func TestParseColorFallback(t *testing.T) {
	for _, s := range []string{"", "blue", "#fff", "#nothex"} {
		c := ParseColor(s)
		if c.R != 128 || c.G != 128 || c.B != 128 {
			t.Errorf("ParseColor(%q) = %+v, want neutral gray", s, c)
		}
	}
}

func TestColorLightenDarken(t *testing.T) {
	c := RGB(100, 100, 100)
	if got := c.Lighten(1.0); got.R != 255 || got.G != 255 || got.B != 255 {
		t.Errorf("Lighten(1) = %+v", got)
	}
	if got := c.Darken(1.0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Errorf("Darken(1) = %+v", got)
	}
	if got := c.Lighten(0); got != c {
		t.Errorf("Lighten(0) = %+v, want unchanged", got)
	}
	// Out-of-range factors clamp instead of wrapping channels.
	if got := c.Lighten(5.0); got.R != 255 {
		t.Errorf("Lighten(5) = %+v", got)
	}
}

func TestColorLerp(t *testing.T) {
	a, b := RGB(0, 0, 0), RGB(200, 100, 50)
	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %+v", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %+v", got)
	}
	mid := a.Lerp(b, 0.5)
	if mid.R != 100 || mid.G != 50 || mid.B != 25 {
		t.Errorf("Lerp(0.5) = %+v", mid)
	}
}

func TestColorCSS(t *testing.T) {
	if got := RGB(25, 118, 210).CSS(); got != "#1976d2" {
		t.Errorf("opaque CSS = %q", got)
	}
	if got := RGBA(10, 20, 30, 0.5).CSS(); got != "rgba(10, 20, 30, 0.5)" {
		t.Errorf("translucent CSS = %q", got)
	}
}

func TestPaletteWraps(t *testing.T) {
	p := PaletteSlate()
	if p.At(0) != p.At(len(p.Colors)) {
		t.Error("palette index does not wrap")
	}
}

func TestThemeByName(t *testing.T) {
	for _, want := range []string{"default", "midnight", "ember", "deepsea", "minimal"} {
		th, ok := ThemeByName(want)
		if !ok {
			t.Errorf("theme %q not found", want)
			continue
		}
		if th.Name != want {
			t.Errorf("ThemeByName(%q).Name = %q", want, th.Name)
		}
		if len(th.Palette.Colors) == 0 {
			t.Errorf("theme %q has empty palette", want)
		}
	}
	if _, ok := ThemeByName("nope"); ok {
		t.Error("unknown theme reported found")
	}
}

func TestMinimalThemeIsFlat(t *testing.T) {
	th := MinimalTheme()
	if th.Background.UseGradient || th.Background.Vignette != 0 {
		t.Error("minimal theme has background effects")
	}
	if th.Node.UseGradient {
		t.Error("minimal theme has node gradients")
	}
}
