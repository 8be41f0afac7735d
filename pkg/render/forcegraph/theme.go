package forcegraph

import (
	"fmt"
	"strconv"
	"strings"
)

// =============================================================================
// Color
// =============================================================================

// Color is an RGBA color with an 8-bit channel depth and a float alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1.0}
}

// RGBA creates a color with explicit alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Lighten moves the color toward white. factor 0 leaves it unchanged, 1 is
// fully white.
func (c Color) Lighten(factor float64) Color {
	f := clamp01(factor)
	return Color{
		R: uint8(float64(c.R) + (255-float64(c.R))*f),
		G: uint8(float64(c.G) + (255-float64(c.G))*f),
		B: uint8(float64(c.B) + (255-float64(c.B))*f),
		A: c.A,
	}
}

// Darken moves the color toward black. factor 0 leaves it unchanged, 1 is
// fully black.
func (c Color) Darken(factor float64) Color {
	f := 1 - clamp01(factor)
	return Color{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// Lerp interpolates linearly between c and other.
func (c Color) Lerp(other Color, t float64) Color {
	t = clamp01(t)
	return Color{
		R: uint8(float64(c.R)*(1-t) + float64(other.R)*t),
		G: uint8(float64(c.G)*(1-t) + float64(other.G)*t),
		B: uint8(float64(c.B)*(1-t) + float64(other.B)*t),
		A: c.A*(1-t) + other.A*t,
	}
}

// Hex returns the color as "#rrggbb", dropping alpha.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// CSS returns "#rrggbb" for opaque colors and "rgba(r, g, b, a)" otherwise.
func (c Color) CSS() string {
	if c.A > 0.999 {
		return c.Hex()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %g)", c.R, c.G, c.B, c.A)
}

// ParseColor parses hex ("#rrggbb") and functional ("rgb(...)", "rgba(...)")
// CSS color strings. Anything unparseable falls back to a neutral gray so a
// bad color never aborts a frame.
func ParseColor(s string) Color {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#") && len(s) == 7:
		r := parseHexByte(s[1:3])
		g := parseHexByte(s[3:5])
		b := parseHexByte(s[5:7])
		return RGB(r, g, b)
	case strings.HasPrefix(s, "rgb"):
		body := strings.TrimPrefix(s, "rgba")
		body = strings.TrimPrefix(body, "rgb")
		body = strings.TrimPrefix(body, "(")
		body = strings.TrimSuffix(body, ")")
		parts := strings.Split(body, ",")
		c := Color{R: 128, G: 128, B: 128, A: 1.0}
		if len(parts) >= 3 {
			c.R = parseDecByte(parts[0])
			c.G = parseDecByte(parts[1])
			c.B = parseDecByte(parts[2])
		}
		if len(parts) >= 4 {
			if a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64); err == nil {
				c.A = a
			}
		}
		return c
	default:
		return RGB(128, 128, 128)
	}
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 128
	}
	return uint8(v)
}

func parseDecByte(s string) uint8 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 128
	}
	return uint8(v)
}

// =============================================================================
// Palette
// =============================================================================

// Palette is a curated node color cycle.
type Palette struct {
	Name   string
	Colors []Color
}

// At returns the palette color for an index, wrapping around.
func (p Palette) At(i int) Color {
	return p.Colors[i%len(p.Colors)]
}

// PaletteSlate is a muted, harmonious palette of slate blues and teals.
func PaletteSlate() Palette {
	return Palette{Name: "slate", Colors: []Color{
		RGB(94, 129, 172), RGB(129, 161, 193), RGB(100, 148, 160), RGB(136, 160, 175),
		RGB(108, 142, 173), RGB(119, 158, 165), RGB(143, 163, 180), RGB(122, 153, 168),
	}}
}

// PaletteEarth is a palette of warm muted oranges and browns.
func PaletteEarth() Palette {
	return Palette{Name: "earth", Colors: []Color{
		RGB(180, 136, 100), RGB(160, 125, 100), RGB(170, 145, 115), RGB(145, 120, 95),
		RGB(175, 150, 120), RGB(155, 130, 105), RGB(165, 140, 110), RGB(150, 125, 100),
	}}
}

// PalettePastel is a soft palette of gentle colors.
func PalettePastel() Palette {
	return Palette{Name: "pastel", Colors: []Color{
		RGB(200, 180, 190), RGB(180, 195, 205), RGB(190, 200, 180), RGB(205, 195, 180),
		RGB(185, 190, 200), RGB(195, 185, 175), RGB(180, 200, 195), RGB(200, 190, 185),
	}}
}

// PaletteOcean is a palette of deep blues and teals.
func PaletteOcean() Palette {
	return Palette{Name: "ocean", Colors: []Color{
		RGB(70, 110, 140), RGB(80, 130, 150), RGB(100, 145, 160), RGB(90, 125, 145),
		RGB(85, 135, 155), RGB(95, 120, 140), RGB(75, 115, 135), RGB(88, 128, 148),
	}}
}

// PaletteSunset is a palette of warm muted tones.
func PaletteSunset() Palette {
	return Palette{Name: "sunset", Colors: []Color{
		RGB(180, 120, 100), RGB(170, 130, 95), RGB(185, 145, 110), RGB(165, 115, 90),
		RGB(175, 125, 105), RGB(160, 135, 100), RGB(170, 140, 115), RGB(155, 120, 95),
	}}
}

// PaletteAurora is a cool palette of teals and purples.
func PaletteAurora() Palette {
	return Palette{Name: "aurora", Colors: []Color{
		RGB(100, 145, 135), RGB(115, 135, 155), RGB(130, 120, 150), RGB(105, 140, 145),
		RGB(120, 130, 160), RGB(125, 145, 140), RGB(110, 125, 155), RGB(135, 140, 150),
	}}
}

// =============================================================================
// Theme
// =============================================================================

// BackgroundStyle configures the backdrop.
type BackgroundStyle struct {
	Color          Color // primary background color
	ColorSecondary Color // gradient center color when UseGradient is set
	UseGradient    bool  // radial gradient instead of a flat fill
	Vignette       float64
}

// EdgeStyle configures edge appearance.
type EdgeStyle struct {
	Color         Color
	GlowColor     Color
	GlowIntensity float64
	Curved        bool
	CurveTension  float64 // 0 = straight, 1 = very curved
}

// NodeStyle configures node appearance.
type NodeStyle struct {
	UseGradient    bool    // inner radial gradient instead of flat fill
	GlowIntensity  float64 // outer glow strength (0 disables the glow pass)
	GlowSaturation float64 // how much the node's own color tints its glow
	BorderWidth    float64 // stroke width in screen pixels, 0 = no border
	BorderColor    Color
	PulseIntensity float64 // radius oscillation amplitude (0 disables)
	PulseSpeed     float64
}

// ParticleStyle configures the ambient particle field.
type ParticleStyle struct {
	Enabled bool
	Count   int
	Color   Color
	SizeMin float64
	SizeMax float64
	Speed   float64
	Opacity float64
}

// Theme bundles all visual styling as a plain value.
type Theme struct {
	Name       string
	Background BackgroundStyle
	Edge       EdgeStyle
	Node       NodeStyle
	Particles  ParticleStyle
	Palette    Palette
}

// DefaultTheme is a clean modern theme with subtle effects.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",
		Background: BackgroundStyle{
			Color:          RGB(22, 27, 34),
			ColorSecondary: RGB(30, 35, 42),
			UseGradient:    true,
			Vignette:       0.15,
		},
		Edge:    EdgeStyle{Color: RGBA(140, 160, 180, 0.5), GlowColor: RGBA(140, 160, 180, 0.1)},
		Node:    NodeStyle{UseGradient: true},
		Palette: PaletteSlate(),
	}
}

// MidnightTheme is an elegant dark theme.
func MidnightTheme() Theme {
	return Theme{
		Name: "midnight",
		Background: BackgroundStyle{
			Color:          RGB(18, 20, 28),
			ColorSecondary: RGB(25, 28, 38),
			UseGradient:    true,
			Vignette:       0.2,
		},
		Edge:    EdgeStyle{Color: RGBA(100, 120, 150, 0.45), GlowColor: RGBA(100, 120, 150, 0.1)},
		Node:    NodeStyle{UseGradient: true},
		Palette: PaletteAurora(),
	}
}

// EmberTheme uses warm earth tones.
func EmberTheme() Theme {
	return Theme{
		Name: "ember",
		Background: BackgroundStyle{
			Color:          RGB(28, 24, 22),
			ColorSecondary: RGB(35, 30, 28),
			UseGradient:    true,
			Vignette:       0.18,
		},
		Edge:    EdgeStyle{Color: RGBA(160, 130, 110, 0.45), GlowColor: RGBA(160, 130, 110, 0.1)},
		Node:    NodeStyle{UseGradient: true},
		Palette: PaletteEarth(),
	}
}

// DeepSeaTheme uses ocean blues.
func DeepSeaTheme() Theme {
	return Theme{
		Name: "deepsea",
		Background: BackgroundStyle{
			Color:          RGB(15, 25, 35),
			ColorSecondary: RGB(20, 32, 45),
			UseGradient:    true,
			Vignette:       0.2,
		},
		Edge:    EdgeStyle{Color: RGBA(90, 130, 160, 0.45), GlowColor: RGBA(90, 130, 160, 0.1)},
		Node:    NodeStyle{UseGradient: true},
		Palette: PaletteOcean(),
	}
}

// MinimalTheme is an ultra-clean theme: flat background, flat nodes, no
// vignette.
func MinimalTheme() Theme {
	return Theme{
		Name: "minimal",
		Background: BackgroundStyle{
			Color:          RGB(25, 28, 35),
			ColorSecondary: RGB(25, 28, 35),
		},
		Edge:    EdgeStyle{Color: RGBA(130, 145, 165, 0.4), GlowColor: RGBA(130, 145, 165, 0.0)},
		Palette: PalettePastel(),
	}
}

// Themes returns all built-in themes in display order.
func Themes() []Theme {
	return []Theme{DefaultTheme(), MidnightTheme(), EmberTheme(), DeepSeaTheme(), MinimalTheme()}
}

// ThemeByName looks up a built-in theme. ok is false for unknown names.
func ThemeByName(name string) (Theme, bool) {
	for _, t := range Themes() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
