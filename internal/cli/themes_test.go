package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

func TestRenderThemesTable(t *testing.T) {
	out := renderThemesTable(forcegraph.Themes())

	for _, th := range forcegraph.Themes() {
		if !strings.Contains(out, th.Name) {
			t.Errorf("table missing theme %q", th.Name)
		}
	}
	for _, header := range []string{"Theme", "Background", "Palette", "Particles"} {
		if !strings.Contains(out, header) {
			t.Errorf("table missing header %q", header)
		}
	}
}

func TestSwatch(t *testing.T) {
	if swatch(forcegraph.RGB(255, 0, 0)) == "" {
		t.Error("swatch should render a block")
	}
}

func TestPaletteSwatches(t *testing.T) {
	theme, ok := forcegraph.ThemeByName("default")
	if !ok {
		t.Fatal("default theme missing")
	}
	out := paletteSwatches(theme.Palette)
	if got := strings.Count(out, "█"); got != len(theme.Palette.Colors) {
		t.Errorf("got %d swatches, want %d", got, len(theme.Palette.Colors))
	}
}
