// Package fonts provides the label font used by raster rendering.
//
// The Go Regular typeface ships with the golang.org/x/image module, so the
// binary needs no external font files. Parsing happens once; faces are
// created per surface because a font.Face is not safe for concurrent use.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family name matching the embedded typeface.
// SVG output references it so raster and vector frames use similar metrics.
const FontFamily = "Go, 'Helvetica Neue', Helvetica, Arial, sans-serif"

var (
	parseOnce  sync.Once
	parsed     *opentype.Font
	parseError error
)

// Regular returns the parsed Go Regular font. The result is shared and
// read-only.
func Regular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseError = opentype.Parse(goregular.TTF)
	})
	return parsed, parseError
}

// NewFace creates a rendering face for the given point size at 72 DPI.
// Each surface should keep its own faces; they carry mutable glyph caches.
func NewFace(size float64) (font.Face, error) {
	ft, err := Regular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
