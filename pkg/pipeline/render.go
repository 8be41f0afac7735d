package pipeline

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/observability"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
	"github.com/matzehuels/forcefield/pkg/render/surface"
)

// Render draws the scene once per requested format and returns the encoded
// frames keyed by format. The dot format exports g directly instead of
// drawing the scene.
func Render(ctx context.Context, g graph.Graph, scene *forcegraph.Scene, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, strings.Join(opts.Formats, ","), len(opts.Formats))
	start := time.Now()

	frames := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		frames[format], err = renderFormat(g, scene, format, opts)
		if err != nil {
			break
		}
	}

	hooks.OnRenderComplete(ctx, strings.Join(opts.Formats, ","), len(frames), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return frames, nil
}

func renderFormat(g graph.Graph, scene *forcegraph.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		raster, err := surface.NewRaster(opts.Width, opts.Height)
		if err != nil {
			return nil, err
		}
		forcegraph.RenderFrame(scene, raster)
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil

	case FormatSVG:
		svg := surface.NewSVG(float64(opts.Width), float64(opts.Height))
		forcegraph.RenderFrame(scene, svg)
		return svg.Bytes(), nil

	case FormatDOT:
		return []byte(g.ToDOT()), nil

	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
