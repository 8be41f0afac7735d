package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcefield/pkg/config"
	"github.com/matzehuels/forcefield/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: "png", "svg", "dot"
	theme      string   // theme name
	width      int      // frame width in pixels
	height     int      // frame height in pixels
	zoom       float64  // zoom factor applied about the frame center
	panX       float64  // horizontal pan in screen pixels
	panY       float64  // vertical pan in screen pixels
	settle     int      // simulation steps before drawing
	particles  bool     // enable the background particle field
	configPath string   // optional TOML config file
	noCache    bool     // disable the render cache
	refresh    bool     // bypass cached entries and recompute
}

// newRenderCmd creates the render command for generating frames.
//
// Default settings come from the built-in config (1920x1080, theme "default",
// format png, 300 settle steps); a --config file overrides the defaults and
// explicit flags override both.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph to PNG, SVG or DOT output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipelineOpts, err := buildPipelineOptions(cmd, args[0], &opts, formatsStr)
			if err != nil {
				return err
			}
			return runRender(cmd.Context(), args[0], &opts, pipelineOpts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg, dot (comma-separated)")
	cmd.Flags().StringVarP(&opts.theme, "theme", "t", "", "theme name (see 'forcefield themes')")
	cmd.Flags().IntVar(&opts.width, "width", 0, "frame width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", 0, "frame height in pixels")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 0, "zoom factor (0.1 to 10)")
	cmd.Flags().Float64Var(&opts.panX, "pan-x", 0, "horizontal pan in pixels")
	cmd.Flags().Float64Var(&opts.panY, "pan-y", 0, "vertical pan in pixels")
	cmd.Flags().IntVar(&opts.settle, "settle", 0, "simulation steps before drawing")
	cmd.Flags().BoolVar(&opts.particles, "particles", false, "enable the background particle field")
	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// buildPipelineOptions merges config file values and command-line flags into
// pipeline options. Flags that were explicitly set win over the config file.
func buildPipelineOptions(cmd *cobra.Command, input string, opts *renderOpts, formatsStr string) (pipeline.Options, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return pipeline.Options{}, err
	}

	p := pipeline.Options{
		Source:    input,
		Theme:     cfg.Render.Theme,
		Width:     cfg.Render.Width,
		Height:    cfg.Render.Height,
		Zoom:      cfg.Render.Zoom,
		PanX:      opts.panX,
		PanY:      opts.panY,
		Settle:    cfg.Render.Settle,
		Particles: cfg.Render.Particles,
		Physics:   cfg.Params(),
		Formats:   []string{cfg.Render.Format},
		Refresh:   opts.refresh,
	}

	flags := cmd.Flags()
	if flags.Changed("theme") {
		p.Theme = opts.theme
	}
	if flags.Changed("width") {
		p.Width = opts.width
	}
	if flags.Changed("height") {
		p.Height = opts.height
	}
	if flags.Changed("zoom") {
		p.Zoom = opts.zoom
	}
	if flags.Changed("settle") {
		p.Settle = opts.settle
	}
	if flags.Changed("particles") {
		p.Particles = opts.particles
	}
	if formatsStr != "" {
		p.Formats = parseFormats(formatsStr)
	}
	opts.formats = p.Formats

	if err := p.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return p, nil
}

// parseFormats parses the --format flag into a slice of output formats.
func parseFormats(s string) []string {
	parts := strings.Split(s, ",")
	formats := make([]string, 0, len(parts))
	for _, p := range parts {
		if f := strings.TrimSpace(p); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

// runRender executes the pipeline and writes one file per requested format.
func runRender(ctx context.Context, input string, opts *renderOpts, pipelineOpts pipeline.Options) error {
	logger := loggerFromContext(ctx)
	pipelineOpts.Logger = logger

	c, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipelineOpts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d frame(s)", len(result.Frames)))

	printSuccess("Rendered %s", input)
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, result.CacheInfo.FrameHit)

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Frames[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath derives the output file path for a format.
// With a single format, an explicit --output is used verbatim. Otherwise the
// base path (explicit output stripped of a known format extension, or the
// input path stripped of its extension) gets the format appended.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + format
}

// basePath derives the base output path from the output and input file paths.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
