// Package pipeline provides the core rendering pipeline for Forcefield.
//
// This package implements the complete parse → settle → render pipeline that
// can be used by CLI and server components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Load and validate the graph JSON
//  2. Settle: Run the force simulation until the layout stabilizes
//  3. Render: Draw the frame in various formats (PNG, SVG, DOT)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Source:  "graph.json",
//	    Theme:   "midnight",
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Frames["png"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcefield/pkg/cache"
	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/physics"
	"github.com/matzehuels/forcefield/pkg/render/forcegraph"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 1920

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 1080

	// DefaultSettle is the default number of simulation steps to run before
	// drawing. 300 steps at the fixed timestep is roughly five seconds of
	// simulated time, enough for small and medium graphs to come to rest.
	DefaultSettle = 300

	// DefaultZoom is the default zoom factor.
	DefaultZoom = 1.0

	// DefaultTheme is the default theme name.
	DefaultTheme = "default"

	// SettleStep is the fixed simulation timestep in seconds. Settling uses
	// the same step as interactive playback so both converge to the same
	// layout.
	SettleStep = 0.016
)

// Format constants for output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatDOT = "dot"
)

// ValidFormats is the set of supported output formats. The dot format skips
// rasterization entirely and exports the graph structure for Graphviz.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatDOT: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the rendering pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Data takes precedence over Source when both are set.
	Source string `json:"source,omitempty"`
	Data   []byte `json:"data,omitempty"`

	// Settle options
	Settle  int            `json:"settle,omitempty"`
	Physics physics.Params `json:"physics,omitempty"`

	// Render options
	Theme         string            `json:"theme,omitempty"`
	Width         int               `json:"width,omitempty"`
	Height        int               `json:"height,omitempty"`
	Zoom          float64           `json:"zoom,omitempty"`
	PanX          float64           `json:"pan_x,omitempty"`
	PanY          float64           `json:"pan_y,omitempty"`
	Particles     bool              `json:"particles,omitempty"`
	ClusterColors map[string]string `json:"cluster_colors,omitempty"`
	Formats       []string          `json:"formats,omitempty"`
	Refresh       bool              `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the parsed and validated input graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Scene is the settled scene, nil when every frame came from cache.
	Scene *forcegraph.Scene

	// Frames contains rendered outputs keyed by format.
	Frames map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	ParseTime  time.Duration
	SettleTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	ParseHit bool // Whether the parsed graph came from cache
	FrameHit bool // Whether all frames came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, svg, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(name string) error {
	if _, ok := forcegraph.ThemeByName(name); !ok {
		return errors.New(errors.ErrCodeInvalidTheme, "unknown theme %q", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks required fields for parsing.
func (o *Options) ValidateForParse() error {
	if o.Source == "" && len(o.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source or data is required")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetRenderDefaults sets default values for settling and rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Settle == 0 {
		o.Settle = DefaultSettle
	}
	if o.Zoom == 0 {
		o.Zoom = DefaultZoom
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if o.Physics == (physics.Params{}) {
		o.Physics = physics.DefaultParams()
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"frame dimensions must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Zoom < 0.1 || o.Zoom > 10 {
		return errors.New(errors.ErrCodeInvalidInput,
			"zoom must be between 0.1 and 10, got %g", o.Zoom)
	}
	if o.Settle < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"settle steps must be non-negative, got %d", o.Settle)
	}
	if err := ValidateTheme(o.Theme); err != nil {
		return err
	}
	return ValidateFormats(o.Formats)
}

// FrameKeyOpts returns cache key options for a rendered frame.
func (o *Options) FrameKeyOpts(format string) cache.FrameKeyOpts {
	return cache.FrameKeyOpts{
		Theme:  o.Theme,
		Width:  o.Width,
		Height: o.Height,
		Zoom:   o.Zoom,
		PanX:   o.PanX,
		PanY:   o.PanY,
		Settle: o.Settle,
		Format: format,
	}
}
