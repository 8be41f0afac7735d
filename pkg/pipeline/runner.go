package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcefield/pkg/cache"
	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/graph"
	"github.com/matzehuels/forcefield/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and server can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete parse → settle → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	r.applyLogger(&opts)

	result := &Result{
		Frames: make(map[string][]byte),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	g, parseHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Graph = g
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.NodeCount = len(g.Nodes)
	result.Stats.LinkCount = len(g.Links)
	result.CacheInfo.ParseHit = parseHit

	// Compute graph hash for frame cache keys and API responses
	if data, err := g.Marshal(); err == nil {
		result.GraphHash = cache.Hash(data)
	}

	r.Logger.Info("parsed graph",
		"nodes", len(g.Nodes),
		"links", len(g.Links),
		"duration", result.Stats.ParseTime)

	// Try the frame cache before paying for a settle run.
	if !opts.Refresh && result.GraphHash != "" {
		if frames, ok := r.cachedFrames(ctx, result.GraphHash, opts); ok {
			result.Frames = frames
			result.CacheInfo.FrameHit = true
			r.Logger.Info("rendered frames", "formats", opts.Formats, "cached", true)
			return result, nil
		}
	}

	// Stage 2: Settle
	settleStart := time.Now()
	scene, err := BuildScene(g, opts)
	if err != nil {
		return nil, err
	}
	if err := Settle(ctx, scene, opts.Settle); err != nil {
		return nil, err
	}
	result.Scene = scene
	result.Stats.SettleTime = time.Since(settleStart)

	r.Logger.Info("settled layout",
		"steps", opts.Settle,
		"duration", result.Stats.SettleTime)

	// Stage 3: Render
	renderStart := time.Now()
	frames, err := Render(ctx, result.Graph, scene, opts)
	if err != nil {
		return nil, err
	}
	result.Frames = frames
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range frames {
		key := r.Keyer.FrameKey(result.GraphHash, opts.FrameKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLFrame); err == nil {
			observability.Cache().OnCacheSet(ctx, "frame", len(data))
		}
	}

	r.Logger.Info("rendered frames",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo loads the graph with caching and returns cache hit info.
// The cache key is derived from the raw input bytes, so edits to the source
// file naturally invalidate the entry.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (graph.Graph, bool, error) {
	if err := opts.ValidateForParse(); err != nil {
		return graph.Graph{}, false, err
	}
	r.applyLogger(&opts)

	raw, err := readSource(ctx, opts)
	if err != nil {
		return graph.Graph{}, false, err
	}
	opts.Data = raw
	cacheKey := r.Keyer.GraphKey(cache.Hash(raw))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if g, err := graph.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "graph")
				return g, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "graph")
	}

	g, err := Parse(ctx, opts)
	if err != nil {
		return graph.Graph{}, false, err
	}

	if !opts.Refresh {
		if data, err := g.Marshal(); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLGraph)
		}
	}

	return g, false, nil
}

// Parse is a convenience wrapper that discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (graph.Graph, error) {
	g, _, err := r.ParseWithCacheInfo(ctx, opts)
	return g, err
}

// cachedFrames returns all requested formats from cache, or ok=false if any
// format is missing.
func (r *Runner) cachedFrames(ctx context.Context, graphHash string, opts Options) (map[string][]byte, bool) {
	frames := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.FrameKey(graphHash, opts.FrameKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "frame")
			return nil, false
		}
		frames[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "frame")
	return frames, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
