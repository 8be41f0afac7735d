package pipeline

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/matzehuels/forcefield/pkg/cache"
	"github.com/matzehuels/forcefield/pkg/errors"
	"github.com/matzehuels/forcefield/pkg/observability"
)

var testGraphJSON = []byte(`{
	"nodes": [
		{"id": "a", "label": "Alpha"},
		{"id": "b", "label": "Beta"},
		{"id": "c"}
	],
	"links": [
		{"source": "a", "target": "b"},
		{"source": "b", "target": "c"}
	]
}`)

func testOptions() Options {
	return Options{
		Data:    testGraphJSON,
		Width:   320,
		Height:  240,
		Settle:  30,
		Formats: []string{FormatPNG, FormatSVG},
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Data: testGraphJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("expected default dimensions, got %dx%d", opts.Width, opts.Height)
	}
	if opts.Theme != DefaultTheme {
		t.Errorf("expected default theme, got %q", opts.Theme)
	}
	if opts.Zoom != DefaultZoom {
		t.Errorf("expected default zoom, got %g", opts.Zoom)
	}
	if opts.Settle != DefaultSettle {
		t.Errorf("expected default settle steps, got %d", opts.Settle)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatPNG {
		t.Errorf("expected default formats [png], got %v", opts.Formats)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no input", Options{}},
		{"bad format", Options{Data: testGraphJSON, Formats: []string{"gif"}}},
		{"unknown theme", Options{Data: testGraphJSON, Theme: "nope"}},
		{"zoom too small", Options{Data: testGraphJSON, Zoom: 0.01}},
		{"zoom too large", Options{Data: testGraphJSON, Zoom: 100}},
		{"negative settle", Options{Data: testGraphJSON, Settle: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), testOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.LinkCount != 2 {
		t.Errorf("expected 3 nodes and 2 links, got %d and %d",
			result.Stats.NodeCount, result.Stats.LinkCount)
	}
	if result.GraphHash == "" {
		t.Error("expected graph hash to be computed")
	}
	if result.Scene == nil {
		t.Error("expected scene on an uncached run")
	}

	png := result.Frames[FormatPNG]
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png frame missing PNG signature")
	}
	svg := result.Frames[FormatSVG]
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg frame missing <svg> root")
	}
}

func TestRunnerExecuteDOTFormat(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := testOptions()
	opts.Formats = []string{FormatDOT}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dot := result.Frames[FormatDOT]
	if !bytes.HasPrefix(dot, []byte("graph G {")) {
		t.Errorf("dot frame should start with a graph declaration:\n%s", dot)
	}
	if !bytes.Contains(dot, []byte(`"a" -- "b"`)) {
		t.Errorf("dot frame missing edge:\n%s", dot)
	}
}

func TestRunnerExecuteRemoteSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(testGraphJSON)
	}))
	defer srv.Close()

	runner := NewRunner(nil, nil, nil)
	defer runner.Close()

	opts := testOptions()
	opts.Data = nil
	opts.Source = srv.URL + "/graph.json"

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Stats.NodeCount != 3 {
		t.Errorf("expected 3 nodes, got %d", result.Stats.NodeCount)
	}
}

func TestRunnerParseCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := testOptions()
	ctx := context.Background()

	if _, hit, err := runner.ParseWithCacheInfo(ctx, opts); err != nil || hit {
		t.Fatalf("first parse: hit=%v err=%v", hit, err)
	}
	g, hit, err := runner.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !hit {
		t.Error("expected second parse to hit the cache")
	}
	if len(g.Nodes) != 3 {
		t.Errorf("expected 3 nodes from cached graph, got %d", len(g.Nodes))
	}
}

func TestRunnerFrameCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := testOptions()
	ctx := context.Background()

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.CacheInfo.FrameHit {
		t.Fatal("first run must not hit the frame cache")
	}

	second, err := runner.Execute(ctx, testOptions())
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.CacheInfo.FrameHit {
		t.Error("expected second run to hit the frame cache")
	}
	if second.Scene != nil {
		t.Error("cached run must not build a scene")
	}
	if !bytes.Equal(first.Frames[FormatPNG], second.Frames[FormatPNG]) {
		t.Error("cached frame differs from rendered frame")
	}

	// Different render settings must bypass the cached frames.
	zoomed := testOptions()
	zoomed.Zoom = 2.0
	third, err := runner.Execute(ctx, zoomed)
	if err != nil {
		t.Fatalf("third run: %v", err)
	}
	if third.CacheInfo.FrameHit {
		t.Error("zoom change must invalidate the frame cache")
	}
}

func TestRunnerRefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create cache: %v", err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	ctx := context.Background()
	if _, err := runner.Execute(ctx, testOptions()); err != nil {
		t.Fatalf("first run: %v", err)
	}

	opts := testOptions()
	opts.Refresh = true
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("refresh run: %v", err)
	}
	if result.CacheInfo.ParseHit || result.CacheInfo.FrameHit {
		t.Error("refresh must bypass both caches")
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(context.Background(), Options{Source: "/nonexistent/graph.json"})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected file-not-found code, got %v", err)
	}
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse(context.Background(), Options{Data: []byte("{not json")})
	if !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("expected invalid-graph code, got %v", err)
	}
}

func TestSettleCancellation(t *testing.T) {
	opts := testOptions()
	opts.SetRenderDefaults()
	g, err := Parse(context.Background(), opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	scene, err := BuildScene(g, opts)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Settle(ctx, scene, 1000); err == nil {
		t.Error("expected cancellation error")
	}
}

// settleHooks counts settle lifecycle events.
type settleHooks struct {
	observability.NoopPipelineHooks
	starts    int
	completes int
}

func (h *settleHooks) OnSettleStart(ctx context.Context, nodeCount, steps int) { h.starts++ }
func (h *settleHooks) OnSettleComplete(ctx context.Context, steps int, d time.Duration) {
	h.completes++
}

func TestSettleCancellationPairsHooks(t *testing.T) {
	hooks := &settleHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	opts := testOptions()
	opts.SetRenderDefaults()
	g, err := Parse(context.Background(), opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	scene, err := BuildScene(g, opts)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Settle(ctx, scene, 1000); err == nil {
		t.Fatal("expected cancellation error")
	}

	if hooks.starts != 1 || hooks.completes != 1 {
		t.Errorf("starts=%d completes=%d, want one of each", hooks.starts, hooks.completes)
	}
}

func TestApplyViewZoomAboutCenter(t *testing.T) {
	opts := testOptions()
	opts.SetRenderDefaults()
	opts.Zoom = 2.0
	g, err := Parse(context.Background(), opts)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	scene, err := BuildScene(g, opts)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}

	// The frame center must map to the same world point regardless of zoom.
	wx, wy := scene.ScreenToWorld(160, 120)
	if wx != 160 || wy != 120 {
		t.Errorf("center moved under zoom: got (%g, %g)", wx, wy)
	}
}
