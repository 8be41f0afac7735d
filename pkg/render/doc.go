// Package render provides visualization rendering for force-directed graphs.
//
// # Overview
//
// This package groups the drawing side of Forcefield:
//
//   - Scene state and frame rendering (in [forcegraph] subpackage)
//   - Drawing surfaces for PNG and SVG output (in [surface] subpackage)
//
// # Force-Directed Scenes
//
// The [forcegraph] subpackage owns everything visible in a frame: themes,
// node and edge styling, degree-based sizing, hover highlighting, the
// background particle field, and the pan-zoom-drag interaction state. Frames
// are drawn in a fixed pass order so the same scene always produces the same
// image on any surface.
//
//	scene := forcegraph.NewScene(&g, 1920, 1080, forcegraph.WithTheme(theme))
//	scene.Step(0.016)
//	forcegraph.RenderFrame(scene, canvas)
//
// # Surfaces
//
// The [surface] subpackage implements the forcegraph canvas contract twice:
// a raster backend on fogleman/gg that encodes PNG, and a vector backend
// that writes SVG markup directly. A recording canvas is included for tests
// that assert on draw calls rather than pixels.
//
//	raster, err := surface.NewRaster(1920, 1080)
//	forcegraph.RenderFrame(scene, raster)
//	err = raster.EncodePNG(out)
//
// [forcegraph]: github.com/matzehuels/forcefield/pkg/render/forcegraph
// [surface]: github.com/matzehuels/forcefield/pkg/render/surface
package render
