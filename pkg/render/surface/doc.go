// Package surface provides drawing backends for the force graph renderer.
//
// # Overview
//
// Three implementations of [forcegraph.Canvas] live here:
//
//   - [Raster]: in-memory pixel rendering via fogleman/gg, exported as PNG
//   - [SVG]: vector output as a standalone SVG document
//   - [Recorder]: records the draw call sequence for tests and debugging
//
// All backends honor the same transform, alpha and dash semantics, so a
// frame rendered twice against different surfaces describes the same image.
//
// # Usage
//
//	r, err := surface.NewRaster(1920, 1080)
//	if err != nil {
//		return err
//	}
//	forcegraph.RenderFrame(scene, r)
//	err = r.EncodePNG(w)
//
// The SVG surface accumulates markup and serializes on demand:
//
//	s := surface.NewSVG(1920, 1080)
//	forcegraph.RenderFrame(scene, s)
//	out := s.Bytes()
package surface
