// Package forcegraph renders interactive force-directed node-link graphs.
//
// # Overview
//
// This package combines a physics-driven layout with animated interaction
// state and a multi-pass renderer. A [Scene] owns the simulation, the view
// transform for pan and zoom, hover highlight animation and the optional
// ambient particle field. Each frame, [RenderFrame] resolves the current
// zoom level into concrete sizes and draws the scene onto a [Canvas].
//
// # Usage
//
// Build a scene from parsed graph data, drive it from a frame loop, and
// render onto any Canvas implementation:
//
//	scene := forcegraph.NewScene(data, 800, 600,
//		forcegraph.WithTheme(forcegraph.MidnightTheme()))
//	for running {
//		scene.Step(0.016)
//		forcegraph.RenderFrame(scene, canvas)
//	}
//
// Pointer events route through [Scene.PointerDown], [Scene.PointerMove],
// [Scene.PointerUp], [Scene.PointerLeave] and [Scene.Wheel]. Dragging a
// node anchors it; clicking empty space pans; the wheel zooms about the
// cursor.
//
// # Coordinate Spaces
//
// World space is the simulation's coordinate system and scales with zoom.
// Screen space is device pixels and does not. [ScaleBehavior] and
// [AlphaBehavior] define per-element policies for moving between the two,
// resolved once per frame into [ScaledValues].
//
// # Rendering
//
// [RenderFrame] draws in a fixed pass order: background, particles, edge
// glows, edges with their flow-animated dash pattern and direction arrows,
// node glows, plain nodes, then highlighted nodes with hover rings and
// labels, and finally the vignette. Given the same scene state the draw
// sequence is identical, which the surface tests rely on.
//
// # Theming
//
// A [Theme] is a plain value bundling background, edge, node and particle
// styles with a node color [Palette]. Built-in themes are listed by
// [Themes] and looked up with [ThemeByName].
package forcegraph
