// Package pkg provides the core libraries for Forcefield graph visualization.
//
// # Overview
//
// Forcefield renders node-link graphs with a force-directed layout: charged
// nodes repel each other, links act as springs, and the simulation settles
// into a readable arrangement. The pkg directory is organized into four main
// areas:
//
//  1. [graph] - Input data model (JSON node-link format, DOT export, analysis)
//  2. [physics] - Force simulation (charge, springs, damping)
//  3. [render] - Drawing (scene state, themes, raster and SVG surfaces)
//  4. [pipeline] - Orchestration (parse → settle → render) with caching
//
// # Architecture
//
// The typical data flow through Forcefield:
//
//	JSON graph document (file, URL, or upload)
//	         ↓
//	    [graph] package (parse + validate)
//	         ↓
//	    [physics] package (force simulation)
//	         ↓
//	    [render/forcegraph] package (scene, themes, drawing passes)
//	         ↓
//	    PNG/SVG/DOT output
//
// # Quick Start
//
// Render a graph to PNG:
//
//	import (
//	    "context"
//	    "os"
//	    "github.com/matzehuels/forcefield/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Source:  "graph.json",
//	    Formats: []string{pipeline.FormatPNG},
//	})
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("graph.png", result.Frames[pipeline.FormatPNG], 0o644)
//
// # Main Packages
//
// ## Domain Logic
//
// [graph] - Input model. Nodes carry optional labels, colors, and group
// names; links reference nodes by id. Includes structure analysis
// (connected components, degrees) and Graphviz DOT export.
//
// [physics] - Generic force-directed simulation over typed node payloads.
// Charge repulsion, spring attraction, velocity damping, and anchoring for
// dragged nodes.
//
// [render/forcegraph] - Scene state and the deterministic multi-pass frame
// renderer: background, particles, edges, nodes, labels, and hover
// highlighting. Themes control every color and style knob.
//
// [render/surface] - Drawing surfaces implementing the forcegraph canvas
// contract: a raster backend (PNG) and a vector backend (SVG).
//
// ## Infrastructure
//
// [pipeline] - Complete render pipeline (parse → settle → render) used by
// the CLI and the HTTP server, with graph and frame caching.
//
// [cache] - Byte caches keyed on content hashes: file-based for the CLI,
// Redis for the server, and a null cache for tests.
//
// [fetch] - HTTP retrieval of remote graph documents with retry and backoff.
//
// [session] - Uploaded-graph sessions for the HTTP server, with memory and
// file backends.
//
// [config] - TOML configuration with validation and flag overrides.
//
// [errors] - Coded errors that map cleanly to exit codes and HTTP statuses.
//
// [observability] - Pipeline, cache, and server hook registries for metrics
// and tracing integration.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...               # All tests
//	go test ./pkg/physics/...       # Specific package
//	go test -run Example            # Examples only
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/graph
// [physics]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/physics
// [render]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/render
// [render/forcegraph]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/render/forcegraph
// [render/surface]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/render/surface
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/cache
// [fetch]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/fetch
// [session]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/forcefield/pkg/observability
package pkg
