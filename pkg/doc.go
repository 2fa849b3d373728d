// Package pkg provides the core libraries for jigsaw puzzle generation.
//
// # Overview
//
// Jigsaw turns a puzzle configuration (grid size, seed and a library of Bézier
// edge shapes) into interlocking piece outlines. The pkg directory is organized
// into these areas:
//
//  1. [core] - Geometry (vectors and cubics, edges, the seeded grid, pieces)
//  2. [render] - SVG, PNG, PDF and Graphviz output
//  3. [export] - The per-piece asset archive with its manifest
//  4. [pipeline] - Orchestration (generate → compile → render/export) with caching
//  5. [server] - The HTTP API over the pipeline
//
// # Architecture
//
// The typical data flow:
//
//	puzzle config (JSON, see [io])
//	         ↓
//	    [core/grid] (draw one edge per interior boundary from the seed)
//	         ↓
//	    [core/piece] (assemble closed outlines from four sides)
//	         ↓
//	    [render/sink] / [export] (SVG, PNG, PDF, zip archive)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/jigsaw/pkg/core/grid"
//	    "github.com/matzehuels/jigsaw/pkg/core/piece"
//	    "github.com/matzehuels/jigsaw/pkg/render/sink"
//	)
//
//	cfg := grid.DefaultConfig()
//	g, err := grid.Generate(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths := piece.CompileGrid(g, 120)
//	svg := sink.PuzzleSVG(paths, g.Rows, g.Columns)
//
// # Main Packages
//
// ## Geometry
//
// [core/bezier] - 2D vectors, anchor points with Free or Continuous handles, cubic
// segments and affine maps.
//
// [core/edge] - Edge shapes from (0,0) to (1,0) and every editing operation the
// edge editor offers: moving anchors and handles, smoothing, mode changes,
// inserting and deleting points.
//
// [core/grid] - The puzzle configuration and the seeded draw of one edge per
// interior boundary, using the deterministic generator in [core/random].
//
// [core/piece] - Closed piece outlines built from the four sides of a cell.
//
// [core/view] - The pan/zoom mapping used by the interactive editors.
//
// ## Output
//
// [render/sink] - Puzzle, piece and edge SVG plus the canvas and rsvg rasterizers.
//
// [render/adjacency] - The piece neighbour graph through Graphviz.
//
// [export] - Per-piece SVG and PNG assets with PuzzleData.json, as a zip or a
// directory.
//
// ## Infrastructure
//
// [cache] - File, Redis and null caches for rendered artifacts.
//
// [settings] - The TOML settings file.
//
// [observability] - Hooks for metrics and progress reporting.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [core]: github.com/matzehuels/jigsaw/pkg/core
// [render]: github.com/matzehuels/jigsaw/pkg/render
// [export]: github.com/matzehuels/jigsaw/pkg/export
// [pipeline]: github.com/matzehuels/jigsaw/pkg/pipeline
// [server]: github.com/matzehuels/jigsaw/pkg/server
// [io]: github.com/matzehuels/jigsaw/pkg/io
// [core/grid]: github.com/matzehuels/jigsaw/pkg/core/grid
// [core/piece]: github.com/matzehuels/jigsaw/pkg/core/piece
// [core/bezier]: github.com/matzehuels/jigsaw/pkg/core/bezier
// [core/edge]: github.com/matzehuels/jigsaw/pkg/core/edge
// [core/random]: github.com/matzehuels/jigsaw/pkg/core/random
// [core/view]: github.com/matzehuels/jigsaw/pkg/core/view
// [render/sink]: github.com/matzehuels/jigsaw/pkg/render/sink
// [render/adjacency]: github.com/matzehuels/jigsaw/pkg/render/adjacency
// [cache]: github.com/matzehuels/jigsaw/pkg/cache
// [settings]: github.com/matzehuels/jigsaw/pkg/settings
// [observability]: github.com/matzehuels/jigsaw/pkg/observability
// [errors]: github.com/matzehuels/jigsaw/pkg/errors
package pkg
