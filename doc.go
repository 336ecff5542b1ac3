// Package lsys renders Lindenmayer-system fractals defined by a small
// grammar of drawable patterns, heading operators and production rules.
//
// # Overview
//
// A [Project] is the whole input to one render: an axiom, an iteration
// count, the patterns stamped for upper-case symbols, the operators that
// turn the turtle, and the productions that rewrite symbols each
// generation. The engine is split into leaf packages that can be used on
// their own:
//
//   - grammar: string rewriting over an immutable rule table, and the
//     cheap primitive-count estimator used to gate huge renders
//   - turtle: walks an instruction string, emitting absolutely positioned
//     draw commands and tracking a bounding box
//   - viewport: computes the damped ideal zoom and center for a bounding box
//   - surface: the render target contract and its gg-backed rasterizer
//   - render: the orchestrator that sequences all of the above
//
// # Quick Start
//
//	p, err := lsys.Load("koch.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	s, err := surface.NewRaster(surface.Options{Width: 1280, Height: 720})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	r := render.New(s, render.WithConfirm(func(ctx context.Context, estimate int64) bool {
//	    return true
//	}))
//	if _, err := r.Render(ctx, p); err != nil {
//	    log.Fatal(err)
//	}
//	_ = r.ExportPNG(out)
//
// # Coordinate System
//
// Pattern-local coordinates are in cells. One cell is
// viewport.DefaultCellSize surface pixels. Headings are in degrees, kept in
// (-180, 180], and rotate counter-clockwise in the mathematical sense
// (clockwise on screen, since Y grows downward).
//
// # Forgiving Grammars
//
// Characters that have no production are dropped during expansion, and
// characters with no pattern or operator are no-ops during the walk. Both
// are valid outcomes, never errors. [Project.Warnings] and
// grammar.Table.Unknown report them for callers that want to tell the
// author.
package lsys

// Version information
const (
	// Version is the current version of the module
	Version = "0.3.0"
)
