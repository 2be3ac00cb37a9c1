// Package pkg provides the core libraries of gsnview, a layout and rendering
// engine for Goal Structuring Notation (GSN) assurance cases.
//
// # Overview
//
// gsnview turns GSN modules written in YAML into layered diagrams: goals at
// the top, the strategies and solutions supporting them below, and context
// elements beside the nodes they qualify. The pkg directory is organized
// into four areas:
//
//  1. Model: [gsn] modules and elements, [diagram] nodes and graphs
//  2. Assembly: [resolve] builds the argument, complete and architecture views
//  3. Geometry: [fonts], [wrap], [layout] and [route] size, place and connect nodes
//  4. Output: [render] scenes, [render/svg], [render/nodelink] and [report]
//
// [pipeline] ties the stages together for the CLI.
//
// # Architecture
//
// The typical data flow:
//
//	GSN YAML files
//	      ↓
//	 [gsn] package (parse, validate)
//	      ↓
//	 [resolve] package (views with away nodes)
//	      ↓
//	 [layout] + [route] packages (ranks, positions, edge paths)
//	      ↓
//	 [render] package (scene) → [render/svg] or [render/nodelink]
//	      ↓
//	 SVG / DOT output
//
// # Quick Start
//
//	m, _ := gsn.Load("main.gsn.yaml")
//	g, _ := resolve.Argument(m, []*gsn.Module{m}, resolve.Options{})
//
//	metrics := fonts.Default()
//	l, _ := layout.Build(g, metrics, layout.Options{})
//	routes := route.Edges(g, l, route.Options{})
//
//	s, _ := render.Compose(g, l, routes, metrics)
//	data, _ := svg.Render(s)
//
// # Supporting Packages
//
// [errors] - Error codes, typed structural errors and the diagnostics
// collector used during validation.
//
// [config] - TOML configuration for layout, font and render settings.
//
// [observability] - Hooks reporting pipeline stages to metrics backends.
//
// [geom] and [scene] - Plain geometry and the drawing primitives shared by
// the renderers.
//
// [buildinfo] - Version information injected at build time.
//
// [gsn]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/gsn
// [diagram]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/diagram
// [resolve]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/resolve
// [fonts]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/fonts
// [wrap]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/wrap
// [layout]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/layout
// [route]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/route
// [render]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/render/nodelink
// [report]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/report
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/observability
// [geom]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/scene
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gsnview/pkg/buildinfo
package pkg
