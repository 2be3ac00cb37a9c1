// Package nodelink renders GSN graphs as Graphviz node-link diagrams.
//
// # Overview
//
// This package is the alternative to the native layout engine: the graph
// is handed to Graphviz, which places the nodes itself. Node shapes
// approximate the GSN notation (parallelograms for strategies, circles for
// solutions, rounded boxes for contexts, tabs for modules).
//
// # Usage
//
// Convert a graph to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// The DOT source can also be written as is and processed with external
// Graphviz tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
