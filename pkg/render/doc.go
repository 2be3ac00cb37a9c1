// Package render turns a laid-out diagram into a [scene.Scene].
//
// # Overview
//
// [Compose] is the last phase of the pipeline. It reads the sized and
// positioned nodes of a [diagram.Graph], the instances of a [layout.Layout]
// and the routes computed by [route.Edges], and emits drawable primitives:
//
//   - one group per node instance, carrying the escaped node id, the node
//     classes and an optional hyperlink
//   - one path per route, dashed for InContextOf and arrowed for SupportedBy
//   - optional module borders for the complete view and a legend under the
//     diagram
//
// Compose never changes the geometry it is given. Nodes that were not
// measured are reported as internal errors.
//
// # Sinks
//
// Scenes are serialized by the sub-packages:
//
//	s, err := render.Compose(g, l, routes, metrics, render.WithLegend(version, brief))
//	err = svg.Write(w, s)
//
// The [nodelink] subpackage bypasses the native layout entirely and hands
// the graph to Graphviz.
//
// [svg]: github.com/matzehuels/gsnview/pkg/render/svg
// [nodelink]: github.com/matzehuels/gsnview/pkg/render/nodelink
package render
