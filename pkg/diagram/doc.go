// Package diagram provides the node and graph model of GSN argument
// diagrams.
//
// # Nodes
//
// A [Node] is a single struct tagged with a [Shape] and a [Kind]:
//
//   - ShapeBox: goals (sharp corners), strategies (parallelogram), contexts
//     (rounded corners) and module boxes (tabbed rectangle). Goals and
//     strategies may carry an undeveloped diamond beneath the box.
//   - ShapeEllipse: assumptions (badge "A"), justifications (badge "J") and
//     solutions (drawn as a circle).
//   - ShapeAway: a placeholder for an element defined in another module,
//     drawn as the kind's shape above a banner naming the module.
//
// Every node goes through the same lifecycle: construction (id, text and
// classes are fixed), [Node.CalculateSize] (wraps the label and sets width
// and height), [Node.SetPosition] (sets the center) and finally
// [Node.Render], which only reads the node.
//
// Port anchors are derived from the bounding box alone:
//
//	North = (x, y-h/2)   South = (x, y+h/2)
//	East  = (x+w/2, y)   West  = (x-w/2, y)
//
// # Graphs
//
// A [Graph] keeps nodes keyed by id in insertion order together with
// SupportedBy and InContextOf edges. [Graph.Validate] checks that every
// endpoint exists and that SupportedBy is acyclic.
package diagram
