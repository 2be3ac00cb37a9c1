// Package layout places the nodes of a diagram graph.
//
// [Build] runs four phases in order, each over the complete output of the
// previous one:
//
//  0. Measuring: every node wraps its label and computes its size.
//  1. Rank assignment: Kahn's algorithm over SupportedBy edges. Roots are
//     rank 0; every other node is one below its deepest parent plus its own
//     rank increment. Nodes reached only through InContextOf get one
//     instance per distinct rank of the nodes referencing them.
//  2. Within-rank ordering: nodes keep the order in which the walk first
//     reached them; context instances sit directly beside their first
//     referrer in that rank (contexts left, assumptions and justifications
//     right). This is a deterministic heuristic with no crossing
//     minimization.
//  3. Coordinate assignment: ranks are stacked top to bottom and nodes are
//     laid out left to right with fixed gaps, so nodes of one rank never
//     overlap and ranks never overlap vertically.
//
// A cycle in SupportedBy aborts rank assignment with the *errors.CycleError
// found by [diagram.Graph.FindCycle].
package layout
