package diagram

import (
	"slices"

	"github.com/matzehuels/gsnview/pkg/errors"
)

// Edge is a directed relation between two nodes.
//
// Source is the element that declares the relation (the supported goal or
// strategy, or the qualified element); Target is the referenced element.
type Edge struct {
	Source string
	Target string
	Rel    Relation
}

// Graph is the node and edge collection of one diagram view.
//
// Nodes are kept in an arena keyed by id; their insertion order is the
// default tie-break for left-to-right ordering. Edges refer to nodes by id,
// so one node may be referenced from several places.
//
// The zero value is not usable; use NewGraph. A Graph is not safe for
// concurrent use.
type Graph struct {
	module string
	nodes  map[string]*Node
	order  []string
	edges  []Edge
	seen   map[Edge]bool

	out map[Relation]map[string][]string
	in  map[Relation]map[string][]string
}

// NewGraph creates an empty graph for the named module or view.
func NewGraph(module string) *Graph {
	return &Graph{
		module: module,
		nodes:  make(map[string]*Node),
		seen:   make(map[Edge]bool),
		out: map[Relation]map[string][]string{
			SupportedBy: {},
			InContextOf: {},
		},
		in: map[Relation]map[string][]string{
			SupportedBy: {},
			InContextOf: {},
		},
	}
}

// Module returns the module identifier of the graph.
func (g *Graph) Module() string { return g.module }

// AddNode inserts n. Adding a second node with the same id fails with a
// *errors.DuplicateIDError.
func (g *Graph) AddNode(n *Node) error {
	if _, ok := g.nodes[n.id]; ok {
		return &errors.DuplicateIDError{ID: n.id, Modules: []string{g.module}}
	}
	g.nodes[n.id] = n
	g.order = append(g.order, n.id)
	return nil
}

// AddEdge records a relation from source to target. Identical edges are
// recorded once. Endpoints are checked by Validate, not here, so edges may
// be added before the away nodes they point to.
func (g *Graph) AddEdge(source, target string, rel Relation) {
	e := Edge{Source: source, Target: target, Rel: rel}
	if g.seen[e] {
		return
	}
	g.seen[e] = true
	g.edges = append(g.edges, e)
	g.out[rel][source] = append(g.out[rel][source], target)
	g.in[rel][target] = append(g.in[rel][target], source)
}

// Node returns the node with the given id, or nil.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Has reports whether a node with the given id exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int { return len(g.order) }

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Targets returns the ids referenced by id through rel, in edge order.
func (g *Graph) Targets(id string, rel Relation) []string { return g.out[rel][id] }

// Sources returns the ids referencing id through rel, in edge order.
func (g *Graph) Sources(id string, rel Relation) []string { return g.in[rel][id] }

// Children is shorthand for Targets(id, SupportedBy).
func (g *Graph) Children(id string) []string { return g.out[SupportedBy][id] }

// Parents is shorthand for Sources(id, SupportedBy).
func (g *Graph) Parents(id string) []string { return g.in[SupportedBy][id] }

// ContextOnly reports whether id is attached to the diagram through
// InContextOf alone: it is referenced that way and takes part in no
// SupportedBy edge.
func (g *Graph) ContextOnly(id string) bool {
	return len(g.in[InContextOf][id]) > 0 &&
		len(g.in[SupportedBy][id]) == 0 &&
		len(g.out[SupportedBy][id]) == 0
}

// Validate checks the structural invariants: every edge endpoint is a node
// of the graph and SupportedBy is acyclic. It returns the first violation
// as a *errors.MissingReferenceError or *errors.CycleError.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if !g.Has(e.Source) {
			return &errors.MissingReferenceError{Module: g.module, ID: e.Source}
		}
		if !g.Has(e.Target) {
			return &errors.MissingReferenceError{Module: g.module, From: e.Source, ID: e.Target}
		}
	}
	if err := g.FindCycle(); err != nil {
		return err
	}
	return nil
}

// FindCycle searches the SupportedBy relation depth first, keeping the set
// of nodes on the current path. Reaching a node that is already on the path
// yields a *errors.CycleError listing the cycle in path order, starting at
// the revisited node. Roots are visited first, then any node not yet
// reached, both in insertion order.
func (g *Graph) FindCycle() *errors.CycleError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var (
		path  []string
		cycle []string
	)

	var dfs func(id string) bool
	dfs = func(id string) bool {
		color[id] = gray
		path = append(path, id)
		for _, child := range g.Children(id) {
			switch color[child] {
			case white:
				if dfs(child) {
					return true
				}
			case gray:
				start := slices.Index(path, child)
				cycle = slices.Clone(path[start:])
				return true
			}
		}
		path = path[:len(path)-1]
		color[id] = black
		return false
	}

	visit := func(ids []string) bool {
		for _, id := range ids {
			if color[id] == white && dfs(id) {
				return true
			}
		}
		return false
	}

	var roots []string
	for _, id := range g.order {
		if len(g.Parents(id)) == 0 {
			roots = append(roots, id)
		}
	}
	if visit(roots) || visit(g.order) {
		return &errors.CycleError{Module: g.module, Path: cycle}
	}
	return nil
}
