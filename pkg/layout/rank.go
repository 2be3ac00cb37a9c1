package layout

import (
	"slices"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/errors"
)

// ranking is the output of phase 1.
type ranking struct {
	rank      map[string]int   // rank of every hierarchy node
	order     map[string]int   // first-discovery index of every hierarchy node
	ctxRanks  map[string][]int // ascending distinct ranks of context-only nodes
	hierarchy []string         // hierarchy nodes in insertion order
	contexts  []string         // context-only nodes in insertion order
	maxRank   int
}

// assignRanks computes longest-path ranks over SupportedBy with Kahn's
// algorithm. Nodes are processed in FIFO order starting from the roots in
// insertion order; a node's rank increment is added once all its parents
// have been processed.
func assignRanks(g *diagram.Graph) (*ranking, error) {
	r := &ranking{
		rank:     make(map[string]int, g.Len()),
		order:    make(map[string]int, g.Len()),
		ctxRanks: map[string][]int{},
	}

	inDegree := make(map[string]int, g.Len())
	queue := make([]string, 0, g.Len())
	discover := func(id string) {
		if _, ok := r.order[id]; !ok {
			r.order[id] = len(r.order)
		}
	}

	for _, n := range g.Nodes() {
		id := n.ID()
		if g.ContextOnly(id) {
			r.contexts = append(r.contexts, id)
			continue
		}
		r.hierarchy = append(r.hierarchy, id)
		inDegree[id] = len(g.Parents(id))
		if inDegree[id] == 0 {
			r.rank[id] = 0
			queue = append(queue, id)
			discover(id)
		}
	}

	processed := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		processed++

		for _, child := range g.Children(curr) {
			discover(child)
			if row := r.rank[curr] + 1; row > r.rank[child] {
				r.rank[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				r.rank[child] += g.Node(child).RankIncrement()
				queue = append(queue, child)
			}
		}
	}

	if processed < len(r.hierarchy) {
		if c := g.FindCycle(); c != nil {
			return nil, c
		}
		return nil, errors.New(errors.ErrCodeInternal, "rank assignment stopped after %d of %d nodes", processed, len(r.hierarchy))
	}

	for _, id := range r.hierarchy {
		r.maxRank = max(r.maxRank, r.rank[id])
	}
	for _, id := range r.contexts {
		ranks := r.contextRanks(g, id, map[string]bool{})
		if len(ranks) == 0 {
			ranks = []int{0}
		}
		r.ctxRanks[id] = ranks
		r.maxRank = max(r.maxRank, ranks[len(ranks)-1])
	}
	return r, nil
}

// contextRanks returns the distinct ranks of the nodes referencing id via
// InContextOf. A referrer that is itself context-only contributes its own
// context ranks; visiting guards against InContextOf loops.
func (r *ranking) contextRanks(g *diagram.Graph, id string, visiting map[string]bool) []int {
	if ranks, ok := r.ctxRanks[id]; ok {
		return ranks
	}
	if visiting[id] {
		return nil
	}
	visiting[id] = true
	defer delete(visiting, id)

	var ranks []int
	for _, ref := range g.Sources(id, diagram.InContextOf) {
		if g.ContextOnly(ref) {
			ranks = append(ranks, r.contextRanks(g, ref, visiting)...)
		} else {
			ranks = append(ranks, r.rank[ref])
		}
	}
	slices.Sort(ranks)
	return slices.Compact(ranks)
}
