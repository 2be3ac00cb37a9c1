package layout

import (
	"slices"

	"github.com/matzehuels/gsnview/pkg/diagram"
)

// orderRanks creates the instances of every rank and orders them left to
// right. Hierarchy nodes keep their discovery order. Context instances are
// then inserted beside the first node of the rank that references them:
// contexts to its left, assumptions and justifications to its right, each
// group in reference order. Instances whose referrers are themselves
// context instances are placed in later sweeps; any left over are appended.
func orderRanks(g *diagram.Graph, r *ranking) [][]*Instance {
	rows := make([][]*Instance, r.maxRank+1)

	hierarchy := slices.Clone(r.hierarchy)
	slices.SortStableFunc(hierarchy, func(a, b string) int { return r.order[a] - r.order[b] })
	for _, id := range hierarchy {
		rank := r.rank[id]
		rows[rank] = append(rows[rank], &Instance{Node: g.Node(id), Rank: rank})
	}

	pending := make([]map[string]*Instance, len(rows))
	pendingOrder := make([][]string, len(rows))
	for _, id := range r.contexts {
		for dup, rank := range r.ctxRanks[id] {
			if pending[rank] == nil {
				pending[rank] = map[string]*Instance{}
			}
			pending[rank][id] = &Instance{Node: g.Node(id), Rank: rank, Dup: dup}
			pendingOrder[rank] = append(pendingOrder[rank], id)
		}
	}

	for rank := range rows {
		rows[rank] = placeContexts(g, rows[rank], pending[rank])
		for _, id := range pendingOrder[rank] {
			if inst, ok := pending[rank][id]; ok {
				rows[rank] = append(rows[rank], inst)
			}
		}
	}
	return rows
}

// placeContexts inserts pending instances beside their referrers in row and
// removes them from pending.
func placeContexts(g *diagram.Graph, row []*Instance, pending map[string]*Instance) []*Instance {
	for progress := true; progress && len(pending) > 0; {
		progress = false
		for i := 0; i < len(row); i++ {
			var left, right []*Instance
			for _, ref := range g.Targets(row[i].ID(), diagram.InContextOf) {
				inst, ok := pending[ref]
				if !ok {
					continue
				}
				delete(pending, ref)
				if inst.Node.Kind() == diagram.KindContext {
					left = append(left, inst)
				} else {
					right = append(right, inst)
				}
			}
			if len(left)+len(right) == 0 {
				continue
			}

			next := make([]*Instance, 0, len(row)+len(left)+len(right))
			next = append(next, row[:i]...)
			next = append(next, left...)
			next = append(next, row[i])
			next = append(next, right...)
			next = append(next, row[i+1:]...)
			row = next
			i += len(left) + len(right)
			progress = true
		}
	}
	return row
}
