// Package route computes edge anchor points and routes for a laid-out
// diagram.
//
// SupportedBy edges run from the North port of the supporting (child) node
// to the South port of the supported (parent) node; the arrowhead is drawn
// at the end. InContextOf edges connect the qualified node to the context
// instance in the same rank: the node further right uses its West port and
// the other its East port. Horizontally aligned nodes fall back to
// South/North like hierarchy edges.
//
// When several routes attach to the same port of the same instance, their
// anchors are spread evenly along that side of the bounding box in the
// order of the opposite endpoints, so no two routes share an anchor.
package route

import (
	"cmp"
	"slices"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/layout"
)

// Options configure routing.
type Options struct {
	// Orthogonal emits four-point routes with a single bend pair instead
	// of straight segments.
	Orthogonal bool
}

// Route is the geometry of one drawn edge.
type Route struct {
	Edge     diagram.Edge
	From, To *layout.Instance
	FromPort diagram.Port
	ToPort   diagram.Port
	Points   []geom.Point // at least two
}

// Start returns the first point.
func (r *Route) Start() geom.Point { return r.Points[0] }

// End returns the last point.
func (r *Route) End() geom.Point { return r.Points[len(r.Points)-1] }

// Edges routes every edge of g over the instances of l. Context edges
// produce one route per pair of instances sharing a rank.
func Edges(g *diagram.Graph, l *layout.Layout, opts Options) []*Route {
	var routes []*Route
	for _, e := range g.Edges() {
		switch e.Rel {
		case diagram.SupportedBy:
			parent, child := l.Primary(e.Source), l.Primary(e.Target)
			if parent == nil || child == nil {
				continue
			}
			routes = append(routes, &Route{
				Edge: e, From: child, To: parent, FromPort: diagram.North, ToPort: diagram.South,
			})
		case diagram.InContextOf:
			for _, from := range l.InstancesOf(e.Source) {
				to := l.Instance(e.Target, from.Rank)
				if to == nil {
					to = l.Primary(e.Target)
				}
				if to == nil {
					continue
				}
				fp, tp := contextPorts(from, to)
				routes = append(routes, &Route{Edge: e, From: from, To: to, FromPort: fp, ToPort: tp})
			}
		}
	}

	spread(routes)
	if opts.Orthogonal {
		for _, r := range routes {
			r.Points = orthogonal(r.Points[0], r.Points[1], r.FromPort)
		}
	}
	return routes
}

func contextPorts(from, to *layout.Instance) (diagram.Port, diagram.Port) {
	switch {
	case from.Center.X < to.Center.X:
		return diagram.East, diagram.West
	case from.Center.X > to.Center.X:
		return diagram.West, diagram.East
	case from.Center.Y <= to.Center.Y:
		return diagram.South, diagram.North
	default:
		return diagram.North, diagram.South
	}
}

type anchorKey struct {
	inst *layout.Instance
	port diagram.Port
}

type anchor struct {
	route    *Route
	end      int // 0 for the start point, 1 for the end point
	opposite geom.Point
	seq      int
}

// spread sets the two points of every route, distributing anchors that
// share an (instance, port) along the side: the k-th of n anchors on a
// side of length L sits at offset -L/2 + L*(k+1)/(n+1) from the port point.
func spread(routes []*Route) {
	groups := map[anchorKey][]anchor{}
	var keys []anchorKey
	add := func(k anchorKey, a anchor) {
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], a)
	}

	for i, r := range routes {
		from, to := r.From.PortPoint(r.FromPort), r.To.PortPoint(r.ToPort)
		r.Points = []geom.Point{from, to}
		add(anchorKey{r.From, r.FromPort}, anchor{route: r, end: 0, opposite: to, seq: 2 * i})
		add(anchorKey{r.To, r.ToPort}, anchor{route: r, end: 1, opposite: from, seq: 2*i + 1})
	}

	for _, k := range keys {
		as := groups[k]
		n := len(as)
		if n < 2 {
			continue
		}
		vertical := k.port == diagram.North || k.port == diagram.South
		slices.SortFunc(as, func(a, b anchor) int {
			if vertical {
				if c := cmp.Compare(a.opposite.X, b.opposite.X); c != 0 {
					return c
				}
			} else if c := cmp.Compare(a.opposite.Y, b.opposite.Y); c != 0 {
				return c
			}
			return cmp.Compare(a.seq, b.seq)
		})

		length := k.inst.Node.Height()
		if vertical {
			length = k.inst.Node.Width()
		}
		for i, a := range as {
			offset := -length/2 + length*(i+1)/(n+1)
			p := &a.route.Points[a.end]
			if vertical {
				p.X += offset
			} else {
				p.Y += offset
			}
		}
	}
}

// orthogonal turns a straight segment into a route with two bends, leaving
// start vertically for North/South ports and horizontally otherwise.
func orthogonal(start, end geom.Point, port diagram.Port) []geom.Point {
	if start.X == end.X || start.Y == end.Y {
		return []geom.Point{start, end}
	}
	if port == diagram.North || port == diagram.South {
		mid := (start.Y + end.Y) / 2
		return []geom.Point{start, {X: start.X, Y: mid}, {X: end.X, Y: mid}, end}
	}
	mid := (start.X + end.X) / 2
	return []geom.Point{start, {X: mid, Y: start.Y}, {X: mid, Y: end.Y}, end}
}
