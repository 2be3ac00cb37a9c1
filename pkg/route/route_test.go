package route

import (
	"testing"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/layout"
)

func build(t *testing.T, nodes []*diagram.Node, edges ...diagram.Edge) (*diagram.Graph, *layout.Layout) {
	t.Helper()
	g := diagram.NewGraph("test")
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range edges {
		g.AddEdge(e.Source, e.Target, e.Rel)
	}
	if err := g.Validate(); err != nil {
		t.Fatal(err)
	}
	l, err := layout.Build(g, fonts.Fixed(7, 14), layout.Options{})
	if err != nil {
		t.Fatal(err)
	}
	return g, l
}

func sb(from, to string) diagram.Edge {
	return diagram.Edge{Source: from, Target: to, Rel: diagram.SupportedBy}
}

func ic(from, to string) diagram.Edge {
	return diagram.Edge{Source: from, Target: to, Rel: diagram.InContextOf}
}

func TestSupportedByPorts(t *testing.T) {
	g, l := build(t,
		[]*diagram.Node{diagram.NewGoal("G1", "Top"), diagram.NewSolution("Sn1", "Evidence")},
		sb("G1", "Sn1"))

	routes := Edges(g, l, Options{})
	if len(routes) != 1 {
		t.Fatalf("len(routes) = %d, want 1", len(routes))
	}
	r := routes[0]
	parent, child := l.Primary("G1"), l.Primary("Sn1")
	if r.From != child || r.To != parent {
		t.Errorf("route runs %s -> %s, want Sn1 -> G1", r.From.ID(), r.To.ID())
	}
	if got, want := r.Start(), child.PortPoint(diagram.North); got != want {
		t.Errorf("Start() = %v, want %v", got, want)
	}
	if got, want := r.End(), parent.PortPoint(diagram.South); got != want {
		t.Errorf("End() = %v, want %v", got, want)
	}
	if len(r.Points) != 2 {
		t.Errorf("straight route has %d points", len(r.Points))
	}
}

func TestContextPorts(t *testing.T) {
	g, l := build(t,
		[]*diagram.Node{
			diagram.NewGoal("G1", "Top", diagram.WithUndeveloped(true)),
			diagram.NewContext("C1", "Context"),
			diagram.NewAssumption("A1", "Assumption"),
		},
		ic("G1", "C1"), ic("G1", "A1"))

	routes := Edges(g, l, Options{})
	if len(routes) != 2 {
		t.Fatalf("len(routes) = %d, want 2", len(routes))
	}
	tests := []struct {
		target   string
		from, to diagram.Port
	}{
		{"C1", diagram.West, diagram.East},
		{"A1", diagram.East, diagram.West},
	}
	for i, tt := range tests {
		r := routes[i]
		if r.To.ID() != tt.target {
			t.Fatalf("route %d targets %s, want %s", i, r.To.ID(), tt.target)
		}
		if r.FromPort != tt.from || r.ToPort != tt.to {
			t.Errorf("%s ports = %v/%v, want %v/%v", tt.target, r.FromPort, r.ToPort, tt.from, tt.to)
		}
		if got, want := r.Start(), r.From.PortPoint(tt.from); got != want {
			t.Errorf("%s start = %v, want %v", tt.target, got, want)
		}
		if got, want := r.End(), r.To.PortPoint(tt.to); got != want {
			t.Errorf("%s end = %v, want %v", tt.target, got, want)
		}
	}
}

func TestSpreadAnchors(t *testing.T) {
	g, l := build(t,
		[]*diagram.Node{
			diagram.NewGoal("G1", "Top"),
			diagram.NewSolution("Sn1", "a"),
			diagram.NewSolution("Sn2", "b"),
			diagram.NewSolution("Sn3", "c"),
		},
		sb("G1", "Sn1"), sb("G1", "Sn2"), sb("G1", "Sn3"))

	routes := Edges(g, l, Options{})
	if len(routes) != 3 {
		t.Fatalf("len(routes) = %d, want 3", len(routes))
	}

	parent := l.Primary("G1")
	b := parent.Bounds()
	w := parent.Node.Width()
	port := parent.PortPoint(diagram.South)
	for k, r := range routes {
		end := r.End()
		want := port.X - w/2 + w*(k+1)/4
		if end.X != want || end.Y != port.Y {
			t.Errorf("anchor %d = %v, want (%d,%d)", k, end, want, port.Y)
		}
		if end.X <= b.Left() || end.X >= b.Right() {
			t.Errorf("anchor %d at x=%d outside (%d,%d)", k, end.X, b.Left(), b.Right())
		}
		if k > 0 && end.X <= routes[k-1].End().X {
			t.Errorf("anchors not ordered left to right: %v", end)
		}
		if got, want := r.Start(), r.From.PortPoint(diagram.North); got != want {
			t.Errorf("single anchor moved: %v, want %v", got, want)
		}
	}
}

func TestContextInstancePerRank(t *testing.T) {
	g, l := build(t,
		[]*diagram.Node{
			diagram.NewGoal("G1", "Top"),
			diagram.NewGoal("G2", "Sub", diagram.WithUndeveloped(true)),
			diagram.NewContext("C1", "Shared"),
		},
		sb("G1", "G2"), ic("G1", "C1"), ic("G2", "C1"))

	var n int
	for _, r := range Edges(g, l, Options{}) {
		if r.Edge.Rel != diagram.InContextOf {
			continue
		}
		n++
		if r.From.Rank != r.To.Rank {
			t.Errorf("%s (rank %d) linked to %s at rank %d", r.From.ID(), r.From.Rank, r.To.ID(), r.To.Rank)
		}
	}
	if n != 2 {
		t.Errorf("context routes = %d, want 2", n)
	}
}

func TestOrthogonal(t *testing.T) {
	g, l := build(t,
		[]*diagram.Node{
			diagram.NewGoal("G1", "Top"),
			diagram.NewSolution("Sn1", "a"),
			diagram.NewSolution("Sn2", "b"),
		},
		sb("G1", "Sn1"), sb("G1", "Sn2"))

	straight := Edges(g, l, Options{})
	ortho := Edges(g, l, Options{Orthogonal: true})
	for i, r := range ortho {
		if len(r.Points) != 4 {
			t.Fatalf("route %d has %d points, want 4", i, len(r.Points))
		}
		if r.Start() != straight[i].Start() || r.End() != straight[i].End() {
			t.Errorf("route %d endpoints changed", i)
		}
		for j := 1; j < len(r.Points); j++ {
			a, b := r.Points[j-1], r.Points[j]
			if a.X != b.X && a.Y != b.Y {
				t.Errorf("route %d segment %d is diagonal: %v -> %v", i, j, a, b)
			}
		}
	}
}

func TestOrthogonalAligned(t *testing.T) {
	pts := orthogonal(geom.Pt(10, 50), geom.Pt(10, 20), diagram.North)
	if len(pts) != 2 {
		t.Errorf("aligned route = %v, want two points", pts)
	}
}
