package scene

import (
	"testing"

	"github.com/matzehuels/gsnview/pkg/geom"
)

func TestWalkAndQueries(t *testing.T) {
	inner := &Group{ID: "G1", Classes: []string{"gsnelem", "gsngoal"}}
	inner.Add(&Rect{W: 10, H: 10}, &Text{Text: "G1"})

	s := &Scene{Width: 100, Height: 100}
	s.Add(
		&Group{ID: "nodes", Children: []Element{inner}},
		&Path{Points: []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 10}}, Arrow: true},
		&Path{Points: []geom.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, Dashed: true},
	)

	if got := len(s.Paths()); got != 2 {
		t.Errorf("Paths() = %d, want 2", got)
	}
	if got := len(s.Groups("")); got != 2 {
		t.Errorf("Groups(\"\") = %d, want 2", got)
	}
	goals := s.Groups("gsngoal")
	if len(goals) != 1 || goals[0].ID != "G1" {
		t.Errorf("Groups(gsngoal) = %v", goals)
	}

	var texts int
	Walk(s.Elements, func(el Element) bool {
		if g, ok := el.(*Group); ok && g.ID == "G1" {
			return false
		}
		if _, ok := el.(*Text); ok {
			texts++
		}
		return true
	})
	if texts != 0 {
		t.Errorf("skipped group children were visited: %d texts", texts)
	}
}
