package diagram

import (
	"slices"
	"testing"

	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/scene"
)

var testMetrics = fonts.Fixed(7, 14)

func TestPortPoint(t *testing.T) {
	centers := []geom.Point{{X: 0, Y: 0}, {X: 100, Y: 50}, {X: -20, Y: 33}}
	sizes := [][2]int{{1, 1}, {2, 2}, {51, 31}, {120, 80}, {7, 200}}
	for _, c := range centers {
		for _, s := range sizes {
			w, h := s[0], s[1]
			want := map[Port]geom.Point{
				North: {X: c.X, Y: c.Y - h/2},
				South: {X: c.X, Y: c.Y + h/2},
				East:  {X: c.X + w/2, Y: c.Y},
				West:  {X: c.X - w/2, Y: c.Y},
			}
			for port, p := range want {
				if got := PortPoint(c, w, h, port); got != p {
					t.Errorf("PortPoint(%v, %d, %d, %v) = %v, want %v", c, w, h, port, got, p)
				}
			}
		}
	}
}

func TestPortPointShapeIndependent(t *testing.T) {
	nodes := []*Node{
		NewGoal("G1", "goal text"),
		NewSolution("Sn1", "evidence"),
		NewAssumption("A1", "assumed"),
		NewAway(KindGoal, "G9", "remote", "other"),
	}
	for _, n := range nodes {
		n.CalculateSize(testMetrics, 20)
		n.SetPosition(geom.Pt(200, 100))
		if got, want := n.PortPoint(North), geom.Pt(200, 100-n.Height()/2); got != want {
			t.Errorf("%s: North = %v, want %v", n.ID(), got, want)
		}
		if got, want := n.PortPoint(East), geom.Pt(200+n.Width()/2, 100); got != want {
			t.Errorf("%s: East = %v, want %v", n.ID(), got, want)
		}
	}
}

func TestClasses(t *testing.T) {
	tests := []struct {
		node *Node
		want []string
	}{
		{NewGoal("G1", ""), []string{"gsnelem", "gsngoal"}},
		{NewStrategy("S1", ""), []string{"gsnelem", "gsnstgy"}},
		{NewSolution("Sn1", ""), []string{"gsnelem", "gsnsltn"}},
		{NewContext("C1", ""), []string{"gsnelem", "gsnctxt"}},
		{NewAssumption("A1", ""), []string{"gsnelem", "gsnasmp"}},
		{NewJustification("J1", ""), []string{"gsnelem", "gsnjust"}},
		{NewModule("main", ""), []string{"gsnelem", "gsnmodule"}},
		{NewAway(KindSolution, "Sn2", "", "m"), []string{"gsnelem", "gsnawaysltn"}},
		{NewGoal("G2", "", WithClasses("critical", "gsn_module_main")), []string{"gsnelem", "gsngoal", "critical", "gsn_module_main"}},
	}
	for _, tt := range tests {
		if got := tt.node.Classes(); !slices.Equal(got, tt.want) {
			t.Errorf("%s: Classes() = %v, want %v", tt.node.ID(), got, tt.want)
		}
	}

	n := NewGoal("G3", "")
	c := n.Classes()
	c[0] = "mutated"
	if n.Classes()[0] != BaseClass {
		t.Error("Classes() exposes internal slice")
	}
}

func TestBadgesAndFlags(t *testing.T) {
	if NewAssumption("A1", "").Badge() != "A" || NewJustification("J1", "").Badge() != "J" {
		t.Error("assumption/justification badges not set")
	}
	if NewGoal("G1", "", WithUndeveloped(true)).Undeveloped() != true {
		t.Error("goal should accept undeveloped")
	}
	if NewModule("m", "", WithUndeveloped(true)).Undeveloped() {
		t.Error("module box must never be undeveloped")
	}
	if NewSolution("Sn1", "", WithUndeveloped(true)).Undeveloped() {
		t.Error("solution must never be undeveloped")
	}
	if got := NewGoal("G1", "", WithRankIncrement(-3)).RankIncrement(); got != 0 {
		t.Errorf("negative rank increment = %d, want 0", got)
	}
}

func TestNewAwayPanicsForStrategy(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewAway(KindStrategy) did not panic")
		}
	}()
	NewAway(KindStrategy, "S1", "", "m")
}

func TestCalculateSize(t *testing.T) {
	n := NewGoal("G1", "The system is acceptably safe to operate")
	if n.Width() != 0 || n.Height() != 0 || n.Sized() {
		t.Fatal("size must be zero before CalculateSize")
	}
	n.CalculateSize(testMetrics, 20)

	lines := n.Lines()
	if len(lines) != 3 {
		t.Fatalf("Lines() = %q, want 3 lines", lines)
	}
	// "The system is" / "acceptably safe to" / "operate": longest 18 chars
	wantW := 18*7 + 2*PadX
	wantH := 4*14 + 2*PadY
	if n.Width() != wantW || n.Height() != wantH {
		t.Errorf("size = %dx%d, want %dx%d", n.Width(), n.Height(), wantW, wantH)
	}
	if n.Degenerate() {
		t.Error("node should not be degenerate")
	}
}

func TestCalculateSizeShapes(t *testing.T) {
	text := "some text here"
	goal := NewGoal("X1", text)
	stgy := NewStrategy("X1", text)
	undev := NewGoal("X1", text, WithUndeveloped(true))
	asmp := NewAssumption("X1", text)
	sltn := NewSolution("X1", text)
	away := NewAway(KindGoal, "X1", text, "module")
	for _, n := range []*Node{goal, stgy, undev, asmp, sltn, away} {
		n.CalculateSize(testMetrics, 40)
	}

	if stgy.Width() != goal.Width()+2*StrategySkew {
		t.Errorf("strategy width %d, want goal width + skew (%d)", stgy.Width(), goal.Width()+2*StrategySkew)
	}
	if undev.Height() != goal.Height()+2*UndevelopedSize {
		t.Errorf("undeveloped height %d, want %d", undev.Height(), goal.Height()+2*UndevelopedSize)
	}
	if asmp.Width() <= goal.Width()-2*PadX || asmp.Height() <= goal.Height() {
		t.Errorf("ellipse %dx%d does not enclose the text box", asmp.Width(), asmp.Height())
	}
	if sltn.Width() != sltn.Height() {
		t.Errorf("solution is not a circle: %dx%d", sltn.Width(), sltn.Height())
	}
	if away.Height() <= goal.Height() {
		t.Errorf("away node height %d should exceed goal height %d", away.Height(), goal.Height())
	}
}

func TestCalculateSizeDegenerate(t *testing.T) {
	for _, m := range []fonts.Metrics{{}, fonts.Fixed(0, 14), fonts.Fixed(7, 0)} {
		n := NewGoal("G1", "text")
		n.CalculateSize(m, 20)
		if !n.Degenerate() {
			t.Errorf("metrics %+v: node not marked degenerate", m)
		}
		if n.Width() != MinWidth || n.Height() != MinHeight {
			t.Errorf("metrics %+v: size %dx%d, want minimum", m, n.Width(), n.Height())
		}
	}

	n := NewGoal("G", "")
	n.CalculateSize(testMetrics, 20)
	if n.Width() < MinWidth || n.Height() < MinHeight {
		t.Errorf("empty label size %dx%d below minimum", n.Width(), n.Height())
	}
}

func TestRenderBeforeSizing(t *testing.T) {
	_, err := NewGoal("G1", "x").Render(testMetrics, geom.Pt(0, 0), "G1")
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Render() error = %v, want INTERNAL_ERROR", err)
	}
}

func TestRender(t *testing.T) {
	n := NewGoal("G.1", "Top claim", WithURL("https://example.org/g1"), WithUndeveloped(true))
	n.CalculateSize(testMetrics, 20)
	n.SetPosition(geom.Pt(100, 100))

	g, err := n.Render(testMetrics, n.Position(), EscapeID(n.ID()))
	if err != nil {
		t.Fatal(err)
	}
	if g.ID != "G_2e_1" {
		t.Errorf("group id = %q", g.ID)
	}
	if g.Link == nil || g.Link.Href != "https://example.org/g1" {
		t.Errorf("group link = %+v", g.Link)
	}
	if !g.HasClass("gsngoal") {
		t.Errorf("group classes = %v", g.Classes)
	}

	var rects, diamonds, texts int
	scene.Walk(g.Children, func(el scene.Element) bool {
		switch v := el.(type) {
		case *scene.Rect:
			rects++
			if v.RX != 0 {
				t.Errorf("goal rect has corner radius %d", v.RX)
			}
		case *scene.Polygon:
			if v.Class == ClassUndeveloped {
				diamonds++
			}
		case *scene.Text:
			texts++
		}
		return true
	})
	if rects != 1 || diamonds != 1 || texts != 2 {
		t.Errorf("rects=%d diamonds=%d texts=%d, want 1 1 2", rects, diamonds, texts)
	}
	if n.Position() != geom.Pt(100, 100) {
		t.Error("Render moved the node")
	}
}

func TestRenderAway(t *testing.T) {
	n := NewAway(KindAssumption, "A7", "assumed elsewhere", "sub", WithModuleURL("sub.svg"))
	n.CalculateSize(testMetrics, 20)

	g, err := n.Render(testMetrics, geom.Pt(50, 50), "A7")
	if err != nil {
		t.Fatal(err)
	}
	var banner *scene.Group
	var badge bool
	scene.Walk(g.Children, func(el scene.Element) bool {
		switch v := el.(type) {
		case *scene.Group:
			if v.HasClass(ClassBanner) {
				banner = v
			}
		case *scene.Text:
			if v.Class == ClassBadge && v.Text == "A" {
				badge = true
			}
		}
		return true
	})
	if banner == nil || banner.Link == nil || banner.Link.Href != "sub.svg" {
		t.Fatalf("module banner = %+v", banner)
	}
	if !badge {
		t.Error("away assumption lacks its badge")
	}
}
