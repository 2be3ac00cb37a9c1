package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/gsnview/pkg/diagram"
)

func sample(t *testing.T) *diagram.Graph {
	t.Helper()
	g := diagram.NewGraph("main")
	for _, n := range []*diagram.Node{
		diagram.NewGoal("G1", "The system is safe", diagram.WithURL("https://example.org")),
		diagram.NewStrategy("S1", "Argue over hazards"),
		diagram.NewSolution("Sn1", "Hazard log"),
		diagram.NewContext("C1", "Context"),
		diagram.NewAssumption("A1", "Assumed"),
		diagram.NewGoal("G2", "Open", diagram.WithUndeveloped(true)),
		diagram.NewAway(diagram.KindGoal, "G9", "Remote", "other"),
	} {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	g.AddEdge("G1", "S1", diagram.SupportedBy)
	g.AddEdge("S1", "Sn1", diagram.SupportedBy)
	g.AddEdge("S1", "G2", diagram.SupportedBy)
	g.AddEdge("S1", "G9", diagram.SupportedBy)
	g.AddEdge("G1", "C1", diagram.InContextOf)
	g.AddEdge("S1", "A1", diagram.InContextOf)
	return g
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sample(t), Options{})

	tests := []struct {
		name string
		want string
	}{
		{"header", `digraph "main" {`},
		{"goal", `"G1" [label="G1", shape=box, URL="https://example.org"];`},
		{"strategy", `"S1" [label="S1", shape=parallelogram];`},
		{"solution", `"Sn1" [label="Sn1", shape=circle];`},
		{"context", `"C1" [label="C1", shape=box, style="rounded,filled"];`},
		{"assumption", `"A1" [label="A1", shape=ellipse, xlabel="A"];`},
		{"undeveloped", `"G2" [label="G2", shape=box, xlabel="◇"];`},
		{"away", `"G9" [label="G9\n[other]", shape=box, style="filled", peripheries=2];`},
		{"support", `"G1" -> "S1" [dir=back];`},
		{"context edge", `"G1" -> "C1" [style=dashed, arrowhead=empty];`},
		{"same rank", `{ rank=same; "G1"; "C1"; }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(dot, tt.want) {
				t.Errorf("DOT missing %s\n%s", tt.want, dot)
			}
		})
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sample(t), Options{Detailed: true, WrapWidth: 10})
	if want := `label="S1\nArgue over\nhazards"`; !strings.Contains(dot, want) {
		t.Errorf("DOT missing %s\n%s", want, dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := string(normalizeViewBox([]byte("<svg/>"))); got != "<svg/>" {
		t.Errorf("without viewBox = %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	out, err := RenderSVG(context.Background(), ToDOT(sample(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(out), "<svg") || !strings.Contains(string(out), "G1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
