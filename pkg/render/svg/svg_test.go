package svg

import (
	"errors"
	"strings"
	"testing"

	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/scene"
)

func sample() *scene.Scene {
	node := &scene.Group{
		ID:      "G1",
		Classes: []string{"gsnelem", "gsngoal"},
		Link:    &scene.Link{Href: "https://example.org/?a=1&b=2", Title: "G1"},
	}
	node.Add(
		&scene.Rect{X: 10, Y: 10, W: 80, H: 40, Class: "border"},
		&scene.Text{X: 18, Y: 27, Text: "G1", Bold: true, Class: "gsnid"},
		&scene.Text{X: 18, Y: 41, Text: "a < b & c", Class: "gsntext"},
	)
	s := &scene.Scene{Width: 200, Height: 150, Title: "main", Stylesheets: []string{"custom.css"}}
	s.Add(
		&scene.Path{Points: []geom.Point{geom.Pt(50, 100), geom.Pt(50, 50)}, Arrow: true, Class: "gsnedge"},
		&scene.Path{Points: []geom.Point{geom.Pt(90, 30), geom.Pt(120, 30)}, Dashed: true, Class: "gsninctxt"},
		node,
		&scene.Circle{CX: 50, CY: 120, R: 20, Class: "border"},
		&scene.Ellipse{CX: 150, CY: 120, RX: 30, RY: 15, Class: "border"},
		&scene.Polygon{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 5)}, Class: "gsnundeveloped"},
	)
	return s
}

func TestWrite(t *testing.T) {
	out, err := Render(sample())
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	doc := string(out)

	for _, want := range []string{
		`viewBox="0 0 200 150"`,
		`main</title>`,
		`@import url("custom.css");`,
		`id="` + ArrowMarker + `"`,
		`marker-end="url(#gsnarrow)"`,
		`stroke-dasharray="5,3"`,
		`id="G1"`,
		`class="gsnelem gsngoal"`,
		`xlink:href="https://example.org/?a=1&amp;b=2"`,
		`a &lt; b &amp; c`,
		`text-anchor="start"`,
		`font-weight="bold"`,
		`<circle`,
		`<ellipse`,
		`<polygon`,
		`</svg>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := strings.Count(doc, "marker-end="); n != 1 {
		t.Errorf("marker-end count = %d, want 1", n)
	}
	if strings.Index(doc, "<a ") > strings.Index(doc, `id="G1"`) {
		t.Error("link must wrap the node group")
	}
}

func TestWriteFont(t *testing.T) {
	out, err := Render(&scene.Scene{Width: 10, Height: 10}, WithFont("Courier", 14))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "font-family: Courier; font-size: 14px;") {
		t.Errorf("font not applied:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	if err := Write(failingWriter{}, sample()); err == nil || err.Error() != "disk full" {
		t.Errorf("Write() = %v, want disk full", err)
	}
}
