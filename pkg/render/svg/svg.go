// Package svg serializes a [scene.Scene] as an SVG document.
//
// The document's viewBox is the scene size. Edges that carry an arrow
// reference a single marker defined once in the document defs. Styling is
// class based: a default stylesheet is embedded, and additional stylesheets
// are pulled in with CSS @import rules so users can restyle diagrams
// without touching the generator.
package svg

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/scene"
)

// ArrowMarker is the id of the arrowhead marker.
const ArrowMarker = "gsnarrow"

const defaultCSS = `
    svg { background: white; }
    text { font-family: %s; font-size: %gpx; fill: black; }
    .gsnid { font-weight: bold; }
    .border, .gsnmoduletab { fill: white; stroke: black; stroke-width: 1; }
    .gsnundeveloped { fill: white; stroke: black; stroke-width: 1; }
    .gsnbadge { fill: white; stroke: black; stroke-width: 1; }
    text.gsnbadge { stroke: none; fill: black; }
    .gsnawaymodule .border { fill: #f2f2f2; }
    .gsnedge, .gsninctxt { fill: none; stroke: black; stroke-width: 1; }
    .gsninctxt { stroke-dasharray: 5,3; }
    #gsnarrow path { fill: black; }
    .gsnmoduleborder { fill: none; stroke: #808080; stroke-dasharray: 2,2; }
    text.gsnmoduleborder { fill: #808080; stroke: none; }
    .gsnlegend { fill: #404040; font-size: %gpx; }
    a { cursor: pointer; }`

// Option configures Write.
type Option func(*writer)

type writer struct {
	family string
	size   float64
}

// WithFont sets the font family list and size of the default stylesheet.
func WithFont(family string, size float64) Option {
	return func(w *writer) {
		if family != "" {
			w.family = family
		}
		if size > 0 {
			w.size = size
		}
	}
}

// Write writes s to w as a standalone SVG document.
func Write(w io.Writer, s *scene.Scene, opts ...Option) error {
	wr := writer{family: fonts.FallbackFontFamily, size: fonts.DefaultSize}
	for _, opt := range opts {
		opt(&wr)
	}

	ew := &errWriter{w: w}
	canvas := svgo.New(ew)
	canvas.Startview(s.Width, s.Height, 0, 0, s.Width, s.Height)
	if s.Title != "" {
		canvas.Title(s.Title)
	}
	writeStyle(canvas, wr, s.Stylesheets)
	writeDefs(canvas)
	for _, el := range s.Elements {
		writeElement(canvas, el)
	}
	canvas.End()
	return ew.err
}

// Render returns the SVG document for s.
func Render(s *scene.Scene, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, s, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeStyle(canvas *svgo.SVG, wr writer, sheets []string) {
	var rules []string
	for _, url := range sheets {
		rules = append(rules, fmt.Sprintf("@import url(%q);", url))
	}
	rules = append(rules, fmt.Sprintf(defaultCSS, wr.family, wr.size, wr.size*0.9))
	canvas.Style("text/css", rules...)
}

func writeDefs(canvas *svgo.SVG) {
	canvas.Def()
	canvas.Marker(ArrowMarker, 10, 5, 10, 10, `orient="auto"`, `markerUnits="userSpaceOnUse"`)
	canvas.Path("M 0 0 L 10 5 L 0 10 z")
	canvas.MarkerEnd()
	canvas.DefEnd()
}

func writeElement(canvas *svgo.SVG, el scene.Element) {
	switch e := el.(type) {
	case *scene.Group:
		writeGroup(canvas, e)
	case *scene.Rect:
		if e.RX > 0 {
			canvas.Roundrect(e.X, e.Y, e.W, e.H, e.RX, e.RX, class(e.Class))
		} else {
			canvas.Rect(e.X, e.Y, e.W, e.H, class(e.Class))
		}
	case *scene.Ellipse:
		canvas.Ellipse(e.CX, e.CY, e.RX, e.RY, class(e.Class))
	case *scene.Circle:
		canvas.Circle(e.CX, e.CY, e.R, class(e.Class))
	case *scene.Polygon:
		xs, ys := split(e.Points)
		canvas.Polygon(xs, ys, class(e.Class))
	case *scene.Path:
		xs, ys := split(e.Points)
		attrs := []string{class(e.Class), `fill="none"`}
		if e.Dashed {
			attrs = append(attrs, `stroke-dasharray="5,3"`)
		}
		if e.Arrow {
			attrs = append(attrs, fmt.Sprintf(`marker-end="url(#%s)"`, ArrowMarker))
		}
		canvas.Polyline(xs, ys, attrs...)
	case *scene.Text:
		attrs := []string{class(e.Class), fmt.Sprintf(`text-anchor=%q`, anchor(e.Anchor))}
		if e.Bold {
			attrs = append(attrs, `font-weight="bold"`)
		}
		canvas.Text(e.X, e.Y, e.Text, attrs...)
	}
}

func writeGroup(canvas *svgo.SVG, g *scene.Group) {
	if g.Link != nil {
		canvas.Link(html.EscapeString(g.Link.Href), html.EscapeString(g.Link.Title))
	}
	var attrs []string
	if g.ID != "" {
		attrs = append(attrs, fmt.Sprintf(`id="%s"`, html.EscapeString(g.ID)))
	}
	if len(g.Classes) > 0 {
		attrs = append(attrs, class(strings.Join(g.Classes, " ")))
	}
	canvas.Group(attrs...)
	for _, child := range g.Children {
		writeElement(canvas, child)
	}
	canvas.Gend()
	if g.Link != nil {
		canvas.LinkEnd()
	}
}

// class returns a class attribute. svgo emits arguments containing '=' as
// raw attributes rather than as a style.
func class(c string) string {
	return fmt.Sprintf(`class="%s"`, html.EscapeString(c))
}

func anchor(a scene.Anchor) string {
	switch a {
	case scene.AnchorMiddle:
		return "middle"
	case scene.AnchorEnd:
		return "end"
	default:
		return "start"
	}
}

func split(pts []geom.Point) ([]int, []int) {
	xs, ys := make([]int, len(pts)), make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return xs, ys
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
