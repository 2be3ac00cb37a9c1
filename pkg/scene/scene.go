// Package scene defines the drawable primitives produced by the renderer.
//
// A [Scene] is a plain value tree. It carries no behaviour beyond a few
// helpers for tests and sinks; serialization to a concrete markup lives in
// pkg/render/svg.
package scene

import "github.com/matzehuels/gsnview/pkg/geom"

// Element is one drawable primitive. The set of implementations is closed.
type Element interface {
	element()
}

// Anchor is the horizontal text alignment.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Link is a hyperlink wrapping a group.
type Link struct {
	Href  string
	Title string
}

// Group is a scoped collection of elements, tagged with an id and classes.
type Group struct {
	ID       string
	Classes  []string
	Link     *Link
	Children []Element
}

// Rect is an axis-aligned rectangle with optional corner radius.
type Rect struct {
	X, Y, W, H int
	RX         int
	Class      string
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	CX, CY, RX, RY int
	Class          string
}

// Circle is a circle.
type Circle struct {
	CX, CY, R int
	Class     string
}

// Polygon is a closed shape through Points.
type Polygon struct {
	Points []geom.Point
	Class  string
}

// Path is an open polyline. Dashed and Arrow select the edge style.
type Path struct {
	Points []geom.Point
	Dashed bool
	Arrow  bool
	Class  string
}

// Text is a single line of text whose baseline starts at (X, Y).
type Text struct {
	X, Y   int
	Text   string
	Anchor Anchor
	Bold   bool
	Class  string
}

func (*Group) element()   {}
func (*Rect) element()    {}
func (*Ellipse) element() {}
func (*Circle) element()  {}
func (*Polygon) element() {}
func (*Path) element()    {}
func (*Text) element()    {}

// Scene is a complete drawing with a viewport of Width × Height.
type Scene struct {
	Width, Height int
	Title         string
	Stylesheets   []string
	Elements      []Element
}

// Add appends elements to the top level.
func (s *Scene) Add(els ...Element) {
	s.Elements = append(s.Elements, els...)
}

// Add appends elements to the group.
func (g *Group) Add(els ...Element) {
	g.Children = append(g.Children, els...)
}

// HasClass reports whether the group carries class c.
func (g *Group) HasClass(c string) bool {
	for _, x := range g.Classes {
		if x == c {
			return true
		}
	}
	return false
}

// Walk calls fn for every element in depth-first order, groups before their
// children. Returning false from fn skips a group's children.
func Walk(els []Element, fn func(Element) bool) {
	for _, el := range els {
		if !fn(el) {
			continue
		}
		if g, ok := el.(*Group); ok {
			Walk(g.Children, fn)
		}
	}
}

// Paths returns every Path in the scene.
func (s *Scene) Paths() []*Path {
	var out []*Path
	Walk(s.Elements, func(el Element) bool {
		if p, ok := el.(*Path); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// Groups returns every Group in the scene whose classes include class.
// An empty class matches every group.
func (s *Scene) Groups(class string) []*Group {
	var out []*Group
	Walk(s.Elements, func(el Element) bool {
		if g, ok := el.(*Group); ok && (class == "" || g.HasClass(class)) {
			out = append(out, g)
		}
		return true
	})
	return out
}
