package diagram

import (
	"math"
	"slices"
	"unicode/utf8"

	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/wrap"
)

// Geometry constants in pixels.
const (
	PadX            = 8  // horizontal text padding
	PadY            = 6  // vertical text padding
	StrategySkew    = 15 // horizontal offset of the strategy parallelogram
	ContextRadius   = 12 // corner radius of context boxes
	BadgeRadius     = 8  // radius of the A/J badge circle
	UndevelopedSize = 8  // half diagonal of the undeveloped diamond
	BannerPad       = 4  // vertical padding of the away-node module banner
	MinWidth        = 50
	MinHeight       = 30
)

// BaseClass is carried by every element node.
const BaseClass = "gsnelem"

// Node is a typed geometric entity of an argument diagram.
//
// The node's identity, text and classes are fixed at construction. Size is
// set by CalculateSize and position by SetPosition; both are zero before.
type Node struct {
	id      string
	kind    Kind
	shape   Shape
	text    string
	url     string
	classes []string

	undeveloped   bool
	circle        bool
	badge         string
	rankIncrement int

	// away nodes only
	module    string
	moduleURL string

	lines      []string
	width      int
	height     int
	pos        geom.Point
	sized      bool
	positioned bool
	degenerate bool
}

// Option configures a node at construction.
type Option func(*Node)

// WithURL sets the hyperlink of the node.
func WithURL(url string) Option {
	return func(n *Node) { n.url = url }
}

// WithClasses appends user classes after the base and kind classes.
func WithClasses(classes ...string) Option {
	return func(n *Node) { n.classes = append(n.classes, classes...) }
}

// WithUndeveloped marks a goal or strategy as intentionally not developed.
// It has no effect on other kinds.
func WithUndeveloped(undeveloped bool) Option {
	return func(n *Node) {
		if n.shape == ShapeBox && n.kind != KindModule && n.kind != KindContext {
			n.undeveloped = undeveloped
		}
	}
}

// WithRankIncrement pushes the node the given number of ranks further down.
func WithRankIncrement(inc int) Option {
	return func(n *Node) { n.rankIncrement = max(inc, 0) }
}

// WithModuleURL sets the link of an away node's module banner.
func WithModuleURL(url string) Option {
	return func(n *Node) { n.moduleURL = url }
}

func newNode(id, text string, kind Kind, shape Shape, kindClass string, opts []Option) *Node {
	n := &Node{
		id:      id,
		kind:    kind,
		shape:   shape,
		text:    text,
		classes: []string{BaseClass, kindClass},
	}
	switch kind {
	case KindAssumption:
		n.badge = "A"
	case KindJustification:
		n.badge = "J"
	case KindSolution:
		n.circle = true
	}
	for _, opt := range opts {
		opt(n)
	}
	n.classes = slices.Clip(n.classes)
	return n
}

// New creates a concrete node of the given kind.
func New(kind Kind, id, text string, opts ...Option) *Node {
	shape := ShapeBox
	switch kind {
	case KindSolution, KindAssumption, KindJustification:
		shape = ShapeEllipse
	}
	return newNode(id, text, kind, shape, "gsn"+kindClasses[kind], opts)
}

// NewGoal creates a goal: a sharp-cornered box.
func NewGoal(id, text string, opts ...Option) *Node { return New(KindGoal, id, text, opts...) }

// NewStrategy creates a strategy: a parallelogram.
func NewStrategy(id, text string, opts ...Option) *Node {
	return New(KindStrategy, id, text, opts...)
}

// NewSolution creates a solution: a circle.
func NewSolution(id, text string, opts ...Option) *Node {
	return New(KindSolution, id, text, opts...)
}

// NewContext creates a context: a rounded box.
func NewContext(id, text string, opts ...Option) *Node {
	return New(KindContext, id, text, opts...)
}

// NewAssumption creates an assumption: an ellipse with badge "A".
func NewAssumption(id, text string, opts ...Option) *Node {
	return New(KindAssumption, id, text, opts...)
}

// NewJustification creates a justification: an ellipse with badge "J".
func NewJustification(id, text string, opts ...Option) *Node {
	return New(KindJustification, id, text, opts...)
}

// NewModule creates a module box used by the architecture view.
func NewModule(id, text string, opts ...Option) *Node {
	return New(KindModule, id, text, opts...)
}

// NewAway creates a placeholder for element id of the given kind that is
// defined in module. It panics if kind cannot be referenced across modules;
// callers check Kind.CanBeAway first.
func NewAway(kind Kind, id, text, module string, opts ...Option) *Node {
	if !kind.CanBeAway() {
		panic("diagram: kind " + kind.String() + " cannot be an away node")
	}
	n := newNode(id, text, kind, ShapeAway, "gsnaway"+kindClasses[kind], opts)
	n.module = module
	n.circle = false
	return n
}

// ID returns the element id.
func (n *Node) ID() string { return n.id }

// Kind returns the element kind.
func (n *Node) Kind() Kind { return n.kind }

// Shape returns the geometry family.
func (n *Node) Shape() Shape { return n.shape }

// Text returns the unwrapped label text.
func (n *Node) Text() string { return n.text }

// URL returns the node hyperlink, or "".
func (n *Node) URL() string { return n.url }

// Classes returns a copy of the node's style classes.
func (n *Node) Classes() []string { return slices.Clone(n.classes) }

// Undeveloped reports whether the undeveloped marker is drawn.
func (n *Node) Undeveloped() bool { return n.undeveloped }

// Badge returns the single-letter badge of assumptions and justifications.
func (n *Node) Badge() string { return n.badge }

// RankIncrement returns the extra rank offset requested for the node.
func (n *Node) RankIncrement() int { return n.rankIncrement }

// IsAway reports whether the node stands in for an element of another module.
func (n *Node) IsAway() bool { return n.shape == ShapeAway }

// Module returns the defining module of an away node, or "".
func (n *Node) Module() string { return n.module }

// ModuleURL returns the link of an away node's module banner, or "".
func (n *Node) ModuleURL() string { return n.moduleURL }

// Lines returns the wrapped label lines computed by CalculateSize.
func (n *Node) Lines() []string { return slices.Clone(n.lines) }

// Sized reports whether CalculateSize has run.
func (n *Node) Sized() bool { return n.sized }

// Degenerate reports whether the node was given the minimum size because
// the font metrics could not measure text.
func (n *Node) Degenerate() bool { return n.degenerate }

// Width returns the bounding box width (0 before sizing).
func (n *Node) Width() int { return n.width }

// Height returns the bounding box height (0 before sizing).
func (n *Node) Height() int { return n.height }

// SetPosition places the node center at p.
func (n *Node) SetPosition(p geom.Point) {
	n.pos = p
	n.positioned = true
}

// Position returns the node center.
func (n *Node) Position() geom.Point { return n.pos }

// Positioned reports whether SetPosition has been called.
func (n *Node) Positioned() bool { return n.positioned }

// Bounds returns the bounding box at the current position.
func (n *Node) Bounds() geom.Rect { return geom.RectAround(n.pos, n.width, n.height) }

// PortPoint returns the anchor of port at the current position.
func (n *Node) PortPoint(port Port) geom.Point {
	return PortPoint(n.pos, n.width, n.height, port)
}

// PortPoint returns the anchor of port for a w×h box centered at c.
// The result depends on the bounding box only, never on the node shape.
func PortPoint(c geom.Point, w, h int, port Port) geom.Point {
	switch port {
	case North:
		return geom.Point{X: c.X, Y: c.Y - h/2}
	case East:
		return geom.Point{X: c.X + w/2, Y: c.Y}
	case South:
		return geom.Point{X: c.X, Y: c.Y + h/2}
	default:
		return geom.Point{X: c.X - w/2, Y: c.Y}
	}
}

// CalculateSize wraps the label to wrapWidth characters and derives the
// bounding box from the font metrics. With degenerate metrics the node gets
// MinWidth×MinHeight and is marked Degenerate.
func (n *Node) CalculateSize(m fonts.Metrics, wrapWidth int) {
	n.lines = wrap.Lines(n.text, wrapWidth)
	n.sized = true
	n.degenerate = m.Degenerate()
	if n.degenerate {
		n.width, n.height = MinWidth, MinHeight
		return
	}

	w, h := n.contentSize(m)
	switch n.shape {
	case ShapeBox:
		w, h = n.boxSize(m, w, h)
	case ShapeEllipse:
		w, h = n.ellipseSize(w, h)
	case ShapeAway:
		w, h = n.awaySize(m, w, h)
	}
	n.width = max(w, MinWidth)
	n.height = max(h, MinHeight)
}

// contentSize is the extent of the id header plus the wrapped lines.
func (n *Node) contentSize(m fonts.Metrics) (int, int) {
	chars := max(utf8.RuneCountInString(n.id), wrap.Longest(n.lines))
	return m.TextWidth(chars), (1 + len(n.lines)) * m.LineHeight
}

func (n *Node) boxSize(m fonts.Metrics, w, h int) (int, int) {
	w += 2 * PadX
	h += 2 * PadY
	switch n.kind {
	case KindStrategy:
		w += 2 * StrategySkew
	case KindContext:
		w += ContextRadius
	case KindModule:
		h += tabHeight(m)
	}
	if n.undeveloped {
		h += 2 * UndevelopedSize
	}
	return w, h
}

func (n *Node) ellipseSize(w, h int) (int, int) {
	rx := int(math.Ceil(float64(w)/2*math.Sqrt2)) + PadX
	ry := int(math.Ceil(float64(h)/2*math.Sqrt2)) + PadY
	if n.circle {
		r := max(rx, ry)
		return 2 * r, 2 * r
	}
	return 2 * rx, 2 * ry
}

// awaySize stacks the kind's own shape above the module banner.
func (n *Node) awaySize(m fonts.Metrics, w, h int) (int, int) {
	var uw, uh int
	switch n.kind {
	case KindSolution, KindAssumption, KindJustification:
		uw, uh = n.ellipseSize(w, h)
	default:
		uw, uh = n.boxSize(m, w, h)
	}
	bw := m.TextWidth(utf8.RuneCountInString(n.module)) + 2*PadX
	return max(uw, bw), uh + bannerHeight(m)
}

func tabHeight(m fonts.Metrics) int    { return m.LineHeight + PadY }
func bannerHeight(m fonts.Metrics) int { return m.LineHeight + 2*BannerPad }
