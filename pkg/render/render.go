package render

import (
	"cmp"
	"slices"
	"strings"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/layout"
	"github.com/matzehuels/gsnview/pkg/resolve"
	"github.com/matzehuels/gsnview/pkg/route"
	"github.com/matzehuels/gsnview/pkg/scene"
	"github.com/matzehuels/gsnview/pkg/wrap"
)

// Style classes of the primitives emitted outside node groups.
const (
	ClassEdge         = "gsnedge"
	ClassContextEdge  = "gsninctxt"
	ClassModuleBorder = "gsnmoduleborder"
	ClassLegend       = "gsnlegend"
)

// legendWrap is the wrap width of the module brief in the legend.
const legendWrap = 80

// Option configures Compose.
type Option func(*composer)

type composer struct {
	combined    bool
	legend      bool
	version     string
	brief       string
	margin      int
	title       string
	stylesheets []string
}

// WithCombined draws a labelled border around the nodes of every module.
// It is meant for the complete view, whose nodes carry module classes.
func WithCombined() Option { return func(c *composer) { c.combined = true } }

// WithLegend adds the tool version and the module brief under the diagram.
func WithLegend(version, brief string) Option {
	return func(c *composer) { c.legend, c.version, c.brief = true, version, brief }
}

// WithMargin pads the right and bottom of the viewport by m pixels, matching
// the margin the layout left at the top and left.
func WithMargin(m int) Option { return func(c *composer) { c.margin = max(m, 0) } }

// WithTitle sets the scene title. The graph module name is used otherwise.
func WithTitle(t string) Option { return func(c *composer) { c.title = t } }

// WithStylesheets adds stylesheet URLs imported by the sink.
func WithStylesheets(urls ...string) Option {
	return func(c *composer) { c.stylesheets = append(c.stylesheets, urls...) }
}

// Compose builds the scene for g. l must be the layout of g and routes its
// routes; m must be the metrics the nodes were sized with.
func Compose(g *diagram.Graph, l *layout.Layout, routes []*route.Route, m fonts.Metrics, opts ...Option) (*scene.Scene, error) {
	c := composer{}
	for _, opt := range opts {
		opt(&c)
	}

	s := &scene.Scene{
		Width:       l.Width + c.margin,
		Height:      l.Height + c.margin,
		Title:       cmp.Or(c.title, g.Module()),
		Stylesheets: c.stylesheets,
	}

	for _, n := range g.Nodes() {
		if !n.Sized() || !n.Positioned() {
			return nil, errors.New(errors.ErrCodeInternal, "node %s has no geometry", n.ID())
		}
	}

	if c.combined {
		s.Add(moduleBorders(l, m)...)
	}
	for _, r := range routes {
		s.Add(edgePath(r))
	}
	for _, inst := range l.Instances() {
		grp, err := inst.Node.Render(m, inst.Center, inst.GroupID())
		if err != nil {
			return nil, err
		}
		s.Add(grp)
	}
	if c.legend {
		lg, h := legend(c, l, m)
		s.Add(lg)
		s.Height += h
	}
	return s, nil
}

func edgePath(r *route.Route) *scene.Path {
	p := &scene.Path{Points: slices.Clone(r.Points)}
	switch r.Edge.Rel {
	case diagram.InContextOf:
		p.Dashed = true
		p.Class = ClassContextEdge
	default:
		p.Arrow = true
		p.Class = ClassEdge
	}
	return p
}

// moduleBorders returns one border per module class found on the instances,
// in order of first appearance.
func moduleBorders(l *layout.Layout, m fonts.Metrics) []scene.Element {
	prefix := resolve.ModuleClass("")
	bounds := map[string]geom.Rect{}
	var order []string
	for _, inst := range l.Instances() {
		for _, cl := range inst.Node.Classes() {
			name, ok := strings.CutPrefix(cl, prefix)
			if !ok {
				continue
			}
			b, seen := bounds[name]
			if !seen {
				order = append(order, name)
				bounds[name] = inst.Bounds()
				continue
			}
			bounds[name] = b.Union(inst.Bounds())
		}
	}

	pad := diagram.PadX
	var els []scene.Element
	for _, name := range order {
		b := bounds[name]
		grp := &scene.Group{Classes: []string{ClassModuleBorder, resolve.ModuleClass(name)}}
		grp.Add(
			&scene.Rect{X: b.X - pad, Y: b.Y - pad - m.LineHeight, W: b.W + 2*pad, H: b.H + 2*pad + m.LineHeight, Class: ClassModuleBorder},
			&scene.Text{X: b.X - pad/2, Y: b.Y - pad - m.LineHeight/4, Text: name, Bold: true, Class: ClassModuleBorder},
		)
		els = append(els, grp)
	}
	return els
}

const legendID = "_legend"

// legend returns the legend group and the height it adds to the scene.
func legend(c composer, l *layout.Layout, m fonts.Metrics) (*scene.Group, int) {
	lines := []string{"Generated with gsnview " + c.version}
	lines = append(lines, wrap.Lines(c.brief, legendWrap)...)

	// EscapeID never emits '_' followed by a non-hex letter.
	grp := &scene.Group{ID: legendID, Classes: []string{ClassLegend}}
	top := l.Height + c.margin
	for i, line := range lines {
		grp.Add(&scene.Text{
			X:     c.margin,
			Y:     top + (i+1)*m.LineHeight,
			Text:  line,
			Bold:  i == 0,
			Class: ClassLegend,
		})
	}
	return grp, len(lines)*m.LineHeight + c.margin
}
