package diagram

import (
	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
	"github.com/matzehuels/gsnview/pkg/scene"
)

// Style classes of the primitives inside a node group.
const (
	ClassBorder      = "border"
	ClassID          = "gsnid"
	ClassText        = "gsntext"
	ClassBadge       = "gsnbadge"
	ClassUndeveloped = "gsnundeveloped"
	ClassBanner      = "gsnawaymodule"
	ClassModuleTab   = "gsnmoduletab"
)

// Render draws the node centered at at and returns its group, tagged with
// groupID and the node classes and wrapped in a link when the node has a
// URL. The node itself is not modified.
//
// at and groupID are parameters so that one node can be drawn at several
// places; pass n.Position() and EscapeID(n.ID()) for the primary instance.
func (n *Node) Render(m fonts.Metrics, at geom.Point, groupID string) (*scene.Group, error) {
	if !n.sized {
		return nil, errors.New(errors.ErrCodeInternal, "node %s rendered before sizing", n.id)
	}

	g := &scene.Group{ID: groupID, Classes: n.Classes()}
	if n.url != "" {
		g.Link = &scene.Link{Href: n.url, Title: n.id}
	}

	box := geom.RectAround(at, n.width, n.height)
	switch n.shape {
	case ShapeBox:
		n.renderBox(g, m, box)
	case ShapeEllipse:
		n.renderEllipse(g, m, box)
	case ShapeAway:
		n.renderAway(g, m, box)
	}
	return g, nil
}

func (n *Node) renderBox(g *scene.Group, m fonts.Metrics, box geom.Rect) {
	body := box
	if n.undeveloped {
		body.H -= 2 * UndevelopedSize
	}
	textLeft := body.X + PadX
	textTop := body.Y + PadY

	switch n.kind {
	case KindStrategy:
		g.Add(parallelogram(body, StrategySkew))
		textLeft += StrategySkew
	case KindContext:
		g.Add(&scene.Rect{X: body.X, Y: body.Y, W: body.W, H: body.H, RX: ContextRadius, Class: ClassBorder})
		textLeft += ContextRadius / 2
	case KindModule:
		tab := tabHeight(m)
		g.Add(
			&scene.Rect{X: body.X, Y: body.Y, W: body.W / 3, H: tab, Class: ClassModuleTab},
			&scene.Rect{X: body.X, Y: body.Y + tab, W: body.W, H: body.H - tab, Class: ClassBorder},
			&scene.Text{X: body.X + PadX/2, Y: baseline(body.Y+PadY/2, 0, m), Text: "module", Class: ClassModuleTab},
		)
		textTop += tab
	default:
		g.Add(&scene.Rect{X: body.X, Y: body.Y, W: body.W, H: body.H, Class: ClassBorder})
	}
	n.addText(g, m, textLeft, textTop, scene.AnchorStart)

	if n.undeveloped {
		g.Add(diamond(geom.Point{X: body.Center().X, Y: body.Bottom() + UndevelopedSize}, UndevelopedSize))
	}
}

func (n *Node) renderEllipse(g *scene.Group, m fonts.Metrics, box geom.Rect) {
	c := box.Center()
	if n.circle {
		g.Add(&scene.Circle{CX: c.X, CY: c.Y, R: box.W / 2, Class: ClassBorder})
	} else {
		g.Add(&scene.Ellipse{CX: c.X, CY: c.Y, RX: box.W / 2, RY: box.H / 2, Class: ClassBorder})
	}
	_, h := n.contentSize(m)
	n.addText(g, m, c.X, c.Y-h/2, scene.AnchorMiddle)
	n.addBadge(g, m, box)
}

func (n *Node) renderAway(g *scene.Group, m fonts.Metrics, box geom.Rect) {
	bh := bannerHeight(m)
	upper := geom.Rect{X: box.X, Y: box.Y, W: box.W, H: box.H - bh}
	banner := geom.Rect{X: box.X, Y: upper.Bottom(), W: box.W, H: bh}

	switch n.kind {
	case KindSolution, KindAssumption, KindJustification:
		c := upper.Center()
		g.Add(&scene.Ellipse{CX: c.X, CY: c.Y, RX: upper.W / 2, RY: upper.H / 2, Class: ClassBorder})
		_, h := n.contentSize(m)
		n.addText(g, m, c.X, c.Y-h/2, scene.AnchorMiddle)
	case KindContext:
		g.Add(&scene.Rect{X: upper.X, Y: upper.Y, W: upper.W, H: upper.H, RX: ContextRadius, Class: ClassBorder})
		n.addText(g, m, upper.X+PadX+ContextRadius/2, upper.Y+PadY, scene.AnchorStart)
	default:
		g.Add(&scene.Rect{X: upper.X, Y: upper.Y, W: upper.W, H: upper.H, Class: ClassBorder})
		n.addText(g, m, upper.X+PadX, upper.Y+PadY, scene.AnchorStart)
	}

	mod := &scene.Group{Classes: []string{ClassBanner}}
	if n.moduleURL != "" {
		mod.Link = &scene.Link{Href: n.moduleURL, Title: n.module}
	}
	mod.Add(
		&scene.Rect{X: banner.X, Y: banner.Y, W: banner.W, H: banner.H, Class: ClassBorder},
		&scene.Text{
			X:      banner.Center().X,
			Y:      baseline(banner.Y+BannerPad, 0, m),
			Text:   n.module,
			Anchor: scene.AnchorMiddle,
			Class:  ClassBanner,
		},
	)
	g.Add(mod)
	n.addBadge(g, m, upper)
}

// addText writes the bold id header followed by the wrapped lines.
func (n *Node) addText(g *scene.Group, m fonts.Metrics, x, top int, anchor scene.Anchor) {
	g.Add(&scene.Text{X: x, Y: baseline(top, 0, m), Text: n.id, Anchor: anchor, Bold: true, Class: ClassID})
	for i, line := range n.lines {
		g.Add(&scene.Text{X: x, Y: baseline(top, i+1, m), Text: line, Anchor: anchor, Class: ClassText})
	}
}

func (n *Node) addBadge(g *scene.Group, m fonts.Metrics, box geom.Rect) {
	if n.badge == "" {
		return
	}
	cx, cy := box.Right()-BadgeRadius, box.Bottom()-BadgeRadius
	g.Add(
		&scene.Circle{CX: cx, CY: cy, R: BadgeRadius, Class: ClassBadge},
		&scene.Text{X: cx, Y: cy + m.LineHeight/4, Text: n.badge, Anchor: scene.AnchorMiddle, Bold: true, Class: ClassBadge},
	)
}

// baseline returns the text baseline of line i below top.
func baseline(top, i int, m fonts.Metrics) int {
	return top + (i+1)*m.LineHeight - m.LineHeight/4
}

func parallelogram(r geom.Rect, skew int) *scene.Polygon {
	return &scene.Polygon{
		Points: []geom.Point{
			{X: r.X + skew, Y: r.Y},
			{X: r.Right(), Y: r.Y},
			{X: r.Right() - skew, Y: r.Bottom()},
			{X: r.X, Y: r.Bottom()},
		},
		Class: ClassBorder,
	}
}

func diamond(c geom.Point, d int) *scene.Polygon {
	return &scene.Polygon{
		Points: []geom.Point{
			{X: c.X, Y: c.Y - d},
			{X: c.X + d, Y: c.Y},
			{X: c.X, Y: c.Y + d},
			{X: c.X - d, Y: c.Y},
		},
		Class: ClassUndeveloped,
	}
}
