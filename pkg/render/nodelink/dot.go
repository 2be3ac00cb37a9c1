package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/wrap"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the wrapped element text in node labels.
	// When false, only the element id is shown.
	Detailed bool

	// WrapWidth is the label wrap width in characters when Detailed is set.
	WrapWidth int
}

// ToDOT converts a diagram graph to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
//
// SupportedBy edges point from the supported element to its support, with
// the arrowhead drawn at the supported end. InContextOf edges are dashed
// and keep a context-only target in the rank of the element it qualifies.
func ToDOT(g *diagram.Graph, opts Options) string {
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = 32
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.Module())
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=filled, fillcolor=white, fontname=\"Go Mono\", fontsize=12, margin=\"0.15,0.08\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes() {
		label := fmtLabel(n, opts)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID(), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		switch e.Rel {
		case diagram.SupportedBy:
			fmt.Fprintf(&buf, "  %q -> %q [dir=back];\n", e.Source, e.Target)
		case diagram.InContextOf:
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=empty];\n", e.Source, e.Target)
			if g.ContextOnly(e.Target) {
				fmt.Fprintf(&buf, "  { rank=same; %q; %q; }\n", e.Source, e.Target)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *diagram.Node, opts Options) string {
	label := n.ID()
	if opts.Detailed {
		if lines := wrap.Lines(n.Text(), opts.WrapWidth); len(lines) > 0 {
			label += "\n" + strings.Join(lines, "\n")
		}
	}
	if n.IsAway() {
		label += "\n[" + n.Module() + "]"
	}
	return label
}

// shape maps a node kind to the closest Graphviz shape.
func shape(n *diagram.Node) string {
	switch n.Kind() {
	case diagram.KindStrategy:
		return "parallelogram"
	case diagram.KindSolution:
		return "circle"
	case diagram.KindAssumption, diagram.KindJustification:
		return "ellipse"
	case diagram.KindModule:
		return "tab"
	default:
		return "box"
	}
}

func fmtAttrs(n *diagram.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label), "shape=" + shape(n)}
	switch {
	case n.Kind() == diagram.KindContext:
		attrs = append(attrs, "style=\"rounded,filled\"")
	case n.IsAway():
		attrs = append(attrs, "style=\"filled\"", "peripheries=2")
	}
	if b := n.Badge(); b != "" {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", b))
	}
	if n.Undeveloped() {
		attrs = append(attrs, "xlabel=\"◇\"")
	}
	if u := n.URL(); u != "" {
		attrs = append(attrs, fmt.Sprintf("URL=%q", u))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz root element with one whose
// viewBox starts at the origin, keeping the xlink namespace for node URLs.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(root))
}
