// Package report renders the Markdown evidence list of a set of modules.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/gsn"
	"github.com/matzehuels/gsnview/pkg/wrap"
)

// Title is the heading of the evidence report.
const Title = "List of Evidence"

// NoEvidence is written when no module contains a solution.
const NoEvidence = "No evidence found."

// textWidth is the wrap width of solution texts.
const textWidth = 70

// Options configure the report.
type Options struct {
	// Layers lists the layer keys printed below each solution.
	Layers []string
}

// Evidence returns the report for modules: every solution, numbered across
// modules in the order they are given, with its text, module, URL and the
// selected layer values.
func Evidence(modules []*gsn.Module, opts Options) string {
	var b strings.Builder
	b.WriteString(Title + "\n")
	b.WriteString(strings.Repeat("=", len(Title)) + "\n\n")

	n := 0
	for _, m := range modules {
		for _, e := range m.Elements {
			if e.Kind != diagram.KindSolution {
				continue
			}
			n++
			writeSolution(&b, n, m, e, opts)
		}
	}
	if n == 0 {
		b.WriteString(NoEvidence + "\n")
	}
	return b.String()
}

// WriteEvidence writes the report to w.
func WriteEvidence(w io.Writer, modules []*gsn.Module, opts Options) error {
	_, err := io.WriteString(w, Evidence(modules, opts))
	return err
}

func writeSolution(b *strings.Builder, n int, m *gsn.Module, e *gsn.Element, opts Options) {
	prefix := fmt.Sprintf("%d. ", n)
	indent := strings.Repeat(" ", len(prefix))

	lines := wrap.Lines(e.Text, textWidth)
	first := ""
	if len(lines) > 0 {
		first, lines = lines[0], lines[1:]
	}
	fmt.Fprintf(b, "%s%s: %s\n\n", prefix, e.ID, first)
	if len(lines) > 0 {
		for _, line := range lines {
			if line == "" {
				b.WriteString("\n")
				continue
			}
			b.WriteString(indent + line + "\n")
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "%sModule: %s\n\n", indent, m.Name)
	if e.URL != "" {
		fmt.Fprintf(b, "%sURL: %s\n\n", indent, e.URL)
	}
	for _, l := range opts.Layers {
		if v, ok := e.Layers[l]; ok {
			fmt.Fprintf(b, "%s%s: %s\n\n", indent, strings.ToUpper(l), v)
		}
	}
}
