package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/layout"
	"github.com/matzehuels/gsnview/pkg/route"
)

// View is a resolved diagram view ready for rendering.
type View struct {
	// Name is the view identifier: a module name, "complete" or
	// "architecture".
	Name string

	// File is the output file name relative to the output directory.
	File string

	// Brief is shown in the legend.
	Brief string

	// Combined marks the complete view, which draws module borders.
	Combined bool

	Graph *diagram.Graph
}

// Laid is a view after the layout and routing stages.
type Laid struct {
	*View
	Layout *layout.Layout
	Routes []*route.Route
}

// GenerateLayout measures and places the nodes of v and routes its edges.
// Nodes sized with degenerate metrics are reported at warn level.
func GenerateLayout(v *View, m fonts.Metrics, opts layout.Options, ropts route.Options, logger *log.Logger) (*Laid, error) {
	l, err := layout.Build(v.Graph, m, opts)
	if err != nil {
		return nil, err
	}
	if ids := layout.Degenerate(v.Graph); len(ids) > 0 {
		logger.Warn("font metrics are degenerate, using minimum node size",
			"view", v.Name, "nodes", ids)
	}
	logger.Debug("computed layout",
		"view", v.Name,
		"nodes", v.Graph.Len(),
		"ranks", len(l.Ranks),
		"width", l.Width,
		"height", l.Height)

	return &Laid{View: v, Layout: l, Routes: route.Edges(v.Graph, l, ropts)}, nil
}
