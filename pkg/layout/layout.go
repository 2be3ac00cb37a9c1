package layout

import (
	"strconv"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/fonts"
	"github.com/matzehuels/gsnview/pkg/geom"
)

// Align selects the horizontal placement of each rank.
type Align int

const (
	// AlignLeft starts every rank at the left margin.
	AlignLeft Align = iota
	// AlignCenter centers every rank within the widest rank.
	AlignCenter
)

// Default spacing in pixels and default wrap width in characters.
const (
	DefaultWrapWidth = 32
	DefaultHGap      = 20
	DefaultVGap      = 40
	DefaultMargin    = 20
)

// Options configure Build.
type Options struct {
	WrapWidth int // characters per label line
	HGap      int // horizontal gap between nodes of a rank
	VGap      int // vertical gap between ranks
	Margin    int // distance of the first rank and first node from the origin
	Align     Align
}

// SetDefaults fills zero fields with the package defaults.
func (o *Options) SetDefaults() {
	if o.WrapWidth <= 0 {
		o.WrapWidth = DefaultWrapWidth
	}
	if o.HGap <= 0 {
		o.HGap = DefaultHGap
	}
	if o.VGap <= 0 {
		o.VGap = DefaultVGap
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
}

// Instance is one rendered position of a node. Context nodes referenced
// from several ranks have one instance per rank; all other nodes have
// exactly one.
type Instance struct {
	Node   *diagram.Node
	Rank   int
	Center geom.Point

	// Dup numbers the instances of one node from 0 (the primary, at the
	// lowest rank) upwards.
	Dup int
}

// ID returns the id of the underlying node.
func (i *Instance) ID() string { return i.Node.ID() }

// Bounds returns the bounding box of the instance.
func (i *Instance) Bounds() geom.Rect {
	return geom.RectAround(i.Center, i.Node.Width(), i.Node.Height())
}

// PortPoint returns the anchor of port for this instance.
func (i *Instance) PortPoint(port diagram.Port) geom.Point {
	return diagram.PortPoint(i.Center, i.Node.Width(), i.Node.Height(), port)
}

// GroupID returns the scene group id: the escaped node id for the primary
// instance, with a suffix that EscapeID never produces for the others.
func (i *Instance) GroupID() string {
	id := diagram.EscapeID(i.Node.ID())
	if i.Dup == 0 {
		return id
	}
	return id + "_x" + strconv.Itoa(i.Dup)
}

// Layout is the result of Build.
type Layout struct {
	// Ranks lists the instances of every rank, left to right. Ranks that a
	// rank increment skipped are empty.
	Ranks [][]*Instance

	// Width is the maximum right edge, Height the bottom edge of the last
	// rank.
	Width, Height int

	byID map[string][]*Instance
}

// Instances returns all instances, rank by rank, left to right.
func (l *Layout) Instances() []*Instance {
	var out []*Instance
	for _, r := range l.Ranks {
		out = append(out, r...)
	}
	return out
}

// InstancesOf returns the instances of node id ordered by rank.
func (l *Layout) InstancesOf(id string) []*Instance { return l.byID[id] }

// Primary returns the primary instance of node id, or nil.
func (l *Layout) Primary(id string) *Instance {
	if is := l.byID[id]; len(is) > 0 {
		return is[0]
	}
	return nil
}

// Instance returns the instance of node id at rank, or nil.
func (l *Layout) Instance(id string, rank int) *Instance {
	for _, i := range l.byID[id] {
		if i.Rank == rank {
			return i
		}
	}
	return nil
}

// RankOf returns the rank of the primary instance of id, or -1.
func (l *Layout) RankOf(id string) int {
	if p := l.Primary(id); p != nil {
		return p.Rank
	}
	return -1
}

// Build measures and places every node of g. It sets the size of every node
// and the position of every node's primary instance.
func Build(g *diagram.Graph, m fonts.Metrics, opts Options) (*Layout, error) {
	opts.SetDefaults()

	for _, n := range g.Nodes() {
		n.CalculateSize(m, opts.WrapWidth)
	}

	r, err := assignRanks(g)
	if err != nil {
		return nil, err
	}
	l := &Layout{byID: make(map[string][]*Instance, g.Len())}
	l.Ranks = orderRanks(g, r)
	for _, row := range l.Ranks {
		for _, inst := range row {
			l.byID[inst.ID()] = append(l.byID[inst.ID()], inst)
		}
	}
	for _, n := range g.Nodes() {
		if len(l.byID[n.ID()]) == 0 {
			return nil, errors.New(errors.ErrCodeInternal, "node %s was not placed", n.ID())
		}
	}

	l.assignCoordinates(opts)
	for _, n := range g.Nodes() {
		n.SetPosition(l.Primary(n.ID()).Center)
	}
	return l, nil
}

// Degenerate returns the ids of nodes sized with degenerate metrics.
func Degenerate(g *diagram.Graph) []string {
	var ids []string
	for _, n := range g.Nodes() {
		if n.Degenerate() {
			ids = append(ids, n.ID())
		}
	}
	return ids
}
