package diagram

// Kind is the GSN element kind a node represents. Away nodes report the kind
// of the element they stand in for.
type Kind int

const (
	KindGoal Kind = iota
	KindStrategy
	KindSolution
	KindContext
	KindAssumption
	KindJustification
	KindModule
)

var kindNames = [...]string{
	KindGoal:          "goal",
	KindStrategy:      "strategy",
	KindSolution:      "solution",
	KindContext:       "context",
	KindAssumption:    "assumption",
	KindJustification: "justification",
	KindModule:        "module",
}

// class suffixes used in the gsn<kind> and gsnaway<kind> class names
var kindClasses = [...]string{
	KindGoal:          "goal",
	KindStrategy:      "stgy",
	KindSolution:      "sltn",
	KindContext:       "ctxt",
	KindAssumption:    "asmp",
	KindJustification: "just",
	KindModule:        "module",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Contextual reports whether elements of this kind attach via InContextOf.
func (k Kind) Contextual() bool {
	return k == KindContext || k == KindAssumption || k == KindJustification
}

// CanBeAway reports whether an element of this kind may be referenced from
// another module.
func (k Kind) CanBeAway() bool {
	switch k {
	case KindGoal, KindSolution, KindContext, KindAssumption, KindJustification:
		return true
	}
	return false
}

// Shape selects the geometry family of a node.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeEllipse
	ShapeAway
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeEllipse:
		return "ellipse"
	case ShapeAway:
		return "away"
	}
	return "unknown"
}

// Port is a side of a node's bounding box used as an edge anchor.
type Port int

const (
	North Port = iota
	East
	South
	West
)

func (p Port) String() string {
	switch p {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// Relation is the kind of an edge.
type Relation int

const (
	// SupportedBy links a goal or strategy to the element supporting it.
	// It defines the rank hierarchy and is drawn solid with an arrowhead at
	// the supported end.
	SupportedBy Relation = iota
	// InContextOf attaches a context, assumption or justification to the
	// element it qualifies. It is drawn dashed without arrowhead and does
	// not affect ranks.
	InContextOf
)

func (r Relation) String() string {
	if r == InContextOf {
		return "inContextOf"
	}
	return "supportedBy"
}
