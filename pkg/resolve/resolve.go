// Package resolve assembles diagram graphs from parsed GSN modules.
//
// Three views are supported:
//
//   - [Argument]: the elements of one module. References into other loaded
//     modules become away nodes.
//   - [Complete]: the union of several modules, each node tagged with the
//     class gsn_module_<name>.
//   - [Architecture]: one box per module, connected where elements of one
//     module reference elements of another.
//
// Every assembled graph is checked with [diagram.Graph.Validate] before it
// is returned, so callers only ever see graphs whose endpoints all resolve
// and whose SupportedBy relation is acyclic.
package resolve

import (
	stderrors "errors"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/gsn"
)

// CompleteView is the module identifier of graphs built by Complete.
const CompleteView = "complete"

// ArchitectureView is the module identifier of graphs built by Architecture.
const ArchitectureView = "architecture"

// Options control view assembly.
type Options struct {
	// Outputs maps module names to the output file of their argument view.
	// Away nodes pointing into a module listed here link to that file.
	Outputs map[string]string

	// Layers lists element layer keys whose values are appended to the
	// node text.
	Layers []string
}

// ModuleClass returns the class carried by nodes of module name in the
// complete view.
func ModuleClass(name string) string { return "gsn_module_" + name }

// CheckDuplicates records a *errors.DuplicateIDError for every id defined
// as a concrete element in more than one of modules.
func CheckDuplicates(modules []*gsn.Module, d *errors.Diagnostics) {
	owners := map[string][]string{}
	var order []string
	for _, m := range modules {
		for _, e := range m.Elements {
			if len(owners[e.ID]) == 0 {
				order = append(order, e.ID)
			}
			owners[e.ID] = append(owners[e.ID], m.Name)
		}
	}
	for _, id := range order {
		if len(owners[id]) > 1 {
			d.AddError(&errors.DuplicateIDError{ID: id, Modules: owners[id]})
		}
	}
}

// Argument builds the argument view of m. loaded holds every parsed module
// (m may be among them) and is searched for elements m references but does
// not define.
func Argument(m *gsn.Module, loaded []*gsn.Module, opts Options) (*diagram.Graph, error) {
	b := newBuilder(m.Name, []*gsn.Module{m}, loaded, opts, false)
	return b.build()
}

// Complete builds one graph containing every element of scope. References
// to elements of loaded modules outside scope become away nodes.
func Complete(scope, loaded []*gsn.Module, opts Options) (*diagram.Graph, error) {
	b := newBuilder(CompleteView, scope, loaded, opts, true)
	return b.build()
}

// Architecture builds the module overview: one module box per module and
// one edge per (module, module, relation) triple that some element
// reference induces. References that no module resolves are ignored here;
// the argument views report them.
//
// Modules may support each other while their elements stay acyclic. A
// SupportedBy edge that would close a cycle between modules is left out of
// the overview, so the first edge in module order wins.
func Architecture(modules []*gsn.Module, opts Options) (*diagram.Graph, error) {
	g := diagram.NewGraph(ArchitectureView)
	owner := map[string]string{}
	for _, m := range modules {
		var o []diagram.Option
		if out := opts.Outputs[m.Name]; out != "" {
			o = append(o, diagram.WithURL(out))
		}
		if err := g.AddNode(diagram.NewModule(m.Name, m.Brief, o...)); err != nil {
			return nil, err
		}
		for _, e := range m.Elements {
			if _, ok := owner[e.ID]; !ok {
				owner[e.ID] = m.Name
			}
		}
	}

	for _, m := range modules {
		for _, e := range m.Elements {
			for _, ref := range e.SupportedBy {
				if o, ok := owner[ref]; ok && o != m.Name && !reaches(g, o, m.Name) {
					g.AddEdge(m.Name, o, diagram.SupportedBy)
				}
			}
			for _, ref := range e.InContextOf {
				if o, ok := owner[ref]; ok && o != m.Name {
					g.AddEdge(m.Name, o, diagram.InContextOf)
				}
			}
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// reaches reports whether to can be reached from from over SupportedBy
// edges of g.
func reaches(g *diagram.Graph, from, to string) bool {
	seen := map[string]bool{from: true}
	stack := []string{from}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == to {
			return true
		}
		for _, next := range g.Children(id) {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

type builder struct {
	g        *diagram.Graph
	scope    []*gsn.Module
	loaded   []*gsn.Module
	opts     Options
	complete bool

	inScope map[string]bool
	errs    []error
}

func newBuilder(name string, scope, loaded []*gsn.Module, opts Options, complete bool) *builder {
	b := &builder{
		g:        diagram.NewGraph(name),
		scope:    scope,
		loaded:   loaded,
		opts:     opts,
		complete: complete,
		inScope:  map[string]bool{},
	}
	for _, m := range scope {
		b.inScope[m.Name] = true
	}
	return b
}

func (b *builder) build() (*diagram.Graph, error) {
	for _, m := range b.scope {
		for _, e := range m.Elements {
			b.addElement(m, e)
		}
	}
	for _, m := range b.scope {
		for _, e := range m.Elements {
			b.addRelations(m, e)
		}
	}
	if err := stderrors.Join(b.errs...); err != nil {
		return nil, err
	}
	if err := b.g.Validate(); err != nil {
		return nil, err
	}
	return b.g, nil
}

func (b *builder) addElement(m *gsn.Module, e *gsn.Element) {
	var extra []string
	if b.complete {
		extra = append(extra, ModuleClass(m.Name))
	}
	if err := b.g.AddNode(b.node(e, extra)); err != nil {
		var dup *errors.DuplicateIDError
		if stderrors.As(err, &dup) {
			dup.Modules = b.definingModules(e.ID)
		}
		b.errs = append(b.errs, err)
	}
}

func (b *builder) node(e *gsn.Element, extra []string) *diagram.Node {
	opts := []diagram.Option{
		diagram.WithClasses(append(append([]string{}, e.Classes...), extra...)...),
		diagram.WithUndeveloped(e.Undeveloped),
		diagram.WithRankIncrement(e.RankIncrement),
	}
	if e.URL != "" {
		opts = append(opts, diagram.WithURL(e.URL))
	}
	return diagram.New(e.Kind, e.ID, b.text(e), opts...)
}

// text appends the selected layer values to the element text.
func (b *builder) text(e *gsn.Element) string {
	var layers []string
	for _, l := range b.opts.Layers {
		if v, ok := e.Layers[l]; ok {
			layers = append(layers, fmt.Sprintf("%s: %s", strings.ToUpper(l), v))
		}
	}
	if len(layers) == 0 {
		return e.Text
	}
	return e.Text + "\n\n" + strings.Join(layers, "\n")
}

func (b *builder) addRelations(m *gsn.Module, e *gsn.Element) {
	for _, ref := range e.SupportedBy {
		if b.ensure(m, e, ref, diagram.SupportedBy) {
			b.g.AddEdge(e.ID, ref, diagram.SupportedBy)
		}
	}
	for _, ref := range e.InContextOf {
		if b.ensure(m, e, ref, diagram.InContextOf) {
			b.g.AddEdge(e.ID, ref, diagram.InContextOf)
		}
	}
}

// ensure makes ref available in the graph, adding an away node when it is
// defined outside the scope. It reports false after recording an error.
func (b *builder) ensure(m *gsn.Module, from *gsn.Element, ref string, rel diagram.Relation) bool {
	if b.g.Has(ref) {
		return true
	}

	owner, target := b.lookup(ref)
	if target == nil {
		b.errs = append(b.errs, &errors.MissingReferenceError{Module: m.Name, From: from.ID, ID: ref})
		return false
	}
	if !target.Kind.CanBeAway() {
		b.errs = append(b.errs, errors.New(errors.ErrCodeInvalidReference,
			"%s: element %s: %s %s of module %s cannot be referenced from another module",
			m.Name, from.ID, target.Kind, ref, owner.Name))
		return false
	}
	if ok := rel == diagram.SupportedBy && gsn.CanSupport(from.Kind, target.Kind) ||
		rel == diagram.InContextOf && target.Kind.Contextual(); !ok {
		b.errs = append(b.errs, errors.New(errors.ErrCodeInvalidReference,
			"%s: element %s: %s %s of module %s is not a valid %s target",
			m.Name, from.ID, target.Kind, ref, owner.Name, rel))
		return false
	}

	opts := []diagram.Option{}
	if b.complete {
		opts = append(opts, diagram.WithClasses(ModuleClass(owner.Name)))
	}
	if out := b.opts.Outputs[owner.Name]; out != "" {
		opts = append(opts,
			diagram.WithModuleURL(out),
			diagram.WithURL(out+"#"+diagram.EscapeID(ref)))
	} else if target.URL != "" {
		opts = append(opts, diagram.WithURL(target.URL))
	}
	away := diagram.NewAway(target.Kind, ref, b.text(target), owner.Name, opts...)
	if err := b.g.AddNode(away); err != nil {
		b.errs = append(b.errs, err)
		return false
	}
	return true
}

// lookup finds the first loaded module outside the scope defining id.
func (b *builder) lookup(id string) (*gsn.Module, *gsn.Element) {
	for _, m := range b.loaded {
		if b.inScope[m.Name] {
			continue
		}
		if e := m.Element(id); e != nil {
			return m, e
		}
	}
	return nil, nil
}

func (b *builder) definingModules(id string) []string {
	var names []string
	for _, m := range b.scope {
		if m.Has(id) {
			names = append(names, m.Name)
		}
	}
	slices.Sort(names)
	return names
}
