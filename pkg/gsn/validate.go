package gsn

import (
	"slices"

	"github.com/matzehuels/gsnview/pkg/diagram"
	"github.com/matzehuels/gsnview/pkg/errors"
)

// Validate checks the rules that can be decided within one module and
// records findings in d. References to ids the module does not define are
// left to the resolver.
func Validate(m *Module, d *errors.Diagnostics) {
	for _, e := range m.Elements {
		validateElement(m, e, d)
	}
}

func validateElement(m *Module, e *Element, d *errors.Diagnostics) {
	relational := e.Kind == diagram.KindGoal || e.Kind == diagram.KindStrategy
	if !relational && (len(e.SupportedBy) > 0 || len(e.InContextOf) > 0) {
		d.AddError(errors.New(errors.ErrCodeInvalidReference,
			"%s: element %s: a %s cannot be supported or put into context", m.Name, e.ID, e.Kind))
		return
	}

	for _, ref := range e.SupportedBy {
		if ref == e.ID {
			d.AddError(errors.New(errors.ErrCodeInvalidReference, "%s: element %s supports itself", m.Name, e.ID))
			continue
		}
		if t := m.Element(ref); t != nil && !CanSupport(e.Kind, t.Kind) {
			d.AddError(errors.New(errors.ErrCodeInvalidReference,
				"%s: element %s: a %s cannot be supported by %s %s", m.Name, e.ID, e.Kind, t.Kind, ref))
		}
	}
	for _, ref := range e.InContextOf {
		if t := m.Element(ref); t != nil && !t.Kind.Contextual() {
			d.AddError(errors.New(errors.ErrCodeInvalidReference,
				"%s: element %s: %s %s cannot be used as context", m.Name, e.ID, t.Kind, ref))
		}
	}

	if !relational {
		return
	}
	switch {
	case e.Undeveloped && len(e.SupportedBy) > 0:
		d.AddError(errors.New(errors.ErrCodeInvalidInput,
			"%s: element %s is marked undeveloped but has supporting elements", m.Name, e.ID))
	case !e.Undeveloped && len(e.SupportedBy) == 0:
		d.AddWarning(m.Name, e.ID, "element is neither supported nor marked undeveloped")
	}
}

// CanSupport reports whether an element of kind parent may be supported by
// an element of kind child.
func CanSupport(parent, child diagram.Kind) bool {
	switch parent {
	case diagram.KindGoal:
		return child == diagram.KindGoal || child == diagram.KindStrategy || child == diagram.KindSolution
	case diagram.KindStrategy:
		return child == diagram.KindGoal
	}
	return false
}

// CheckReferences records warnings that need the whole set of loaded
// modules: elements other than goals that nothing references, and modules
// with more than one top-level goal.
func CheckReferences(modules []*Module, d *errors.Diagnostics) {
	referenced := map[string]bool{}
	supported := map[string]bool{}
	for _, m := range modules {
		for _, e := range m.Elements {
			for _, ref := range e.SupportedBy {
				referenced[ref] = true
				supported[ref] = true
			}
			for _, ref := range e.InContextOf {
				referenced[ref] = true
			}
		}
	}

	for _, m := range modules {
		var roots []string
		for _, e := range m.Elements {
			if e.Kind == diagram.KindGoal {
				if !supported[e.ID] {
					roots = append(roots, e.ID)
				}
				continue
			}
			if !referenced[e.ID] {
				d.AddWarning(m.Name, e.ID, "element is not referenced by any other element")
			}
		}
		if len(roots) > 1 {
			slices.Sort(roots)
			d.AddWarning(m.Name, "", "module has %d top-level goals: %v", len(roots), roots)
		}
	}
}
