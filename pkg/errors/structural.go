package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DuplicateIDError reports an element id defined as a concrete element in
// more than one module of the rendering scope.
type DuplicateIDError struct {
	ID      string
	Modules []string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("element %s is defined in modules %s", e.ID, strings.Join(e.Modules, ", "))
}

// ErrorCode returns ErrCodeDuplicateID.
func (e *DuplicateIDError) ErrorCode() Code { return ErrCodeDuplicateID }

// MissingReferenceError reports an edge endpoint that no loaded module defines.
type MissingReferenceError struct {
	Module string // module containing the reference
	From   string // element declaring the reference
	ID     string // referenced id that could not be found
}

func (e *MissingReferenceError) Error() string {
	if e.From != "" {
		return fmt.Sprintf("element %s in module %s references unknown element %s", e.From, e.Module, e.ID)
	}
	return fmt.Sprintf("module %s references unknown element %s", e.Module, e.ID)
}

// ErrorCode returns ErrCodeUnresolvedReference.
func (e *MissingReferenceError) ErrorCode() Code { return ErrCodeUnresolvedReference }

// CycleError reports a cycle in the SupportedBy relation.
// Path lists the ids forming the cycle in path order, starting with the
// element that was reached twice.
type CycleError struct {
	Module string
	Path   []string
}

func (e *CycleError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("cycle detected in module %s", e.Module)
	}
	cycle := append(append([]string{}, e.Path...), e.Path[0])
	return fmt.Sprintf("cycle detected in module %s: %s", e.Module, strings.Join(cycle, " -> "))
}

// ErrorCode returns ErrCodeCycle.
func (e *CycleError) ErrorCode() Code { return ErrCodeCycle }

// IsStructural reports whether err (or any error it wraps) is a duplicate id,
// unresolved reference or cycle error.
func IsStructural(err error) bool {
	var (
		dup   *DuplicateIDError
		miss  *MissingReferenceError
		cycle *CycleError
	)
	return errors.As(err, &dup) || errors.As(err, &miss) || errors.As(err, &cycle)
}
