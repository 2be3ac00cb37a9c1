package pipeline

import (
	"context"

	"github.com/matzehuels/gsnview/pkg/errors"
	"github.com/matzehuels/gsnview/pkg/gsn"
	"github.com/matzehuels/gsnview/pkg/resolve"
)

// Load parses the input files followed by the reference-only files. It
// returns all modules in that order and the number of input modules.
// Two files declaring the same module name are rejected.
func Load(ctx context.Context, inputs, excluded []string) ([]*gsn.Module, int, error) {
	seen := map[string]string{}
	var modules []*gsn.Module
	for _, path := range append(append([]string{}, inputs...), excluded...) {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		m, err := gsn.Load(path)
		if err != nil {
			return nil, 0, err
		}
		if prev, ok := seen[m.Name]; ok {
			return nil, 0, errors.New(errors.ErrCodeInvalidInput,
				"module %s is defined by both %s and %s", m.Name, prev, path)
		}
		seen[m.Name] = path
		modules = append(modules, m)
	}
	return modules, len(inputs), nil
}

// Validate runs every check on the loaded modules and records the findings
// in d: element rules per module, references across modules, duplicate ids,
// the structural checks of each module's argument view (unresolved
// references and cycles), and finally cycles running through several
// modules, which only the union of all modules exposes.
func Validate(modules []*gsn.Module, d *errors.Diagnostics) {
	for _, m := range modules {
		gsn.Validate(m, d)
	}
	gsn.CheckReferences(modules, d)
	resolve.CheckDuplicates(modules, d)
	if d.HasErrors() {
		return
	}
	for _, m := range modules {
		if _, err := resolve.Argument(m, modules, resolve.Options{}); err != nil {
			for _, e := range unjoin(err) {
				d.AddError(e)
			}
		}
	}
	if d.HasErrors() {
		return
	}
	if _, err := resolve.Complete(modules, modules, resolve.Options{}); err != nil {
		for _, e := range unjoin(err) {
			d.AddError(e)
		}
	}
}

// unjoin splits an error built with errors.Join into its parts.
func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
