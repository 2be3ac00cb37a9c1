package errors

import "fmt"

// Warning is a non-fatal validation finding.
type Warning struct {
	Module  string
	ID      string
	Message string
}

func (w Warning) String() string {
	if w.ID == "" {
		return fmt.Sprintf("%s: %s", w.Module, w.Message)
	}
	return fmt.Sprintf("%s: %s: %s", w.Module, w.ID, w.Message)
}

// Diagnostics collects errors and warnings across validation passes.
// The zero value is ready to use.
type Diagnostics struct {
	Errors   []error
	Warnings []Warning
}

// AddError records err. Nil errors are ignored.
func (d *Diagnostics) AddError(err error) {
	if err != nil {
		d.Errors = append(d.Errors, err)
	}
}

// AddWarning records a warning for the element id of module.
func (d *Diagnostics) AddWarning(module, id, format string, args ...any) {
	d.Warnings = append(d.Warnings, Warning{Module: module, ID: id, Message: fmt.Sprintf(format, args...)})
}

// Merge appends all findings of other.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
}

// HasErrors reports whether at least one error was recorded.
func (d *Diagnostics) HasErrors() bool { return len(d.Errors) > 0 }

// Err returns nil when no errors were recorded, otherwise a *ValidationError
// summarizing the findings.
func (d *Diagnostics) Err() error {
	if !d.HasErrors() {
		return nil
	}
	return &ValidationError{Errors: d.Errors, Warnings: len(d.Warnings)}
}

// ValidationError is the aggregated result of a failed validation.
// Unwrap exposes every recorded error so errors.As finds typed causes.
type ValidationError struct {
	Errors   []error
	Warnings int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%d errors and %d warnings detected.", len(e.Errors), e.Warnings)
}

// ErrorCode returns ErrCodeValidation.
func (e *ValidationError) ErrorCode() Code { return ErrCodeValidation }

// Unwrap returns the recorded errors.
func (e *ValidationError) Unwrap() []error { return e.Errors }
