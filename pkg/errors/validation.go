package errors

import (
	"regexp"
	"unicode"
)

// ValidateElementID validates an element identifier for safety and correctness.
//
// The validation rules are intentionally conservative:
//   - No empty ids
//   - No control characters or whitespace
//   - Maximum length of 256 characters
func ValidateElementID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "element id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "element id too long (max 256 characters): %.20s...", id)
	}

	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "element id %q contains whitespace or control characters", id)
		}
	}

	return nil
}

// moduleNameRegex matches module names usable in CSS class names and file names.
var moduleNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateModuleName validates a module display name.
// Module names end up in class names (gsn_module_<name>) and output file
// names, so they are restricted to a portable character set.
func ValidateModuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "module name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "module name too long (max 128 characters)")
	}
	if !moduleNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid module name: %q", name)
	}
	return nil
}
