package validation

import (
	"errors"

	"github.com/zero-day-ai/authid/schema"
)

// Error reports the constraints a record violated.
type Error struct {
	Violations schema.Violations
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "validation failed: " + e.Violations.Error()
}

// Has reports whether the error contains a violation of constraint on field.
func (e *Error) Has(field, constraint string) bool {
	return e.Violations.Has(field, constraint)
}

// Fields returns the distinct field names that failed, in order of first
// appearance.
func (e *Error) Fields() []string {
	seen := make(map[string]bool, len(e.Violations))
	var out []string
	for _, v := range e.Violations {
		if !seen[v.Field] {
			seen[v.Field] = true
			out = append(out, v.Field)
		}
	}
	return out
}

// fromViolations returns nil for an empty list.
func fromViolations(vs schema.Violations) error {
	if len(vs) == 0 {
		return nil
	}
	return &Error{Violations: vs}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
