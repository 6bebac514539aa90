package validation

import (
	"errors"
)

// Validator checks a field record.
type Validator interface {
	Validate(v any) error
}

// Func adapts a function to the Validator interface.
type Func func(v any) error

// Validate implements Validator.
func (f Func) Validate(v any) error { return f(v) }

// Chain runs every validator in order and merges their violations into a
// single *Error. A validator returning any other error stops the chain.
func Chain(validators ...Validator) Validator {
	return Func(func(v any) error {
		var merged []*Error
		for _, val := range validators {
			if val == nil {
				continue
			}
			err := val.Validate(v)
			if err == nil {
				continue
			}
			var verr *Error
			if !errors.As(err, &verr) {
				return err
			}
			merged = append(merged, verr)
		}

		if len(merged) == 0 {
			return nil
		}
		out := &Error{}
		for _, e := range merged {
			out.Violations = append(out.Violations, e.Violations...)
		}
		return out
	})
}
