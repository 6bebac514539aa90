package authid

import (
	"errors"
	"fmt"

	"github.com/zero-day-ai/authid/mac"
)

// Sentinel errors for codec failures.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrMissingKey indicates no key was supplied.
	ErrMissingKey = mac.ErrMissingKey

	// ErrInvalidKeyLength indicates the key length is outside the variant's
	// accepted range.
	ErrInvalidKeyLength = mac.ErrInvalidKeyLength

	// ErrValidation indicates a field is outside its domain. The wrapped
	// *validation.Error lists every violation.
	ErrValidation = errors.New("invalid fields")

	// ErrStructure indicates an Id that is not well formed.
	ErrStructure = errors.New("malformed ID")

	// ErrAuthentication indicates a tag mismatch. It does not say whether the
	// key or the Id was wrong.
	ErrAuthentication = errors.New("invalid ID [mac]")

	// ErrInternal indicates the codec produced output it could not read back.
	ErrInternal = errors.New("internal codec error")
)

// Error kinds categorize errors by their type.
const (
	KindMissingKey     = "missing_key"
	KindKeyLength      = "key_length"
	KindValidation     = "validation"
	KindStructure      = "structure"
	KindAuthentication = "authentication"
	KindInternal       = "internal"
)

// IDError is a structured error carrying the operation that failed and the
// category of failure.
//
// IDError supports errors.Is against both the sentinels above and another
// *IDError with a matching Kind:
//
//	if errors.Is(err, &authid.IDError{Kind: authid.KindAuthentication}) {
//		// reject
//	}
type IDError struct {
	// Op is the operation that failed (e.g., "DecodeID", "EncodeText").
	Op string

	// Kind categorizes the error (e.g., KindStructure).
	Kind string

	// Err is the underlying error.
	Err error

	// Context provides additional debugging information (optional). It never
	// holds key material.
	Context map[string]any
}

// Error implements the error interface.
func (e *IDError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("authid: %s: %s", e.Op, e.Kind)
	}

	if len(e.Context) > 0 {
		return fmt.Sprintf("authid: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}

	return fmt.Sprintf("authid: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *IDError) Unwrap() error {
	return e.Err
}

// Is matches a target *IDError by Kind (and Op, when the target sets one),
// and otherwise delegates to the wrapped error.
func (e *IDError) Is(target error) bool {
	if target == nil {
		return false
	}

	if t, ok := target.(*IDError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}

	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with ctx merged into its Context.
func (e *IDError) WithContext(ctx map[string]any) *IDError {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		newErr.Context[k] = v
	}
	for k, v := range ctx {
		newErr.Context[k] = v
	}
	return &newErr
}

// KindOf returns the Kind of the first *IDError in err's chain, or "" if
// there is none.
func KindOf(err error) string {
	var ierr *IDError
	if errors.As(err, &ierr) {
		return ierr.Kind
	}
	return ""
}

func keyError(op string, err error) *IDError {
	kind := KindKeyLength
	if errors.Is(err, ErrMissingKey) {
		kind = KindMissingKey
	}
	return &IDError{Op: op, Kind: kind, Err: err}
}

func validationError(op string, err error) *IDError {
	return &IDError{Op: op, Kind: KindValidation, Err: fmt.Errorf("%w: %w", ErrValidation, err)}
}

func structureError(op string, err error) *IDError {
	return &IDError{Op: op, Kind: KindStructure, Err: fmt.Errorf("%w: %w", ErrStructure, err)}
}

func authenticationError(op string) *IDError {
	return &IDError{Op: op, Kind: KindAuthentication, Err: ErrAuthentication}
}

func internalError(op string, err error) *IDError {
	return &IDError{Op: op, Kind: KindInternal, Err: fmt.Errorf("%w: %w", ErrInternal, err)}
}
