// Package werrors defines the typed error taxonomy shared by the
// vocabulary, training, query and bilingual layers.
package werrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies why an operation failed, independent of the
// underlying cause.
type Kind int

const (
	// OOV: a required query token is not in vocabulary.
	OOV Kind = iota
	// AllOOV: every token pair, or all sequence tokens, are unknown.
	AllOOV
	// ShapeMismatch: two sequences declared to be aligned have different lengths.
	ShapeMismatch
	// InvalidInput: malformed argument, empty file, or unsatisfiable config.
	InvalidInput
	// IoError: filesystem or format error during load/save/chunking.
	IoError
	// InvariantViolation: internal corruption (bad index, malformed tree).
	InvariantViolation
)

func (k Kind) String() string {
	switch k {
	case OOV:
		return "OOV"
	case AllOOV:
		return "AllOOV"
	case ShapeMismatch:
		return "ShapeMismatch"
	case InvalidInput:
		return "InvalidInput"
	case IoError:
		return "IoError"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned at module boundaries.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a *Error with no wrapped cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Err: errors.New(msg)}
}

// Wrap attaches op/kind context to an existing error, using pkg/errors
// to preserve a stack trace on the wrapped cause.
func Wrap(kind Kind, op string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: errors.Wrap(err, op)}
}

// Wrapf is Wrap with a formatted message prefixed to the cause.
func Wrapf(kind Kind, op string, err error, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: errors.Wrapf(err, format, args...)}
}

// Is reports whether err is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
