// Package arrowerr defines the error taxonomy shared by the array model and
// the parquet read/write paths: a small set of error kinds rather than a
// proliferation of error types, so callers can dispatch on Kind without type
// assertions.
package arrowerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind discriminates the handful of ways this module's operations fail.
type Kind int

const (
	// Overflow: an offset would exceed the chosen offset type.
	Overflow Kind = iota
	// NotYetImplemented: a legal combination whose decoder/encoder path
	// has not been written.
	NotYetImplemented
	// OutOfSpec: the input Parquet page violates the Parquet specification.
	OutOfSpec
	// ExternalFormat: bubbled up from the Parquet metadata/codec layer.
	ExternalFormat
)

func (k Kind) String() string {
	switch k {
	case Overflow:
		return "overflow"
	case NotYetImplemented:
		return "not yet implemented"
	case OutOfSpec:
		return "out of spec"
	case ExternalFormat:
		return "external format"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned throughout this module.
type Error struct {
	Kind  Kind
	Msg   string
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Cause }

// New builds an *Error with no wrapped cause.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches cause as context to a newly built *Error, preserving the
// original error in the chain via errors.Wrap, which records a stack trace
// on Cause (printed by formatting Cause with %+v; *Error itself formats
// through Error()).
func Wrap(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: errors.Wrap(cause, "")}
}

// OverflowErr reports that a value could not be represented in an offset type.
func OverflowErr(offsetType string) *Error {
	return New(Overflow, "offset does not fit in %s", offsetType)
}

// NotImplemented reports a legal but unhandled encoding/type combination.
func NotImplemented(desc string) *Error {
	return New(NotYetImplemented, "%s", desc)
}

// Is reports whether err (or something it wraps) is an *Error of kind k.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
