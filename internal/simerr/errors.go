// Package simerr defines the structured error kinds reported by the tagging
// simulation pipeline.
package simerr

import (
	"errors"
	"fmt"
)

// Kind categorizes a pipeline failure.
type Kind string

const (
	// KindInvalidParameter covers negative, non-numeric, or out-of-bounds inputs.
	KindInvalidParameter Kind = "INVALID_PARAMETER"

	// KindEmptyPool means a draw was required from a zero-length resource or tag pool.
	KindEmptyPool Kind = "EMPTY_POOL"

	// KindRenderingFailure means the image artifact could not be produced.
	KindRenderingFailure Kind = "RENDERING_FAILURE"
)

// Sentinels for errors.Is matching against a Kind.
var (
	ErrInvalidParameter = &Error{Kind: KindInvalidParameter}
	ErrEmptyPool        = &Error{Kind: KindEmptyPool}
	ErrRenderingFailure = &Error{Kind: KindRenderingFailure}
)

// Error is a pipeline failure with enough context for the caller to report it
// without exposing wrapped internals.
type Error struct {
	Kind    Kind
	Op      string // pipeline stage, e.g. "simulate"
	Field   string // parameter or pool name, when relevant
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Public()
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Public returns the caller-facing message: kind, field, and message only.
func (e *Error) Public() string {
	switch {
	case e.Field != "" && e.Message != "":
		return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Field, e.Message)
	case e.Message != "":
		return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	default:
		return fmt.Sprintf("[%s]", e.Kind)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same Kind, so the package sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// InvalidParameter builds a KindInvalidParameter error for field.
func InvalidParameter(op, field, format string, args ...any) *Error {
	return &Error{Kind: KindInvalidParameter, Op: op, Field: field, Message: fmt.Sprintf(format, args...)}
}

// EmptyPool builds a KindEmptyPool error for the named pool.
func EmptyPool(op, pool, format string, args ...any) *Error {
	return &Error{Kind: KindEmptyPool, Op: op, Field: pool, Message: fmt.Sprintf(format, args...)}
}

// RenderingFailure wraps a renderer error.
func RenderingFailure(op string, err error) *Error {
	return &Error{Kind: KindRenderingFailure, Op: op, Message: "could not produce graph artifact", Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// PublicMessage returns the caller-safe message for err. Errors outside this
// package collapse to a generic message so internals don't leak.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Public()
	}
	return "internal error"
}
