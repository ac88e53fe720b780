package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers (and for HTTP mapping at the edge).
type Kind string

const (
	KindValidation   Kind = "validation"    // malformed/out-of-range input, never retried as-is
	KindConflict     Kind = "conflict"      // uniqueness/overlap invariant violated
	KindInvalidState Kind = "invalid_state" // operation not valid for the entity's current state
	KindNotFound     Kind = "not_found"     // referenced entity missing
	KindInternal     Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func Validationf(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

func Conflictf(format string, args ...any) *Error {
	return newf(KindConflict, format, args...)
}

func InvalidStatef(format string, args ...any) *Error {
	return newf(KindInvalidState, format, args...)
}

func NotFoundf(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

// Wrap keeps the cause chain intact so errors.Is/As still work through it.
func Wrap(k Kind, err error, msg string) *Error {
	return &Error{Kind: k, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for plain errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
