// Package apperr defines the error taxonomy shared across use cases and the
// HTTP layer: validation failures map to 400, missing entities map to 404,
// anything else is treated as an internal fault.
package apperr

import (
	"errors"
	"fmt"
)

type kind int

const (
	kindValidation kind = iota + 1
	kindNotFound
)

// Error carries a classified, user-presentable message.
type Error struct {
	kind kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Validation builds an error for malformed or missing request input.
func Validation(format string, args ...interface{}) error {
	return &Error{kind: kindValidation, msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an error for a referenced entity that does not exist.
func NotFound(format string, args ...interface{}) error {
	return &Error{kind: kindNotFound, msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err (or anything it wraps) is a validation error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kindValidation
}

// IsNotFound reports whether err (or anything it wraps) is a not-found error.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kindNotFound
}
