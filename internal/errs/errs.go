// Package errs contains the sentinel errors shared across layers so handlers
// can map failures to responses without inspecting message strings.
package errs

import (
	"errors"
	"fmt"
)

// Persistence and network failures carry no sentinel; anything that matches
// neither value below is surfaced as a generic server error.
var (
	// ErrNotFound indicates a referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a malformed identifier or field value.
	ErrInvalidArgument = errors.New("invalid argument")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// NotFoundf builds an error that reads as the given message and matches
// ErrNotFound under errors.Is.
func NotFoundf(format string, args ...any) error {
	return &kindError{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// InvalidArgumentf builds an error that reads as the given message and matches
// ErrInvalidArgument under errors.Is.
func InvalidArgumentf(format string, args ...any) error {
	return &kindError{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)}
}
