// Package errors gives carousel failures a machine-readable [Code].
//
// The CLI prints [UserMessage], the HTTP server maps the code to a status, and
// library callers branch with [Is]:
//
//	if errors.IsConfiguration(err) {
//	    // a layout pass could not run; keep the previous targets
//	}
//
// CONFIGURATION_ERROR marks a fatal layout precondition such as an unmeasured
// item. The INVALID_* codes mark rejected input.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an [Error].
type Code string

const (
	ErrCodeConfiguration Code = "CONFIGURATION_ERROR"

	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidScene  Code = "INVALID_SCENE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

// Invalid reports whether c is one of the INVALID_* input codes.
func (c Code) Invalid() bool { return strings.HasPrefix(string(c), "INVALID_") }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// UserMessage renders err for people: the code prefix is dropped.
func UserMessage(err error) string {
	e, ok := outermost(err)
	if !ok {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// IsConfiguration reports whether err is a fatal layout precondition failure.
func IsConfiguration(err error) bool { return Is(err, ErrCodeConfiguration) }
