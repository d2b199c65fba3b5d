// Package errors carries the coded errors that autofeyn reports to users.
//
// Every error that leaves a package boundary is an [*Error] with a [Code].
// The CLI picks its exit status from the code and the HTTP server picks the
// response status, so callers test codes rather than messages:
//
//	if errors.Is(err, errors.ErrCodeSessionExpired) {
//	    // start a new session
//	}
//
// Codes starting with INVALID_ mark problems with what the user asked for.
// They are raised before any search starts. [IsInvalid] groups them.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error identifier.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidName   Code = "INVALID_NAME"
	ErrCodeInvalidCursor Code = "INVALID_CURSOR"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// ErrCodeIllegalPair means the pairing engine tried to join two legs
	// that are not conjugate. It signals a bug, never bad input.
	ErrCodeIllegalPair Code = "ILLEGAL_PAIR"

	ErrCodeSessionNotFound Code = "SESSION_NOT_FOUND"
	ErrCodeSessionExpired  Code = "SESSION_EXPIRED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

var invalid = map[Code]bool{
	ErrCodeInvalidInput:  true,
	ErrCodeInvalidName:   true,
	ErrCodeInvalidCursor: true,
	ErrCodeInvalidConfig: true,
}

// Error pairs a Code with a message and, optionally, the error that caused it.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	s := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error that records cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsInvalid reports whether err was caused by bad user input.
func IsInvalid(err error) bool {
	return invalid[GetCode(err)]
}

// UserMessage renders err for people: messages of the chain joined by ": ",
// without codes.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
