// Package errors provides structured error types for the vi-sketch engine.
//
// Every rejection a command handler can produce carries a machine-readable
// Code, so callers (the terminal front-end, tests) can tell a recoverable
// validation failure from a fatal consistency failure without string matching.
//
// # Error Codes
//
//   - CYCLE: a dependency edge would close a cycle
//   - MISSING_ENTITY: a referenced entity does not exist or was removed
//   - INVALID_GEOMETRY: the requested construction is degenerate
//   - CHANNEL_CLOSED: an event consumer is gone; fatal
//   - INVALID_INPUT / INVALID_CONFIG: malformed caller input
//   - INTERNAL_ERROR: broken invariant
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingEntity, "entity %v not found", e)
//	if errors.Is(err, errors.ErrCodeMissingEntity) {
//	    // surface as a no-op with feedback
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Validation errors, recoverable
	ErrCodeCycle           Code = "CYCLE"
	ErrCodeMissingEntity   Code = "MISSING_ENTITY"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Consistency errors, fatal
	ErrCodeChannelClosed Code = "CHANNEL_CLOSED"
	ErrCodeInternal      Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message without the code prefix for *Error values,
// or the error string as-is for anything else.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Fatal reports whether the error means the document can no longer be kept
// consistent and the process must stop.
func Fatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeChannelClosed, ErrCodeInternal:
		return true
	}
	return false
}
