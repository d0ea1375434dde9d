// Package errors provides structured error types for autolink.
//
// Every failure that can abort a run carries a machine-readable [Code] so the
// CLI and the orchestrator can decide how to propagate it:
//   - Validation errors (MANIFEST_MISMATCH, CIRCULAR_DEPENDENCY,
//     UNRESOLVABLE_GRAPH, ...) are raised before any external command runs
//     and always abort the invocation.
//   - EXTERNAL_TOOL_MISSING aborts the schedule at the point of detection.
//   - EXTERNAL_COMMAND_FAILED is fatal in link mode and logged-and-skipped in
//     install and clean modes.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeManifestMismatch, "%s should be %s", declared, expected)
//	if errors.Is(err, errors.ErrCodeManifestMismatch) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidManifest, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidManifest Code = "INVALID_MANIFEST"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	// Workspace and graph errors
	ErrCodeManifestMismatch      Code = "MANIFEST_MISMATCH"
	ErrCodePackageNotFound       Code = "PACKAGE_NOT_FOUND"
	ErrCodeUnknownDependency     Code = "UNKNOWN_DEPENDENCY"
	ErrCodeCircularDependency    Code = "CIRCULAR_DEPENDENCY"
	ErrCodeUnresolvableGraph     Code = "UNRESOLVABLE_GRAPH"
	ErrCodeExternalToolMissing   Code = "EXTERNAL_TOOL_MISSING"
	ErrCodeExternalCommandFailed Code = "EXTERNAL_COMMAND_FAILED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// Is reports whether any *Error in err's chain has the given code.
// Unlike a single errors.As, it keeps unwrapping past outer errors with a
// different code, so a tool-missing failure wrapped by a schedule error is
// still recognised.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatalForSchedule reports whether err must stop a tolerant (install or
// clean) schedule. Only a missing tool qualifies; individual command failures
// are tolerated there.
func IsFatalForSchedule(err error) bool {
	return Is(err, ErrCodeExternalToolMissing)
}
