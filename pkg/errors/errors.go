// Package errors provides structured error types for the boardtree tools.
//
// Every failure that leaves the CLI or the HTTP API carries a [Code]. Core packages (node, pcb, layout) return their own sentinel and typed
// errors; the pipeline classifies those into the codes defined here at the
// boundary to callers.
//
// # Error Codes
//
// Codes are grouped into classes (see [Class]) that decide the exit status
// of the CLI and the HTTP status of the server. CYCLE, NO_PARENT and
// UNRESOLVED_POSITION mirror the resolution errors of the pcb and node
// packages.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDesign, "duplicate node key: %s", key)
//	if errors.Is(err, errors.ErrCodeInvalidDesign) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeUnresolvedPosition, origErr, "resolve %s", key)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidDesign Code = "INVALID_DESIGN"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidLayout Code = "INVALID_LAYOUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNodeNotFound Code = "NODE_NOT_FOUND"

	// Structural design errors
	ErrCodeCycle              Code = "CYCLE"
	ErrCodeNoParent           Code = "NO_PARENT"
	ErrCodeUnresolvedPosition Code = "UNRESOLVED_POSITION"

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

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// Class groups codes by who has to act on them.
type Class int

const (
	ClassInternal   Class = iota // a bug or an environment failure
	ClassInput                   // malformed request, flags or file
	ClassNotFound                // a referenced file or node is missing
	ClassStructural              // the design tree itself is wrong
)

var classes = map[Code]Class{
	ErrCodeInvalidInput:       ClassInput,
	ErrCodeInvalidFormat:      ClassInput,
	ErrCodeInvalidPath:        ClassInput,
	ErrCodeUnsupported:        ClassInput,
	ErrCodeInvalidDesign:      ClassStructural,
	ErrCodeInvalidLayout:      ClassStructural,
	ErrCodeCycle:              ClassStructural,
	ErrCodeNoParent:           ClassStructural,
	ErrCodeUnresolvedPosition: ClassStructural,
	ErrCodeNotFound:           ClassNotFound,
	ErrCodeFileNotFound:       ClassNotFound,
	ErrCodeNodeNotFound:       ClassNotFound,
}

// Class returns the group of c. Unknown codes are internal.
func (c Code) Class() Class { return classes[c] }

// ExitCode maps c to a process exit status: 2 for bad input, 3 for missing
// resources, 4 for design errors and 1 otherwise.
func (c Code) ExitCode() int {
	switch c.Class() {
	case ClassInput:
		return 2
	case ClassNotFound:
		return 3
	case ClassStructural:
		return 4
	}
	return 1
}

// IsStructural reports whether code names a design structure error: the
// author must fix the design, retrying cannot help.
func IsStructural(code Code) bool {
	switch code {
	case ErrCodeCycle, ErrCodeNoParent, ErrCodeUnresolvedPosition:
		return true
	}
	return false
}
