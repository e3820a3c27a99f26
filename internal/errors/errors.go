package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig   = "CONFIG"
	ErrShare    = "SHARE"
	ErrKeys     = "KEYS"
	ErrIdentity = "IDENTITY"
	ErrClone    = "CLONE"
	ErrTools    = "TOOLS"
	ErrExec     = "EXEC"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// Wrap wraps an existing error with a message, defaulting to ErrShare code.
func Wrap(err error, message string) *Error {
	return &Error{
		Code:    ErrShare,
		Message: message,
		Cause:   err,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewMissingCredential creates the fatal error raised when a required
// credential field is absent in non-interactive mode.
func NewMissingCredential(field string) *Error {
	return &Error{
		Code:       ErrConfig,
		Message:    fmt.Sprintf("Missing required credential: %s", field),
		Suggestion: fmt.Sprintf("Provide --%s or run without --non-interactive", field),
	}
}

// NewShareUnreachable creates the error raised when the share can't be
// reached or authentication fails.
func NewShareUnreachable(server, share string, cause error) *Error {
	return &Error{
		Code:       ErrShare,
		Message:    fmt.Sprintf("Can't reach //%s/%s", server, share),
		Suggestion: "Check the server address, share name, and credentials",
		Cause:      cause,
	}
}

// NewKeyNotFound creates the per-item error for a requested key that isn't
// in the share listing. Recoverable: callers log it and continue.
func NewKeyNotFound(name string) *Error {
	return &Error{
		Code:       ErrKeys,
		Message:    fmt.Sprintf("Key '%s' not found on share", name),
		Suggestion: "Run 'rig ls' to see what the share actually contains",
	}
}

// Error implements the error interface with formatted output.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	// Include cause if present (why it failed)
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	// Include suggestion if present (how to fix)
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var rigErr *Error
	if errors.As(err, &rigErr) {
		return rigErr.Code == code
	}
	return false
}

// ExitError carries a process exit code from a wrapped external command.
type ExitError struct {
	Code int
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// GetExitCode extracts the exit code from an error chain.
// Returns (code, true) if an ExitError is found, (0, false) otherwise.
func GetExitCode(err error) (int, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, true
	}
	return 0, false
}
