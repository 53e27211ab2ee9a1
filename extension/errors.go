package extension

import (
	"errors"
	"fmt"
)

// Sentinel errors for registry operations.
var (
	// ErrDuplicateFormatter indicates a formatter name is already taken.
	ErrDuplicateFormatter = errors.New("formatter name already registered")

	// ErrNoSource indicates no source could evaluate a selector.
	ErrNoSource = errors.New("no source could evaluate the selector")

	// ErrUnknownFormatter indicates a placeholder names an unregistered formatter.
	ErrUnknownFormatter = errors.New("unknown formatter")

	// ErrFormatterDeclined indicates the named formatter did not handle the value.
	ErrFormatterDeclined = errors.New("formatter declined the value")

	// ErrNoFormatter indicates no auto-detecting formatter handled the value.
	ErrNoFormatter = errors.New("no formatter could handle the value")

	// ErrNotExtension indicates a value is neither a Source nor a Formatter.
	ErrNotExtension = errors.New("value is not a source or formatter")
)

// Error wraps an error returned by an extension.
type Error struct {
	Extension string // Extension name or type
	Op        string // Operation that failed ("evaluate", "format")
	Err       error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Extension != "" {
		return fmt.Sprintf("%s %s: %v", e.Extension, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new extension error.
func NewError(extension, op string, err error) *Error {
	return &Error{
		Extension: extension,
		Op:        op,
		Err:       err,
	}
}
