package builtin

import "errors"

// Sentinel errors for built-in formatters.
var (
	// ErrUnknownOption is returned for an option a formatter does not support.
	ErrUnknownOption = errors.New("unknown formatter option")

	// ErrOptionValue is returned when an option value is missing or invalid.
	ErrOptionValue = errors.New("invalid formatter option value")
)
