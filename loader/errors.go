package loader

import "errors"

// Sentinel errors for template sets.
var (
	// ErrNotFound is returned when no template has the requested name.
	ErrNotFound = errors.New("template not found")

	// ErrDuplicateName is returned when two files map to the same name.
	ErrDuplicateName = errors.New("duplicate template name")
)
