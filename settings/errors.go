package settings

import "errors"

// Sentinel errors for settings operations.
var (
	// ErrInvalid is returned when a setting has an invalid value.
	ErrInvalid = errors.New("invalid settings")

	// ErrUnsupportedFile is returned when a settings file has an unknown extension.
	ErrUnsupportedFile = errors.New("unsupported settings file")
)
