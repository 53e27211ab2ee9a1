package settings

import (
	"fmt"
	"strings"
)

// ErrorAction selects how parse and format errors are handled.
type ErrorAction int

const (
	// ThrowError returns the error to the caller.
	ThrowError ErrorAction = iota

	// OutputErrorInResult writes an inline error marker and continues.
	OutputErrorInResult

	// Ignore drops the failing placeholder and continues.
	Ignore

	// MaintainTokens writes the failing placeholder unmodified and continues.
	MaintainTokens
)

var errorActionNames = []string{"ThrowError", "OutputErrorInResult", "Ignore", "MaintainTokens"}

// String returns the action name.
func (a ErrorAction) String() string {
	return enumName(errorActionNames, int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a ErrorAction) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Names are case-insensitive.
func (a *ErrorAction) UnmarshalText(text []byte) error {
	i, err := parseEnum("error action", errorActionNames, string(text))
	if err != nil {
		return err
	}
	*a = ErrorAction(i)
	return nil
}

// CaseSensitivity selects how selector and formatter names are matched.
type CaseSensitivity int

const (
	// CaseSensitive matches names exactly.
	CaseSensitive CaseSensitivity = iota

	// CaseInsensitive matches names with Unicode case folding.
	CaseInsensitive
)

var caseSensitivityNames = []string{"CaseSensitive", "CaseInsensitive"}

// String returns the mode name.
func (c CaseSensitivity) String() string {
	return enumName(caseSensitivityNames, int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c CaseSensitivity) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CaseSensitivity) UnmarshalText(text []byte) error {
	i, err := parseEnum("case sensitivity", caseSensitivityNames, string(text))
	if err != nil {
		return err
	}
	*c = CaseSensitivity(i)
	return nil
}

// EscapeMode selects how literal braces are written in templates.
type EscapeMode int

const (
	// EscapeBoth accepts backslash escapes everywhere and doubled braces in
	// the root format.
	EscapeBoth EscapeMode = iota

	// EscapeBackslash accepts only backslash escapes (\{ \} \n ...).
	EscapeBackslash

	// EscapeDoubledBraces accepts only {{ and }} in the root format.
	EscapeDoubledBraces
)

var escapeModeNames = []string{"Both", "Backslash", "DoubledBraces"}

// String returns the mode name.
func (m EscapeMode) String() string {
	return enumName(escapeModeNames, int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m EscapeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *EscapeMode) UnmarshalText(text []byte) error {
	i, err := parseEnum("escape mode", escapeModeNames, string(text))
	if err != nil {
		return err
	}
	*m = EscapeMode(i)
	return nil
}

// Backslash reports whether backslash escapes are recognized.
func (m EscapeMode) Backslash() bool {
	return m == EscapeBoth || m == EscapeBackslash
}

// DoubledBraces reports whether {{ and }} are recognized.
func (m EscapeMode) DoubledBraces() bool {
	return m == EscapeBoth || m == EscapeDoubledBraces
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("Unknown(%d)", i)
	}
	return names[i]
}

func parseEnum(kind string, names []string, s string) (int, error) {
	for i, name := range names {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q (want one of %s)", ErrInvalid, kind, s, strings.Join(names, ", "))
}
