package template

import (
	"errors"
	"fmt"
)

// Sentinel errors for template operations.
var (
	// ErrParse is returned when the template fails to parse.
	ErrParse = errors.New("template parse error")

	// ErrSelector is returned when a selector cannot be evaluated.
	ErrSelector = errors.New("selector error")

	// ErrFormatter is returned when no formatter can render a value.
	ErrFormatter = errors.New("formatter error")

	// ErrNestingDepth is returned when format clauses nest too deeply.
	ErrNestingDepth = errors.New("maximum nesting depth exceeded")
)

// FormattingError describes a placeholder that could not be rendered.
type FormattingError struct {
	Template    string // Full template text
	Placeholder string // Placeholder as written
	Selector    string // Failing selector, empty for formatter errors
	Position    int    // Offset of the failing selector or placeholder
	ValueType   string // Type the selector or formatter was applied to
	Kind        error  // ErrSelector, ErrFormatter or ErrNestingDepth
	Err         error  // Underlying error
}

// Error implements the error interface.
func (e *FormattingError) Error() string {
	if e.Selector != "" {
		return fmt.Sprintf("%v: could not evaluate %q on type %s at position %d in %q: %v",
			e.Kind, e.Selector, e.ValueType, e.Position, e.Template, e.Err)
	}
	return fmt.Sprintf("%v: %s at position %d in %q: %v",
		e.Kind, e.Placeholder, e.Position, e.Template, e.Err)
}

// Unwrap returns the error kind and the underlying error for errors.Is/As.
func (e *FormattingError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Message returns the underlying error text, as written into the output by
// settings.OutputErrorInResult.
func (e *FormattingError) Message() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}
