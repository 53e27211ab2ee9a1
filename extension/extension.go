package extension

import (
	"fmt"
	"reflect"
)

// Priority orders extensions; lower values are asked first.
type Priority int

const (
	Highest Priority = iota
	High
	Normal
	Low
	Lowest
)

var priorityNames = []string{"Highest", "High", "Normal", "Low", "Lowest"}

// String returns the priority name.
func (p Priority) String() string {
	if p >= 0 && int(p) < len(priorityNames) {
		return priorityNames[p]
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// Extension is implemented by every source and formatter.
type Extension interface {
	Priority() Priority
}

// Source resolves selectors.
type Source interface {
	Extension

	// Evaluate resolves info's selector against info.Value. It reports
	// false, nil when the selector does not apply to the value; on success
	// it stores the result with SetResult and reports true.
	Evaluate(info *SelectorInfo) (bool, error)
}

// Formatter renders values.
type Formatter interface {
	Extension

	// Names returns the canonical name followed by any aliases.
	Names() []string

	// CanAutoDetect reports whether the formatter is asked for
	// placeholders that name no formatter.
	CanAutoDetect() bool

	// Format writes info.Value to the output and reports true, or reports
	// false when it cannot handle the value.
	Format(info *FormattingInfo) (bool, error)
}

// KeyLookup is implemented by map-like values.
type KeyLookup interface {
	LookupKey(key string) (any, bool)
}

// MemberLookup is implemented by values exposing named members.
type MemberLookup interface {
	LookupMember(name string, ignoreCase bool) (any, bool)
}

// Formattable is implemented by values that render themselves for a
// format clause.
type Formattable interface {
	FormatText(clause string) (string, error)
}

// Name returns a display name for an extension: the canonical formatter
// name, or the type name for sources.
func Name(ext Extension) string {
	if f, ok := ext.(Formatter); ok {
		if names := f.Names(); len(names) > 0 {
			return names[0]
		}
	}
	return typeOf(ext).String()
}

func typeOf(ext Extension) reflect.Type {
	return reflect.TypeOf(ext)
}
