package builtin

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/randalmurphal/fmtkit/extension"
)

// stringMembers are the members StringSource resolves on string values.
var stringMembers = map[string]func(string) any{
	"ToUpper":    func(s string) any { return strings.ToUpper(s) },
	"ToLower":    func(s string) any { return strings.ToLower(s) },
	"Trim":       func(s string) any { return strings.TrimSpace(s) },
	"TrimStart":  func(s string) any { return strings.TrimLeftFunc(s, unicode.IsSpace) },
	"TrimEnd":    func(s string) any { return strings.TrimRightFunc(s, unicode.IsSpace) },
	"Length":     func(s string) any { return utf8.RuneCountInString(s) },
	"Capitalize": func(s string) any { return capitalize(s) },
	"Fields":     func(s string) any { return strings.Fields(s) },
	"Lines":      func(s string) any { return strings.Split(s, "\n") },
}

// StringSource resolves members of string values.
type StringSource struct{}

func (*StringSource) Priority() extension.Priority { return extension.High }

func (*StringSource) Evaluate(info *extension.SelectorInfo) (bool, error) {
	s, ok := info.Value.(string)
	if !ok {
		return false, nil
	}
	fn, ok := stringMember(info.Text(), info.IgnoreCase)
	if !ok {
		return false, nil
	}
	info.SetResult(fn(s))
	return true, nil
}

func stringMember(name string, ignoreCase bool) (func(string) any, bool) {
	if fn, ok := stringMembers[name]; ok {
		return fn, true
	}
	if ignoreCase {
		for k, fn := range stringMembers {
			if strings.EqualFold(k, name) {
				return fn, true
			}
		}
	}
	return nil, false
}

// capitalize upper-cases the first letter of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// truncate keeps the first maxLen runes of s, the last three replaced by the
// ellipsis when there is room for it.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// wrap wraps text at the specified width, breaking on word boundaries.
// If width <= 0, the string is returned unchanged.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var result strings.Builder
	var lineLen int

	for _, word := range strings.Fields(s) {
		wordLen := utf8.RuneCountInString(word)
		if lineLen+wordLen > width && lineLen > 0 {
			result.WriteString("\n")
			lineLen = 0
		}
		if lineLen > 0 {
			result.WriteString(" ")
			lineLen++
		}
		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}
