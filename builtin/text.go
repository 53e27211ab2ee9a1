package builtin

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/fmtkit/extension"
	"github.com/randalmurphal/fmtkit/pool"
)

// TextFormatter applies string transforms listed in its options, in order:
//
//	{Body:text(trim, wrap=60, indent=4):}
//	{Summary:text(truncate=20):}
//	{Note:text(default):n/a}
//
// Options: upper, lower, trim, capitalize, wrap=N, indent=N, json (render
// the value as indented JSON) and default (render the clause when the text
// is empty). Length limits count runes: truncate=N cuts the end,
// truncate-start=N the start and truncate-middle=N the middle; smart=N cuts
// at a sentence or word boundary and lines=N keeps the first N lines.
type TextFormatter struct{}

type textOp struct {
	name string
	arg  int
}

func (*TextFormatter) Priority() extension.Priority { return extension.Normal }
func (*TextFormatter) Names() []string              { return []string{"text"} }
func (*TextFormatter) CanAutoDetect() bool          { return false }

func (*TextFormatter) Format(info *extension.FormattingInfo) (bool, error) {
	ops, err := parseTextOptions(info.FormatterOptions())
	if err != nil {
		return false, err
	}

	var s string
	var useDefault bool
	for _, op := range ops {
		if op.name == "json" {
			if s, err = encodeJSON(info.Value); err != nil {
				return false, err
			}
			break
		}
	}
	if s == "" && info.Value != nil {
		s = fmt.Sprint(info.Value)
	}

	for _, op := range ops {
		switch op.name {
		case "upper":
			s = strings.ToUpper(s)
		case "lower":
			s = strings.ToLower(s)
		case "trim":
			s = strings.TrimSpace(s)
		case "capitalize":
			s = capitalize(s)
		case "truncate":
			s = truncate(s, op.arg)
		case "truncate-start":
			s = truncateStart(s, op.arg)
		case "truncate-middle":
			s = truncateMiddle(s, op.arg)
		case "smart":
			s = truncateSmart(s, op.arg)
		case "lines":
			s = truncateLines(s, op.arg)
		case "wrap":
			s = wrap(s, op.arg)
		case "indent":
			s = indent(s, op.arg)
		case "default":
			useDefault = true
		}
	}

	if s == "" && useDefault && info.Format != nil {
		return true, info.FormatNested(info.Format, info.Value)
	}
	info.Write(s)
	return true, nil
}

var textArgs = map[string]bool{
	"upper":           false,
	"lower":           false,
	"trim":            false,
	"capitalize":      false,
	"json":            false,
	"default":         false,
	"truncate":        true,
	"truncate-start":  true,
	"truncate-middle": true,
	"smart":           true,
	"lines":           true,
	"wrap":            true,
	"indent":          true,
}

// parseTextOptions parses "name[=N], ..." lists.
func parseTextOptions(opts string) ([]textOp, error) {
	var ops []textOp
	for _, field := range strings.Split(opts, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		name, value, hasValue := strings.Cut(field, "=")
		name = strings.ToLower(strings.TrimSpace(name))

		needsArg, known := textArgs[name]
		if !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOption, name)
		}
		op := textOp{name: name}
		if needsArg {
			if !hasValue {
				return nil, fmt.Errorf("%w: %s needs a number", ErrOptionValue, name)
			}
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: %s=%s", ErrOptionValue, name, value)
			}
			op.arg = n
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// encodeJSON renders v as indented JSON without HTML escaping, so template
// output keeps characters such as '<' and '&' readable.
func encodeJSON(v any) (string, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: json: %w", ErrOptionValue, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// indent prefixes every non-blank line with n spaces.
func indent(s string, n int) string {
	if n == 0 {
		return s
	}
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
