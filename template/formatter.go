package template

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/randalmurphal/fmtkit/extension"
)

// DefaultFormatterName is the name of the formatter every engine installs.
const DefaultFormatterName = "default"

// defaultFormatter renders nested clauses recursively and everything else
// as text. It handles every value, so it is the last resort of auto
// detection.
type defaultFormatter struct {
	hook ValueFormatter
}

func (*defaultFormatter) Priority() extension.Priority { return extension.Lowest }
func (*defaultFormatter) Names() []string              { return []string{DefaultFormatterName} }
func (*defaultFormatter) CanAutoDetect() bool          { return true }

func (f *defaultFormatter) Format(info *extension.FormattingInfo) (bool, error) {
	if clause := info.Format; clause != nil && clause.HasNested {
		return true, info.FormatNested(clause, info.Value)
	}

	var text string
	if info.Format != nil {
		text = info.Format.Text()
	}
	if f.hook != nil {
		if s, ok := f.hook(info.Value, text); ok {
			info.Write(s)
			return true, nil
		}
	}

	s, err := formatValue(info.Value, text)
	if err != nil {
		return false, err
	}
	info.Write(s)
	return true, nil
}

// formatValue renders v for a format clause. Nil values and nil pointers
// render empty, Formattable values format themselves, times use the clause
// as a layout, a clause with '%' is a fmt format, and anything else prints
// with fmt.Sprint.
func formatValue(v any, clause string) (string, error) {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return "", nil
	}
	switch val := v.(type) {
	case nil:
		return "", nil
	case extension.Formattable:
		return val.FormatText(clause)
	case string:
		if clause == "" {
			return val, nil
		}
	case time.Time:
		if clause != "" {
			return val.Format(clause), nil
		}
	}
	if strings.Contains(clause, "%") {
		return fmt.Sprintf(clause, v), nil
	}
	return fmt.Sprint(v), nil
}
