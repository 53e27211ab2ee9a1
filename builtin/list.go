package builtin

import (
	"fmt"
	"reflect"

	"github.com/randalmurphal/fmtkit/extension"
	"github.com/randalmurphal/fmtkit/format"
)

// ListFormatter renders slices and arrays. The clause is
//
//	item format | separator | last separator | two-item separator
//
// The item format is rendered with each element as its scope; an empty one
// prints the element. The separator defaults to ", ", the last separator to
// the separator, and the two-item separator to the last separator:
//
//	{Tags:list:#{}| }            #a #b #c
//	{Names:list:{}|, | and }     Ann, Bob and Cy
//
// Values that are not slices or arrays are declined.
type ListFormatter struct{}

func (*ListFormatter) Priority() extension.Priority { return extension.Normal }
func (*ListFormatter) Names() []string              { return []string{"list", "l"} }
func (*ListFormatter) CanAutoDetect() bool          { return false }

func (*ListFormatter) Format(info *extension.FormattingInfo) (bool, error) {
	rv := reflect.ValueOf(info.Value)
	if k := rv.Kind(); k != reflect.Slice && k != reflect.Array {
		return false, nil
	}

	var parts []*format.Format
	if info.Format != nil {
		parts = info.Format.Split('|')
		defer format.ReleaseParts(parts)
	}
	at := func(i int) *format.Format {
		if i < len(parts) {
			return parts[i]
		}
		return nil
	}
	item, sep, last, two := at(0), at(1), at(2), at(3)
	if last == nil {
		last = sep
	}
	if two == nil {
		two = last
	}

	n := rv.Len()
	for i := range n {
		if i > 0 {
			spacer := sep
			switch {
			case n == 2:
				spacer = two
			case i == n-1:
				spacer = last
			}
			if spacer == nil {
				info.Write(", ")
			} else if err := info.FormatNested(spacer, info.Value); err != nil {
				return true, err
			}
		}

		elem := rv.Index(i).Interface()
		if item == nil || len(item.Items) == 0 {
			if elem != nil {
				info.Write(fmt.Sprint(elem))
			}
			continue
		}
		if err := info.FormatNested(item, elem); err != nil {
			return true, err
		}
	}
	return true, nil
}
