package builtin

import (
	"reflect"

	"github.com/randalmurphal/fmtkit/extension"
	"github.com/randalmurphal/fmtkit/format"
)

// ConditionalFormatter chooses one branch of a "|"-separated clause:
//
//	{Active:cond:on|off}               bools: true, false
//	{Count:cond:none|one|many}         integers: the value picks the branch, clamped to the last
//	{Name:cond:hello {}|anonymous}     anything else: set, then nil or empty
//
// A clause with one branch renders it for set values and nothing otherwise.
// The chosen branch is rendered with the value as its scope.
type ConditionalFormatter struct{}

func (*ConditionalFormatter) Priority() extension.Priority { return extension.Normal }
func (*ConditionalFormatter) Names() []string              { return []string{"cond", "conditional"} }
func (*ConditionalFormatter) CanAutoDetect() bool          { return false }

func (*ConditionalFormatter) Format(info *extension.FormattingInfo) (bool, error) {
	if info.Format == nil {
		return true, nil
	}
	parts := info.Format.Split('|')
	defer format.ReleaseParts(parts)

	i := branch(info.Value, len(parts))
	if i < 0 {
		return true, nil
	}
	return true, info.FormatNested(parts[i], info.Value)
}

// branch returns the index of the branch for v among n branches, or -1 for
// none.
func branch(v any, n int) int {
	last := n - 1
	pick := func(i int) int {
		if i > last {
			return -1
		}
		return i
	}

	switch val := v.(type) {
	case nil:
		return pick(1)
	case bool:
		if val {
			return 0
		}
		return pick(1)
	case string:
		if val != "" {
			return 0
		}
		return pick(1)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return clampIndex(rv.Int(), last)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if rv.Uint() > uint64(last) {
			return last
		}
		return int(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return clampIndex(int64(rv.Float()), last)
	case reflect.Slice, reflect.Map, reflect.Array:
		if rv.Len() > 0 {
			return 0
		}
		return pick(1)
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return pick(1)
		}
	}
	return 0
}

// clampIndex maps an integer to a branch: negatives and values past the
// end select the last branch.
func clampIndex(n int64, last int) int {
	if n < 0 || n > int64(last) {
		return last
	}
	return int(n)
}
