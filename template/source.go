package template

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/randalmurphal/fmtkit/extension"
)

type accessor func(v any, member string, ignoreCase bool) (any, bool)

var (
	accessorsMu sync.RWMutex
	accessors   = make(map[reflect.Type]accessor)
)

// RegisterAccessor installs the member accessor used by the default source
// for values of the concrete type T, replacing any earlier one.
//
// Example:
//
//	template.RegisterAccessor(func(u User, member string, _ bool) (any, bool) {
//	    switch member {
//	    case "Name":
//	        return u.Name, true
//	    }
//	    return nil, false
//	})
func RegisterAccessor[T any](fn func(v T, member string, ignoreCase bool) (any, bool)) {
	accessorsMu.Lock()
	defer accessorsMu.Unlock()

	accessors[reflect.TypeFor[T]()] = func(v any, member string, ignoreCase bool) (any, bool) {
		return fn(v.(T), member, ignoreCase)
	}
}

// UnregisterAccessor removes the accessor for type T.
func UnregisterAccessor[T any]() {
	accessorsMu.Lock()
	defer accessorsMu.Unlock()

	delete(accessors, reflect.TypeFor[T]())
}

func lookupAccessor(v any) (accessor, bool) {
	accessorsMu.RLock()
	defer accessorsMu.RUnlock()

	fn, ok := accessors[reflect.TypeOf(v)]
	return fn, ok
}

// defaultSource resolves positional arguments, map keys, members exposed
// through interfaces or registered accessors, and slice indexes.
type defaultSource struct{}

func (defaultSource) Priority() extension.Priority { return extension.Lowest }

func (defaultSource) Evaluate(info *extension.SelectorInfo) (bool, error) {
	if n, ok := info.Positional(); ok {
		info.SetResult(info.Args[n])
		return true, nil
	}

	text := info.Text()
	n, numErr := strconv.Atoi(text)
	isNumber := numErr == nil && n >= 0

	if v, ok := lookupKey(info.Value, text, info.IgnoreCase); ok {
		info.SetResult(v)
		return true, nil
	}

	if v, ok := lookupMember(info.Value, text, info.IgnoreCase); ok {
		info.SetResult(v)
		return true, nil
	}

	if isNumber {
		if v, ok := lookupIndex(info.Value, n); ok {
			info.SetResult(v)
			return true, nil
		}
	}
	return false, nil
}

func lookupKey(value any, key string, ignoreCase bool) (any, bool) {
	switch m := value.(type) {
	case map[string]any:
		return mapLookup(m, key, ignoreCase)
	case map[string]string:
		return mapLookup(m, key, ignoreCase)
	case extension.KeyLookup:
		return m.LookupKey(key)
	}
	return nil, false
}

func mapLookup[V any](m map[string]V, key string, ignoreCase bool) (any, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	if ignoreCase {
		for k, v := range m {
			if strings.EqualFold(k, key) {
				return v, true
			}
		}
	}
	return nil, false
}

func lookupMember(value any, member string, ignoreCase bool) (any, bool) {
	if value == nil {
		return nil, false
	}
	if m, ok := value.(extension.MemberLookup); ok {
		if v, found := m.LookupMember(member, ignoreCase); found {
			return v, true
		}
	}
	if fn, ok := lookupAccessor(value); ok {
		return fn(value, member, ignoreCase)
	}
	return nil, false
}

func lookupIndex(value any, i int) (any, bool) {
	switch s := value.(type) {
	case []any:
		if i < len(s) {
			return s[i], true
		}
	case []string:
		if i < len(s) {
			return s[i], true
		}
	}
	return nil, false
}
