package builtin

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/randalmurphal/fmtkit/extension"
)

var errorType = reflect.TypeFor[error]()

// ReflectionSource resolves exported struct fields, zero-argument methods,
// keys of string-keyed maps and slice indexes through reflection. Member
// tables are built once per type.
type ReflectionSource struct {
	types sync.Map // reflect.Type -> *memberTable
}

type memberKind int

const (
	fieldMember memberKind = iota
	methodMember
)

type member struct {
	kind  memberKind
	index []int // field index path, or method index in index[0]
}

type memberTable struct {
	byName map[string]member
	folded map[string]string // lower-case name -> name
}

func (*ReflectionSource) Priority() extension.Priority { return extension.Low }

func (s *ReflectionSource) Evaluate(info *extension.SelectorInfo) (bool, error) {
	if _, ok := info.Positional(); ok {
		return false, nil
	}
	v := reflect.ValueOf(info.Value)
	if !v.IsValid() {
		return false, nil
	}
	name := info.Text()

	elem := v
	for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			elem = reflect.Value{}
			break
		}
		elem = elem.Elem()
	}

	// Keys win over methods of the map type.
	if elem.Kind() == reflect.Map && elem.Type().Key().Kind() == reflect.String {
		if ok, err := mapIndex(info, elem, name); ok || err != nil {
			return ok, err
		}
	}

	if !elem.IsValid() {
		return false, nil
	}

	// Methods with pointer receivers are only in the pointer's method set.
	if ok, err := s.callMethod(info, v, name); ok || err != nil {
		return ok, err
	}

	switch elem.Kind() {
	case reflect.Struct:
		if m, ok := s.lookup(elem.Type(), name, info.IgnoreCase); ok && m.kind == fieldMember {
			f, err := elem.FieldByIndexErr(m.index)
			if err != nil {
				return false, nil
			}
			info.SetResult(f.Interface())
			return true, nil
		}

	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(name)
		if err != nil || i < 0 || i >= elem.Len() {
			return false, nil
		}
		info.SetResult(elem.Index(i).Interface())
		return true, nil
	}
	return false, nil
}

func (s *ReflectionSource) callMethod(info *extension.SelectorInfo, v reflect.Value, name string) (bool, error) {
	m, ok := s.lookup(v.Type(), name, info.IgnoreCase)
	if !ok || m.kind != methodMember {
		return false, nil
	}
	out := v.Method(m.index[0]).Call(nil)
	if len(out) == 2 && !out[1].IsNil() {
		return false, out[1].Interface().(error)
	}
	info.SetResult(out[0].Interface())
	return true, nil
}

func mapIndex(info *extension.SelectorInfo, v reflect.Value, name string) (bool, error) {
	keyType := v.Type().Key()
	if e := v.MapIndex(reflect.ValueOf(name).Convert(keyType)); e.IsValid() {
		info.SetResult(e.Interface())
		return true, nil
	}
	if !info.IgnoreCase {
		return false, nil
	}
	iter := v.MapRange()
	for iter.Next() {
		if strings.EqualFold(iter.Key().String(), name) {
			info.SetResult(iter.Value().Interface())
			return true, nil
		}
	}
	return false, nil
}

func (s *ReflectionSource) lookup(t reflect.Type, name string, ignoreCase bool) (member, bool) {
	table := s.table(t)
	if m, ok := table.byName[name]; ok {
		return m, true
	}
	if ignoreCase {
		if canonical, ok := table.folded[strings.ToLower(name)]; ok {
			return table.byName[canonical], true
		}
	}
	return member{}, false
}

func (s *ReflectionSource) table(t reflect.Type) *memberTable {
	if cached, ok := s.types.Load(t); ok {
		return cached.(*memberTable)
	}
	table, _ := s.types.LoadOrStore(t, buildMemberTable(t))
	return table.(*memberTable)
}

func buildMemberTable(t reflect.Type) *memberTable {
	table := &memberTable{
		byName: make(map[string]member),
		folded: make(map[string]string),
	}
	add := func(name string, m member) {
		if _, exists := table.byName[name]; exists {
			return
		}
		table.byName[name] = m
		if _, exists := table.folded[strings.ToLower(name)]; !exists {
			table.folded[strings.ToLower(name)] = name
		}
	}

	if t.Kind() == reflect.Struct {
		for _, f := range reflect.VisibleFields(t) {
			if f.IsExported() && !f.Anonymous {
				add(f.Name, member{kind: fieldMember, index: f.Index})
			}
		}
	}
	if t.Kind() != reflect.Interface {
		for i := 0; i < t.NumMethod(); i++ {
			m := t.Method(i)
			if isGetter(m.Type) {
				add(m.Name, member{kind: methodMember, index: []int{i}})
			}
		}
	}
	return table
}

// isGetter reports whether a method type (receiver first) takes no
// arguments and returns a value, optionally followed by an error.
func isGetter(mt reflect.Type) bool {
	if mt.NumIn() != 1 {
		return false
	}
	switch mt.NumOut() {
	case 1:
		return true
	case 2:
		return mt.Out(1) == errorType
	}
	return false
}
