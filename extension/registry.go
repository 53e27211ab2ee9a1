package extension

import (
	"fmt"
	"strings"
)

// Registry holds the sources and formatters of an engine, each list sorted
// by priority. Within one priority, earlier additions come first.
type Registry struct {
	sources    []Source
	formatters []Formatter
	ignoreCase bool
}

// NewRegistry creates an empty registry. ignoreCase controls formatter
// name matching.
func NewRegistry(ignoreCase bool) *Registry {
	return &Registry{ignoreCase: ignoreCase}
}

// Add registers ext as a source, a formatter, or both.
// Returns ErrNotExtension if ext is neither.
func (r *Registry) Add(ext Extension) error {
	src, isSource := ext.(Source)
	f, isFormatter := ext.(Formatter)
	if !isSource && !isFormatter {
		return fmt.Errorf("%w: %T", ErrNotExtension, ext)
	}
	if isFormatter {
		if err := r.AddFormatter(f); err != nil {
			return err
		}
	}
	if isSource {
		r.AddSource(src)
	}
	return nil
}

// AddSource registers a source. Adding a source whose type is already
// registered does nothing.
func (r *Registry) AddSource(s Source) {
	if indexOfType(r.sources, s) >= 0 {
		return
	}
	r.sources = insertByPriority(r.sources, s)
}

// AddFormatter registers a formatter. Adding a formatter whose type is
// already registered does nothing.
// Returns ErrDuplicateFormatter if one of its names is taken.
func (r *Registry) AddFormatter(f Formatter) error {
	if indexOfType(r.formatters, f) >= 0 {
		return nil
	}
	for _, name := range f.Names() {
		if existing, ok := r.FormatterByName(name); ok {
			return fmt.Errorf("%w: %q (held by %s)", ErrDuplicateFormatter, name, Name(existing))
		}
	}
	r.formatters = insertByPriority(r.formatters, f)
	return nil
}

// RemoveSource removes the source with the same type as s.
func (r *Registry) RemoveSource(s Source) bool {
	i := indexOfType(r.sources, s)
	if i < 0 {
		return false
	}
	r.sources = append(r.sources[:i], r.sources[i+1:]...)
	return true
}

// RemoveFormatter removes the formatter registered under name.
func (r *Registry) RemoveFormatter(name string) bool {
	for i, f := range r.formatters {
		if r.hasName(f, name) {
			r.formatters = append(r.formatters[:i], r.formatters[i+1:]...)
			return true
		}
	}
	return false
}

// Sources returns the sources in resolution order.
func (r *Registry) Sources() []Source {
	return append([]Source(nil), r.sources...)
}

// Formatters returns the formatters in resolution order.
func (r *Registry) Formatters() []Formatter {
	return append([]Formatter(nil), r.formatters...)
}

// FormatterNames returns every formatter name and alias.
func (r *Registry) FormatterNames() []string {
	var names []string
	for _, f := range r.formatters {
		names = append(names, f.Names()...)
	}
	return names
}

// FormatterByName returns the formatter registered under name.
func (r *Registry) FormatterByName(name string) (Formatter, bool) {
	for _, f := range r.formatters {
		if r.hasName(f, name) {
			return f, true
		}
	}
	return nil, false
}

// SourceOf returns the registered source of type T.
func SourceOf[T Source](r *Registry) (T, bool) {
	for _, s := range r.sources {
		if v, ok := s.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// FormatterOf returns the registered formatter of type T.
func FormatterOf[T Formatter](r *Registry) (T, bool) {
	for _, f := range r.formatters {
		if v, ok := f.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// ResolveSelector asks each source in order to evaluate info. The first
// source that handles it wins and its result is stored in info.
// Returns ErrNoSource if no source handles the selector.
func (r *Registry) ResolveSelector(info *SelectorInfo) (Source, error) {
	for _, s := range r.sources {
		ok, err := s.Evaluate(info)
		if err != nil {
			return nil, NewError(Name(s), "evaluate", err)
		}
		if ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoSource, info.Text())
}

// ResolveFormat renders info with the placeholder's named formatter, or
// with the first auto-detecting formatter that handles the value.
func (r *Registry) ResolveFormat(info *FormattingInfo) (Formatter, error) {
	if name := info.Placeholder.FormatterName; name != "" {
		f, ok := r.FormatterByName(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFormatter, name)
		}
		handled, err := f.Format(info)
		if err != nil {
			return nil, NewError(Name(f), "format", err)
		}
		if !handled {
			return nil, fmt.Errorf("%w: %s cannot format %T", ErrFormatterDeclined, Name(f), info.Value)
		}
		return f, nil
	}

	for _, f := range r.formatters {
		if !f.CanAutoDetect() {
			continue
		}
		handled, err := f.Format(info)
		if err != nil {
			return nil, NewError(Name(f), "format", err)
		}
		if handled {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrNoFormatter, info.Value)
}

func (r *Registry) hasName(f Formatter, name string) bool {
	for _, n := range f.Names() {
		if n == name || (r.ignoreCase && strings.EqualFold(n, name)) {
			return true
		}
	}
	return false
}

// insertByPriority inserts ext before the first element of lower priority.
func insertByPriority[E Extension](list []E, ext E) []E {
	i := len(list)
	for j, e := range list {
		if e.Priority() > ext.Priority() {
			i = j
			break
		}
	}
	list = append(list, ext)
	copy(list[i+1:], list[i:])
	list[i] = ext
	return list
}

func indexOfType[E Extension](list []E, ext Extension) int {
	t := typeOf(ext)
	for i, e := range list {
		if typeOf(e) == t {
			return i
		}
	}
	return -1
}
