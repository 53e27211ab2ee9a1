package template

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/fmtkit/extension"
	"github.com/randalmurphal/fmtkit/format"
	"github.com/randalmurphal/fmtkit/parser"
	"github.com/randalmurphal/fmtkit/pool"
	"github.com/randalmurphal/fmtkit/settings"
)

// Engine renders templates through its extension registry.
type Engine struct {
	settings   settings.Settings
	parser     *parser.Parser
	registry   *extension.Registry
	cache      *parseCache
	logger     *slog.Logger
	hook       ValueFormatter
	extensions []extension.Extension
	ignoreCase bool
}

// NewEngine creates an engine with the default source and formatter plus
// any extensions given as options. The pooling section of the settings is
// process-wide and is not applied here; call settings.PoolSettings.Apply once
// at startup.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		settings: settings.Default(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.settings.Validate(); err != nil {
		return nil, err
	}
	e.ignoreCase = e.settings.IgnoreCase()
	e.parser = parser.New(e.settings)
	e.registry = extension.NewRegistry(e.ignoreCase)
	for _, ext := range e.extensions {
		if err := e.registry.Add(ext); err != nil {
			return nil, err
		}
	}
	e.registry.AddSource(defaultSource{})
	if err := e.registry.AddFormatter(&defaultFormatter{hook: e.hook}); err != nil {
		return nil, err
	}
	e.extensions = nil
	e.cache = newParseCache(e.settings.Formatter.CacheSize)
	return e, nil
}

// Registry returns the engine's extension registry. Changes must not race
// with rendering.
func (e *Engine) Registry() *extension.Registry {
	return e.registry
}

// Settings returns the engine settings.
func (e *Engine) Settings() settings.Settings {
	return e.settings
}

// Render formats tmpl with args and returns the result.
func (e *Engine) Render(tmpl string, args ...any) (string, error) {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	if err := e.RenderTo(buf, tmpl, args...); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTo formats tmpl with args into w.
func (e *Engine) RenderTo(w io.StringWriter, tmpl string, args ...any) error {
	f, done, err := e.lease(tmpl)
	if err != nil {
		return err
	}
	defer done()
	return e.Format(w, f, args...)
}

// Parse parses tmpl with the engine's formatter names. The caller owns the
// result and should Release it.
func (e *Engine) Parse(tmpl string) (*format.Format, error) {
	f, err := e.parser.Parse(tmpl, e.registry.FormatterNames())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return f, nil
}

// Format writes a parsed template to w. The first argument is the initial
// scope.
func (e *Engine) Format(w io.StringWriter, parsed *format.Format, args ...any) error {
	var scope any
	if len(args) > 0 {
		scope = args[0]
	}
	return e.RenderFormat(w, parsed, scope, args, 0)
}

// ClearCache releases every cached template.
func (e *Engine) ClearCache() {
	if e.cache != nil {
		e.cache.purge()
	}
}

// CachedTemplates returns the number of cached templates.
func (e *Engine) CachedTemplates() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.len()
}

// lease returns the parsed form of tmpl and a function to call when
// rendering is done.
func (e *Engine) lease(tmpl string) (*format.Format, func(), error) {
	if e.cache == nil {
		f, err := e.Parse(tmpl)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Release, nil
	}

	if entry, ok := e.cache.acquire(tmpl); ok {
		return entry.format, func() { e.cache.release(entry) }, nil
	}
	f, err := e.Parse(tmpl)
	if err != nil {
		return nil, nil, err
	}
	entry, added := e.cache.add(tmpl, f)
	if !added {
		f.Release()
	}
	return entry.format, func() { e.cache.release(entry) }, nil
}

// RenderFormat writes f to w with scope as the current value. It implements
// extension.Renderer so formatters can render nested clauses.
func (e *Engine) RenderFormat(w io.StringWriter, f *format.Format, scope any, args []any, depth int) error {
	if depth > e.settings.Formatter.MaxNestingDepth {
		return &FormattingError{
			Template:    f.BaseString(),
			Placeholder: f.RawText(),
			Position:    f.StartIndex(),
			ValueType:   typeName(scope),
			Kind:        ErrNestingDepth,
			Err:         fmt.Errorf("depth %d exceeds %d", depth, e.settings.Formatter.MaxNestingDepth),
		}
	}

	for _, it := range f.Items {
		switch item := it.(type) {
		case *format.LiteralText:
			if item.Err != nil {
				if err := e.writeMalformed(w, item); err != nil {
					return err
				}
				continue
			}
			if _, err := w.WriteString(item.Text()); err != nil {
				return err
			}
		case *format.Placeholder:
			if err := e.renderPlaceholder(w, item, scope, args, depth); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeMalformed renders a token the parser kept instead of failing.
func (e *Engine) writeMalformed(w io.StringWriter, lit *format.LiteralText) error {
	var err error
	switch e.settings.Parser.ErrorAction {
	case settings.ThrowError:
		return fmt.Errorf("%w: %w", ErrParse, lit.Err)
	case settings.MaintainTokens:
		_, err = w.WriteString(lit.RawText())
	case settings.OutputErrorInResult:
		_, err = w.WriteString(lit.Err.Error())
	}
	return err
}

func (e *Engine) renderPlaceholder(w io.StringWriter, ph *format.Placeholder, scope any, args []any, depth int) error {
	buf := pool.GetBuffer()
	defer pool.PutBuffer(buf)

	value, err := e.evaluate(ph, scope, args)
	if err == nil {
		err = e.formatValue(buf, ph, value, args, depth)
	}
	if err != nil {
		return e.handleError(w, ph, err)
	}

	if ph.Alignment != 0 {
		return e.writeAligned(w, buf.String(), ph.Alignment)
	}
	_, err = w.WriteString(buf.String())
	return err
}

// evaluate resolves the selector chain of ph starting at scope. A nullable
// selector applied to nil ends the chain with nil.
func (e *Engine) evaluate(ph *format.Placeholder, scope any, args []any) (any, error) {
	current := scope
	for _, sel := range ph.Selectors {
		if sel.IsNullable() && isNil(current) {
			return nil, nil
		}
		result, err := e.resolveSelector(ph, sel, current, args)
		if err != nil {
			return nil, &FormattingError{
				Template:    ph.BaseString(),
				Placeholder: ph.RawText(),
				Selector:    sel.Text(),
				Position:    sel.StartIndex(),
				ValueType:   typeName(current),
				Kind:        ErrSelector,
				Err:         err,
			}
		}
		current = result
	}
	return current, nil
}

func (e *Engine) resolveSelector(ph *format.Placeholder, sel *format.Selector, current any, args []any) (result any, err error) {
	info := extension.NewSelectorInfo(current, sel, ph, args, e.ignoreCase)
	defer info.Release()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()

	if _, err = e.registry.ResolveSelector(info); err != nil {
		return nil, err
	}
	result, _ = info.Result()
	return result, nil
}

func (e *Engine) formatValue(out io.StringWriter, ph *format.Placeholder, value any, args []any, depth int) (err error) {
	info := extension.NewFormattingInfo(e, out, value, ph, args, depth, e.ignoreCase)
	defer info.Release()
	defer func() {
		if r := recover(); r != nil {
			err = e.formatterError(ph, value, fmt.Errorf("formatter panicked: %v", r))
		}
	}()

	if _, err = e.registry.ResolveFormat(info); err != nil {
		var nested *FormattingError
		if errors.As(err, &nested) {
			return nested
		}
		return e.formatterError(ph, value, err)
	}
	if err = info.Err(); err != nil {
		return e.formatterError(ph, value, err)
	}
	return nil
}

func (e *Engine) formatterError(ph *format.Placeholder, value any, err error) *FormattingError {
	return &FormattingError{
		Template:    ph.BaseString(),
		Placeholder: ph.RawText(),
		Position:    ph.StartIndex(),
		ValueType:   typeName(value),
		Kind:        ErrFormatter,
		Err:         err,
	}
}

// handleError applies the formatter error action to a failed placeholder.
func (e *Engine) handleError(w io.StringWriter, ph *format.Placeholder, err error) error {
	action := e.settings.Formatter.ErrorAction
	var ferr *FormattingError
	if !errors.As(err, &ferr) || action == settings.ThrowError {
		return err
	}

	e.logger.Debug("placeholder error handled",
		slog.String("action", action.String()),
		slog.Int("position", ferr.Position),
		slog.String("placeholder", ph.RawText()),
		slog.String("error", ferr.Message()))

	var werr error
	switch action {
	case settings.OutputErrorInResult:
		_, werr = w.WriteString("{" + ph.SelectorsText() + ":(Error: " + ferr.Message() + ")}")
	case settings.MaintainTokens:
		_, werr = w.WriteString(ph.RawText())
	}
	return werr
}

// writeAligned pads s to |width| runes; negative widths align left.
func (e *Engine) writeAligned(w io.StringWriter, s string, width int) error {
	left := width < 0
	if left {
		width = -width
	}
	n := width - utf8.RuneCountInString(s)
	if n <= 0 {
		_, err := w.WriteString(s)
		return err
	}

	padding := strings.Repeat(string(e.settings.Formatter.FillChar()), n)
	if left {
		s += padding
	} else {
		s = padding + s
	}
	_, err := w.WriteString(s)
	return err
}

// isNil reports whether v is nil or holds a nil pointer, map, slice,
// channel, function or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}
