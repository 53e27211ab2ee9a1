package extension

import (
	"io"
	"strconv"
	"sync"

	"github.com/randalmurphal/fmtkit/format"
	"github.com/randalmurphal/fmtkit/pool"
)

// SelectorInfo is the context of one Source.Evaluate call.
type SelectorInfo struct {
	// Value is the value the selector applies to.
	Value any

	// Selector is the selector being resolved.
	Selector *format.Selector

	// Placeholder contains the selector.
	Placeholder *format.Placeholder

	// Args are the arguments of the top-level render call.
	Args []any

	// IgnoreCase reports whether names compare case-insensitively.
	IgnoreCase bool

	result    any
	hasResult bool
}

// NewSelectorInfo leases a selector context. Release it when done.
func NewSelectorInfo(value any, sel *format.Selector, ph *format.Placeholder, args []any, ignoreCase bool) *SelectorInfo {
	s := selectorInfos().Get()
	s.Value = value
	s.Selector = sel
	s.Placeholder = ph
	s.Args = args
	s.IgnoreCase = ignoreCase
	return s
}

// Text returns the selector name.
func (s *SelectorInfo) Text() string {
	return s.Selector.Text()
}

// Index returns the position of the selector within its placeholder.
func (s *SelectorInfo) Index() int {
	return s.Selector.Index
}

// Operator returns the operator in front of the selector.
func (s *SelectorInfo) Operator() string {
	return s.Selector.Operator()
}

// Positional reports whether the selector is an absolute argument reference
// such as {1}: the first selector of its placeholder, written without
// brackets, naming an argument index. It returns that index.
func (s *SelectorInfo) Positional() (int, bool) {
	if s.Index() != 0 || s.Operator() != "" {
		return 0, false
	}
	n, err := strconv.Atoi(s.Text())
	if err != nil || n < 0 || n >= len(s.Args) {
		return 0, false
	}
	return n, true
}

// SetResult stores the value the selector resolved to.
func (s *SelectorInfo) SetResult(v any) {
	s.result = v
	s.hasResult = true
}

// Result returns the stored result.
func (s *SelectorInfo) Result() (any, bool) {
	return s.result, s.hasResult
}

// Release returns the context to its pool.
func (s *SelectorInfo) Release() {
	mustReturn(selectorInfos().Return(s))
}

func (s *SelectorInfo) clear() {
	*s = SelectorInfo{}
}

// Renderer renders nested formats on behalf of formatters.
type Renderer interface {
	// RenderFormat writes f to out with value as the scope.
	RenderFormat(out io.StringWriter, f *format.Format, value any, args []any, depth int) error
}

// FormattingInfo is the context of one Formatter.Format call.
type FormattingInfo struct {
	// Value is the resolved value to render.
	Value any

	// Placeholder is the placeholder being rendered.
	Placeholder *format.Placeholder

	// Format is the placeholder's format clause, nil when it has none.
	Format *format.Format

	// Args are the arguments of the top-level render call.
	Args []any

	// Depth is the nesting depth of the placeholder's format.
	Depth int

	// IgnoreCase reports whether names compare case-insensitively.
	IgnoreCase bool

	out      io.StringWriter
	renderer Renderer
	err      error
}

// NewFormattingInfo leases a formatting context writing to out. Release it
// when done.
func NewFormattingInfo(r Renderer, out io.StringWriter, value any, ph *format.Placeholder, args []any, depth int, ignoreCase bool) *FormattingInfo {
	f := formattingInfos().Get()
	f.renderer = r
	f.out = out
	f.Value = value
	f.Placeholder = ph
	f.Format = ph.Format
	f.Args = args
	f.Depth = depth
	f.IgnoreCase = ignoreCase
	return f
}

// FormatterOptions returns the raw options of the placeholder's formatter.
func (f *FormattingInfo) FormatterOptions() string {
	return f.Placeholder.FormatterOptions
}

// Write writes s to the output. The first write error is kept and reported
// by Err.
func (f *FormattingInfo) Write(s string) {
	if f.err != nil || s == "" {
		return
	}
	_, f.err = f.out.WriteString(s)
}

// Output returns the writer the formatter renders to.
func (f *FormattingInfo) Output() io.StringWriter {
	return f.out
}

// Err returns the first write error.
func (f *FormattingInfo) Err() error {
	return f.err
}

// FormatNested renders clause with value as the scope, one level deeper.
func (f *FormattingInfo) FormatNested(clause *format.Format, value any) error {
	if clause == nil {
		return nil
	}
	return f.renderer.RenderFormat(f.out, clause, value, f.Args, f.Depth+1)
}

// Release returns the context to its pool.
func (f *FormattingInfo) Release() {
	mustReturn(formattingInfos().Return(f))
}

func (f *FormattingInfo) clear() {
	*f = FormattingInfo{}
}

var (
	initSelectorInfo   = &SelectorInfo{}
	initFormattingInfo = &FormattingInfo{}
)

var (
	selectorInfos = sync.OnceValue(func() *pool.Pool[*SelectorInfo] {
		return pool.MustNew("extension.SelectorInfo", pool.Policy[*SelectorInfo]{
			Create:   func() *SelectorInfo { return &SelectorInfo{} },
			OnReturn: (*SelectorInfo).clear,
			MaxSize:  pool.DefaultMaxSize,
			Sentinel: initSelectorInfo,
		})
	})

	formattingInfos = sync.OnceValue(func() *pool.Pool[*FormattingInfo] {
		return pool.MustNew("extension.FormattingInfo", pool.Policy[*FormattingInfo]{
			Create:   func() *FormattingInfo { return &FormattingInfo{} },
			OnReturn: (*FormattingInfo).clear,
			MaxSize:  pool.DefaultMaxSize,
			Sentinel: initFormattingInfo,
		})
	})
)

// PoolStats returns the counters of the context pools.
func PoolStats() []pool.Stats {
	return []pool.Stats{
		selectorInfos().Stats(),
		formattingInfos().Stats(),
	}
}

func mustReturn(err error) {
	if err != nil {
		panic(err)
	}
}
