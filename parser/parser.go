package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/randalmurphal/fmtkit/format"
	"github.com/randalmurphal/fmtkit/settings"
)

// Parser converts templates into format trees. A Parser is immutable and
// safe for concurrent use.
type Parser struct {
	settings settings.Settings
	chars    charset
	escape   rune
}

// New creates a parser for the given settings.
func New(s settings.Settings) *Parser {
	return &Parser{
		settings: s,
		chars: charset{
			selectorChars: s.Parser.SelectorChars,
			operatorChars: s.Parser.OperatorChars,
		},
		escape: s.Parser.Escape(),
	}
}

// Settings returns the settings the parser was created with.
func (p *Parser) Settings() settings.Settings {
	return p.settings
}

// Parse parses template into a format tree. formatterNames lists the
// formatters that may be bound with the {sel:name(options):...} prefix.
//
// With settings.ThrowError the first issue aborts parsing and is returned as
// *Errors. Otherwise malformed tokens are kept as literals carrying their
// error and Parse returns a nil error.
//
// The caller owns the returned format and should Release it.
func (p *Parser) Parse(template string, formatterNames []string) (*format.Format, error) {
	stop := p.settings.Parser.ErrorAction == settings.ThrowError
	f, errs := p.parse(template, formatterNames, stop)
	if f == nil {
		return nil, errs
	}
	return f, nil
}

// ParseAll parses template without aborting and returns every issue found,
// or nil when there are none.
func (p *Parser) ParseAll(template string, formatterNames []string) (*format.Format, *Errors) {
	f, errs := p.parse(template, formatterNames, false)
	if !errs.HasIssues() {
		return f, nil
	}
	return f, errs
}

// Validate reports the issues of template without keeping the tree.
func (p *Parser) Validate(template string) *Errors {
	f, errs := p.ParseAll(template, nil)
	f.Release()
	return errs
}

func (p *Parser) parse(template string, names []string, stop bool) (*format.Format, *Errors) {
	s := &scanner{
		p:     p,
		tmpl:  template,
		names: names,
		stop:  stop,
		errs:  &Errors{Template: template},
		align: -1,
		name:  nameDone,
	}
	s.root = format.NewFormat(template, 0, len(template), nil)
	s.current = s.root

	i := 0
	for i < len(template) {
		var ok bool
		if s.ph != nil {
			i, ok = s.selector(i)
		} else {
			i, ok = s.literalText(i)
		}
		if !ok {
			s.discard()
			return nil, s.errs
		}
	}
	if !s.finish() {
		s.discard()
		return nil, s.errs
	}
	return s.root, s.errs
}

type nameState int

const (
	nameDone nameState = iota
	nameScan
	nameOptions
	nameAfterOptions
)

// fault is an issue found while reading a placeholder, before it is recorded.
type fault struct {
	pos    int
	issue  Issue
	detail string
}

// scanner holds the state of one Parse call.
type scanner struct {
	p     *Parser
	tmpl  string
	names []string
	stop  bool
	errs  *Errors

	root    *format.Format
	current *format.Format // innermost open format
	depth   int            // nesting depth of current
	literal int            // start of pending literal text in current

	// Placeholder whose selectors are being read.
	ph       *format.Placeholder
	opStart  int
	selStart int
	bracket  bool
	align    int // start of alignment text, -1 outside it

	// Formatter prefix detection at the start of a clause.
	name      nameState
	nameStart int
	optStart  int
	optEnd    int
}

func (s *scanner) runeAt(i int) (rune, int) {
	if c := s.tmpl[i]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	return utf8.DecodeRuneInString(s.tmpl[i:])
}

func (s *scanner) peek(i int) byte {
	if i < len(s.tmpl) {
		return s.tmpl[i]
	}
	return 0
}

func (s *scanner) add(it format.Item) {
	s.current.Items = append(s.current.Items, it)
}

// flush adds the pending literal text up to end.
func (s *scanner) flush(end int) {
	if end > s.literal {
		s.add(format.NewLiteralText(s.tmpl, s.literal, end, s.current))
	}
	s.literal = end
}

func (s *scanner) escaped(start, end int, text string) int {
	s.flush(start)
	s.add(format.NewEscapedLiteral(s.tmpl, start, end, text, s.current))
	s.literal = end
	return end
}

func (s *scanner) literalText(i int) (int, bool) {
	r, size := s.runeAt(i)
	if s.name != nameDone {
		if next, ok := s.formatterName(i, r, size); ok {
			return next, true
		}
	}

	mode := s.p.settings.Parser.EscapeMode
	switch {
	case r == s.p.escape && mode.Backslash():
		return s.escapeSequence(i, size), true

	case r == '{':
		if s.depth == 0 && mode.DoubledBraces() && s.peek(i+1) == '{' {
			return s.escaped(i, i+2, "{"), true
		}
		s.openPlaceholder(i)
		return i + 1, true

	case r == '}':
		if s.depth > 0 {
			s.closeClause(i)
			return i + 1, true
		}
		if mode.DoubledBraces() && s.peek(i+1) == '}' {
			return s.escaped(i, i+2, "}"), true
		}
		s.flush(i)
		err := s.errs.add(i, IssueTooManyClosingBraces, "")
		if s.stop {
			return 0, false
		}
		s.add(format.NewMalformedLiteral(s.tmpl, i, i+1, err, s.current))
		s.literal = i + 1
		return i + 1, true
	}
	return i + size, true
}

// escapeSequence handles the escape character at i. Unknown sequences are
// left in the literal text as written.
func (s *scanner) escapeSequence(i, size int) int {
	j := i + size
	if j >= len(s.tmpl) {
		return j
	}
	n, nsize := s.runeAt(j)
	end := j + nsize
	text, ok := escapes[n]
	if !ok && n == s.p.escape {
		text, ok = string(n), true
	}
	if !ok && n == 'u' && j+5 <= len(s.tmpl) && isHex(s.tmpl[j+1:j+5]) {
		v, _ := strconv.ParseUint(s.tmpl[j+1:j+5], 16, 32)
		text, ok, end = string(rune(v)), true, j+5
	}
	if !ok {
		return j
	}
	return s.escaped(i, end, text)
}

// formatterName advances the {sel:name(options):...} prefix detection. It
// reports false when r ends the prefix without binding a formatter; r is then
// read again as clause text.
func (s *scanner) formatterName(i int, r rune, size int) (int, bool) {
	switch s.name {
	case nameScan:
		switch {
		case i == s.nameStart && isIdentStart(r), i > s.nameStart && isIdentChar(r):
			return i + size, true
		case r == '(' && i > s.nameStart:
			s.name, s.optStart = nameOptions, i+1
			return i + 1, true
		case r == ':' && i > s.nameStart:
			if s.bind(s.tmpl[s.nameStart:i], "", false, i) {
				return i + 1, true
			}
		}
	case nameOptions:
		switch {
		case r == ')':
			s.name, s.optEnd = nameAfterOptions, i
			return i + 1, true
		case r == '{' || r == '}':
		case r == s.p.escape && i+size < len(s.tmpl):
			_, n := s.runeAt(i + size)
			return i + size + n, true
		default:
			return i + size, true
		}
	case nameAfterOptions:
		if r == ':' && s.bind(s.tmpl[s.nameStart:s.optStart-1], s.tmpl[s.optStart:s.optEnd], true, i) {
			return i + 1, true
		}
	}
	s.name = nameDone
	return 0, false
}

// bind attaches a known formatter to the open clause; colon is the offset of
// the ':' ending the prefix.
func (s *scanner) bind(name, options string, hasOptions bool, colon int) bool {
	if !s.known(name) {
		return false
	}
	s.current.Parent.SetFormatter(name, options, hasOptions)
	s.current.SetStartIndex(colon + 1)
	s.literal = colon + 1
	s.name = nameDone
	return true
}

func (s *scanner) known(name string) bool {
	ignoreCase := s.p.settings.IgnoreCase()
	for _, n := range s.names {
		if n == name || (ignoreCase && strings.EqualFold(n, name)) {
			return true
		}
	}
	return false
}

func (s *scanner) openPlaceholder(i int) {
	s.flush(i)
	s.name = nameDone
	s.ph = format.NewPlaceholder(s.tmpl, i, s.current, s.depth)
	s.opStart, s.selStart = i+1, i+1
	s.bracket = false
	s.align = -1
}

// attach closes the placeholder ending at end and adds it to current.
func (s *scanner) attach(ph *format.Placeholder, end int) {
	ph.SetEndIndex(end)
	s.add(ph)
	s.current.HasNested = true
	s.literal = end
}

func (s *scanner) openClause(i int) {
	ph := s.ph
	s.ph = nil
	f := format.NewFormat(s.tmpl, i+1, i+1, ph)
	ph.Format = f
	s.current = f
	s.depth++
	s.literal = i + 1
	s.name, s.nameStart = nameScan, i+1
}

func (s *scanner) closeClause(i int) {
	s.flush(i)
	s.name = nameDone
	f := s.current
	f.SetEndIndex(i)
	ph := f.Parent
	s.current = ph.Parent
	s.depth--
	s.attach(ph, i+1)
}

func (s *scanner) selector(i int) (int, bool) {
	r, size := s.runeAt(i)
	if s.align >= 0 {
		return s.alignment(i, r, size)
	}

	switch {
	case s.p.chars.isSelectorChar(r):
		return i + size, true

	case r == ']':
		if !s.bracket || i == s.selStart {
			return s.malformed(i, &fault{i, IssueInvalidOperator, "unexpected ']'"})
		}
		if f := s.emit(i); f != nil {
			return s.malformed(i, f)
		}
		s.bracket = false
		s.opStart, s.selStart = i+1, i+1
		return i + 1, true

	case s.p.chars.isOperatorChar(r):
		if s.bracket {
			return s.malformed(i, &fault{i, IssueInvalidSelectorChar, fmt.Sprintf("%q inside brackets", r)})
		}
		if i > s.selStart {
			if f := s.emit(i); f != nil {
				return s.malformed(i, f)
			}
			s.opStart = i
		}
		if r == '[' {
			s.bracket = true
		}
		s.selStart = i + size
		return i + size, true

	case r == ',':
		if f := s.endSelectors(i); f != nil {
			return s.malformed(i, f)
		}
		s.align = i + 1
		return i + 1, true

	case r == ':':
		if f := s.endSelectors(i); f != nil {
			return s.malformed(i, f)
		}
		s.openClause(i)
		return i + 1, true

	case r == '}':
		if f := s.endSelectors(i); f != nil {
			return s.malformed(i, f)
		}
		ph := s.ph
		s.ph = nil
		s.attach(ph, i+1)
		return i + 1, true
	}
	return s.malformed(i, &fault{i, IssueInvalidSelectorChar, fmt.Sprintf("%q", r)})
}

func (s *scanner) alignment(i int, r rune, size int) (int, bool) {
	switch {
	case r >= '0' && r <= '9', r == '-' && i == s.align:
		return i + size, true
	case r == ':' || r == '}':
		raw := s.tmpl[s.align:i]
		width, err := strconv.Atoi(raw)
		if err != nil {
			return s.malformed(i, &fault{s.align, IssueInvalidAlignment, fmt.Sprintf("%q", raw)})
		}
		s.ph.SetAlignment(raw, width)
		s.align = -1
		if r == ':' {
			s.openClause(i)
		} else {
			ph := s.ph
			s.ph = nil
			s.attach(ph, i+1)
		}
		return i + 1, true
	}
	return s.malformed(i, &fault{i, IssueInvalidAlignment, fmt.Sprintf("unexpected %q", r)})
}

// emit adds the pending selector ending at end.
func (s *scanner) emit(end int) *fault {
	op := s.tmpl[s.opStart:s.selStart]
	index := len(s.ph.Selectors)
	if !s.p.chars.validOperator(op, index) {
		return &fault{s.opStart, IssueInvalidOperator, fmt.Sprintf("%q", op)}
	}
	sel := format.NewSelector(s.tmpl, s.selStart, end, s.opStart, index, s.ph)
	s.ph.Selectors = append(s.ph.Selectors, sel)
	return nil
}

// endSelectors finishes the selector chain at a ',', ':' or '}'.
func (s *scanner) endSelectors(i int) *fault {
	switch {
	case s.bracket:
		return &fault{i, IssueInvalidOperator, "missing ']'"}
	case i > s.selStart:
		return s.emit(i)
	case s.opStart < s.selStart:
		return &fault{s.opStart, IssueInvalidOperator, fmt.Sprintf("trailing %q", s.tmpl[s.opStart:s.selStart])}
	}
	return nil
}

// malformed records f. Unless parsing stops, the placeholder being read is
// replaced by a literal running to its closing brace.
func (s *scanner) malformed(i int, f *fault) (int, bool) {
	err := s.errs.add(f.pos, f.issue, f.detail)
	if s.stop {
		return 0, false
	}
	start := s.ph.StartIndex()
	s.ph.Release()
	s.ph = nil
	s.align = -1

	end := s.skipPlaceholder(i)
	s.add(format.NewMalformedLiteral(s.tmpl, start, end, err, s.current))
	s.literal = end
	return end, true
}

// skipPlaceholder returns the offset just past the '}' matching the open
// placeholder, or the end of the template.
func (s *scanner) skipPlaceholder(i int) int {
	depth := 0
	for j := i; j < len(s.tmpl); j++ {
		switch s.tmpl[j] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return j + 1
			}
			depth--
		}
	}
	return len(s.tmpl)
}

// finish completes the root format at the end of the template.
func (s *scanner) finish() bool {
	end := len(s.tmpl)
	if s.ph == nil && s.depth == 0 {
		s.flush(end)
		return true
	}
	err := s.errs.add(end, IssueMissingClosingBrace, "")
	if s.stop {
		return false
	}
	start := s.unwind()
	s.add(format.NewMalformedLiteral(s.tmpl, start, end, err, s.root))
	return true
}

// unwind releases every open placeholder and returns the start of the
// outermost one.
func (s *scanner) unwind() int {
	start := -1
	if s.ph != nil {
		start = s.ph.StartIndex()
		s.ph.Release()
		s.ph = nil
	}
	for s.current != s.root {
		ph := s.current.Parent
		s.current = ph.Parent
		start = ph.StartIndex()
		ph.Release()
	}
	s.depth = 0
	return start
}

func (s *scanner) discard() {
	s.unwind()
	s.root.Release()
}
