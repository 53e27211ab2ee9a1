package format

// Item is a node of a Format: a *LiteralText or a *Placeholder.
type Item interface {
	// BaseString returns the whole template the item was parsed from.
	BaseString() string

	// StartIndex returns the offset of the first character of the item.
	StartIndex() int

	// EndIndex returns the offset just past the last character of the item.
	EndIndex() int

	// RawText returns the item's characters exactly as written.
	RawText() string

	// Text returns the text the item stands for: unescaped for literals,
	// reconstructed for placeholders.
	Text() string

	// String reconstructs the item's template text.
	String() string

	release()
}

// span is a view over the template string.
type span struct {
	base  string
	start int
	end   int
}

func (s *span) BaseString() string { return s.base }
func (s *span) StartIndex() int    { return s.start }
func (s *span) EndIndex() int      { return s.end }
func (s *span) Length() int        { return s.end - s.start }

func (s *span) RawText() string {
	return s.base[s.start:s.end]
}

// SetStartIndex moves the start of the span. Used while the node is being parsed.
func (s *span) SetStartIndex(start int) {
	s.start = start
}

// SetEndIndex moves the end of the span. Used while the node is being parsed.
func (s *span) SetEndIndex(end int) {
	s.end = end
}

func (s *span) init(base string, start, end int) {
	s.base = base
	s.start = start
	s.end = end
}

// LiteralText is text copied to the output.
//
// Escape sequences (\n, \{, {{ ...) are parsed into their own items: RawText
// returns the sequence as written, Text the character it stands for. A
// malformed placeholder that was not thrown becomes a literal carrying its
// parse error in Err.
type LiteralText struct {
	span

	// Parent is the Format containing the literal.
	Parent *Format

	// Err is the parse error of a malformed token, nil for regular text.
	Err error

	unescaped string
	escaped   bool
}

// NewLiteralText leases a literal covering base[start:end].
func NewLiteralText(base string, start, end int, parent *Format) *LiteralText {
	l := literals().Get()
	l.init(base, start, end)
	l.Parent = parent
	return l
}

// NewEscapedLiteral leases a literal for the escape sequence base[start:end]
// standing for text.
func NewEscapedLiteral(base string, start, end int, text string, parent *Format) *LiteralText {
	l := NewLiteralText(base, start, end, parent)
	l.unescaped = text
	l.escaped = true
	return l
}

// NewMalformedLiteral leases a literal for a malformed token.
func NewMalformedLiteral(base string, start, end int, err error, parent *Format) *LiteralText {
	l := NewLiteralText(base, start, end, parent)
	l.Err = err
	return l
}

// IsEscaped reports whether the literal is an escape sequence.
func (l *LiteralText) IsEscaped() bool {
	return l.escaped
}

// Text returns the literal's output text.
func (l *LiteralText) Text() string {
	if l.escaped {
		return l.unescaped
	}
	return l.RawText()
}

// String returns the literal as written.
func (l *LiteralText) String() string {
	return l.RawText()
}

// copyTo leases a copy of the literal owned by parent.
func (l *LiteralText) copyTo(parent *Format) *LiteralText {
	c := NewLiteralText(l.base, l.start, l.end, parent)
	c.Err = l.Err
	c.unescaped = l.unescaped
	c.escaped = l.escaped
	return c
}

func (l *LiteralText) clear() {
	l.span = span{}
	l.Parent = initFormat
	l.Err = nil
	l.unescaped = ""
	l.escaped = false
}

func (l *LiteralText) release() {
	mustReturn(literals().Return(l))
}
