package format

import "strings"

// Selector is one step of a placeholder's access chain, e.g. "Address" and
// "City" in {Address.City}, or "0" in {Items[0]}.
type Selector struct {
	span

	// Index is the position of the selector within its placeholder. Index 0
	// may be read as a positional argument reference.
	Index int

	// Parent is the placeholder owning the selector.
	Parent *Placeholder

	opStart int
}

// NewSelector leases a selector for base[start:end] whose operator occupies
// base[opStart:start].
func NewSelector(base string, start, end, opStart, index int, parent *Placeholder) *Selector {
	s := selectors().Get()
	s.init(base, start, end)
	s.opStart = opStart
	s.Index = index
	s.Parent = parent
	return s
}

// Text returns the selector name.
func (s *Selector) Text() string {
	return s.RawText()
}

// Operator returns the operator in front of the selector: "" for the first
// selector, or one of ".", "?.", "[", "?[" and custom operator characters.
func (s *Selector) Operator() string {
	return s.base[s.opStart:s.start]
}

// OperatorStart returns the offset of the operator.
func (s *Selector) OperatorStart() int {
	return s.opStart
}

// IsNullable reports whether the selector uses a null-propagating operator.
func (s *Selector) IsNullable() bool {
	return strings.HasPrefix(s.Operator(), "?")
}

// IsIndexer reports whether the selector was written in brackets.
func (s *Selector) IsIndexer() bool {
	return strings.HasSuffix(s.Operator(), "[")
}

// String reconstructs the selector with its operator.
func (s *Selector) String() string {
	if s.IsIndexer() {
		return s.Operator() + s.Text() + "]"
	}
	return s.Operator() + s.Text()
}

func (s *Selector) clear() {
	s.span = span{}
	s.Index = 0
	s.Parent = initPlaceholder
	s.opStart = 0
}
