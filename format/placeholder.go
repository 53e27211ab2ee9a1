package format

import "strings"

// Placeholder is a {...} unit of a template: a selector chain, an optional
// alignment, an optional formatter binding and an optional nested Format.
type Placeholder struct {
	span

	// Parent is the Format containing the placeholder.
	Parent *Format

	// NestedDepth is 0 for placeholders of the root format.
	NestedDepth int

	// Selectors is the access chain, in order.
	Selectors []*Selector

	// Alignment pads the output to |Alignment| runes; negative values align left.
	Alignment int

	// FormatterName binds the placeholder to a named formatter.
	FormatterName string

	// FormatterOptions is the raw text between the parentheses after
	// FormatterName. Its meaning belongs to the formatter.
	FormatterOptions string

	// Format is the nested format clause, nil when there is no ':'.
	Format *Format

	alignment  string
	hasOptions bool
}

// NewPlaceholder leases a placeholder starting at base[start].
func NewPlaceholder(base string, start int, parent *Format, nestedDepth int) *Placeholder {
	p := placeholders().Get()
	p.init(base, start, start)
	p.Parent = parent
	p.NestedDepth = nestedDepth
	return p
}

// SetAlignment records the alignment width and its raw text.
func (p *Placeholder) SetAlignment(raw string, width int) {
	p.alignment = raw
	p.Alignment = width
}

// SetFormatter binds the placeholder to a formatter name and options.
func (p *Placeholder) SetFormatter(name, options string, hasOptions bool) {
	p.FormatterName = name
	p.FormatterOptions = options
	p.hasOptions = hasOptions
}

// SelectorsText returns the selector chain as written, e.g. "Items[0].Name".
func (p *Placeholder) SelectorsText() string {
	if len(p.Selectors) == 0 {
		return ""
	}
	first, last := p.Selectors[0], p.Selectors[len(p.Selectors)-1]
	end := last.end
	if last.IsIndexer() {
		end++
	}
	return p.base[first.opStart:end]
}

// Text reconstructs the placeholder.
func (p *Placeholder) Text() string {
	return p.String()
}

// String reconstructs the placeholder as {selectors[,alignment][:name(options):format]}.
func (p *Placeholder) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for _, s := range p.Selectors {
		b.WriteString(s.String())
	}
	if p.alignment != "" {
		b.WriteByte(',')
		b.WriteString(p.alignment)
	}
	if p.Format != nil {
		b.WriteByte(':')
		if p.FormatterName != "" {
			b.WriteString(p.FormatterName)
			if p.hasOptions {
				b.WriteByte('(')
				b.WriteString(p.FormatterOptions)
				b.WriteByte(')')
			}
			b.WriteByte(':')
		}
		b.WriteString(p.Format.String())
	}
	b.WriteByte('}')
	return b.String()
}

func (p *Placeholder) clear() {
	p.span = span{}
	p.Parent = initFormat
	p.NestedDepth = 0
	clear(p.Selectors)
	p.Selectors = p.Selectors[:0]
	p.Alignment = 0
	p.FormatterName = ""
	p.FormatterOptions = ""
	p.Format = nil
	p.alignment = ""
	p.hasOptions = false
}

// Release returns a placeholder that was never added to a format, along with
// its selectors and nested format.
func (p *Placeholder) Release() {
	p.release()
}

func (p *Placeholder) release() {
	for _, s := range p.Selectors {
		mustReturn(selectors().Return(s))
	}
	if p.Format != nil {
		p.Format.Release()
	}
	mustReturn(placeholders().Return(p))
}
