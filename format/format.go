package format

import (
	"strings"
	"unicode/utf8"
)

// Format is an ordered sequence of literal and placeholder items. The root
// format of a template has a nil Parent; a nested format belongs to the
// placeholder whose clause it is.
type Format struct {
	span

	// Parent is the placeholder owning this format clause, nil at the root.
	Parent *Placeholder

	// Items are the literal and placeholder nodes, in template order.
	Items []Item

	// HasNested reports whether any item is a placeholder.
	HasNested bool

	// part marks formats produced by Split; they borrow placeholders.
	part bool
}

// NewFormat leases a format covering base[start:end].
func NewFormat(base string, start, end int, parent *Placeholder) *Format {
	f := formats().Get()
	f.init(base, start, end)
	f.Parent = parent
	return f
}

// String reconstructs the template text of the format.
func (f *Format) String() string {
	if len(f.Items) == 1 {
		return f.Items[0].String()
	}
	var b strings.Builder
	for _, it := range f.Items {
		b.WriteString(it.String())
	}
	return b.String()
}

// Text returns the unescaped literal text of the format, with placeholders
// reconstructed. Formatters use it for clauses without nested placeholders.
func (f *Format) Text() string {
	switch len(f.Items) {
	case 0:
		return ""
	case 1:
		return f.Items[0].Text()
	}
	var b strings.Builder
	for _, it := range f.Items {
		b.WriteString(it.Text())
	}
	return b.String()
}

// Placeholders returns the placeholder items of the format.
func (f *Format) Placeholders() []*Placeholder {
	var out []*Placeholder
	for _, it := range f.Items {
		if p, ok := it.(*Placeholder); ok {
			out = append(out, p)
		}
	}
	return out
}

// Split cuts the format at every occurrence of delim in its own literal text.
// Placeholders, and therefore everything between their braces, are never
// split; escaped literals are never split either.
//
// The parts borrow placeholders from f and must be released with
// ReleaseParts before f is released.
func (f *Format) Split(delim rune) []*Format {
	parts := make([]*Format, 0, 4)
	current := newPart(f, f.start)
	width := utf8.RuneLen(delim)

	for _, it := range f.Items {
		lit, ok := it.(*LiteralText)
		if !ok {
			current.Items = append(current.Items, it)
			current.HasNested = true
			continue
		}
		if lit.escaped || lit.Err != nil {
			current.Items = append(current.Items, lit.copyTo(current))
			continue
		}

		offset := lit.start
		text := lit.RawText()
		for {
			i := strings.IndexRune(text, delim)
			if i < 0 {
				if text != "" {
					current.Items = append(current.Items, NewLiteralText(f.base, offset, offset+len(text), current))
				}
				break
			}
			if i > 0 {
				current.Items = append(current.Items, NewLiteralText(f.base, offset, offset+i, current))
			}
			current.end = offset + i
			parts = append(parts, current)

			offset += i + width
			text = text[i+width:]
			current = newPart(f, offset)
		}
	}
	current.end = f.end
	return append(parts, current)
}

func newPart(of *Format, start int) *Format {
	p := NewFormat(of.base, start, start, of.Parent)
	p.part = true
	return p
}

// ReleaseParts releases formats returned by Split.
func ReleaseParts(parts []*Format) {
	for _, p := range parts {
		p.Release()
	}
}

// Release returns the format and every node it owns to their pools.
// The format must not be used afterwards.
func (f *Format) Release() {
	if f == nil {
		return
	}
	for _, it := range f.Items {
		if f.part {
			if _, ok := it.(*Placeholder); ok {
				continue
			}
		}
		it.release()
	}
	mustReturn(formats().Return(f))
}

func (f *Format) clear() {
	f.span = span{}
	f.Parent = nil
	clear(f.Items)
	f.Items = f.Items[:0]
	f.HasNested = false
	f.part = false
}
