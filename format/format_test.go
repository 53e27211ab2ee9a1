package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/fmtkit/pool"
)

// buildTree assembles "a|b {x.y:c|d} e|f" by hand.
func buildTree() *Format {
	const base = "a|b {x.y:c|d} e|f"
	root := NewFormat(base, 0, len(base), nil)
	root.Items = append(root.Items, NewLiteralText(base, 0, 4, root))

	ph := NewPlaceholder(base, 4, root, 0)
	ph.Selectors = append(ph.Selectors,
		NewSelector(base, 5, 6, 5, 0, ph),
		NewSelector(base, 7, 8, 6, 1, ph),
	)
	ph.Format = NewFormat(base, 9, 12, ph)
	ph.Format.Items = append(ph.Format.Items, NewLiteralText(base, 9, 12, ph.Format))
	ph.SetEndIndex(13)
	root.Items = append(root.Items, ph)
	root.HasNested = true

	root.Items = append(root.Items, NewLiteralText(base, 13, len(base), root))
	return root
}

func activeCounts() []int {
	stats := PoolStats()
	out := make([]int, len(stats))
	for i, st := range stats {
		out[i] = st.Active
	}
	return out
}

func TestFormat_String(t *testing.T) {
	f := buildTree()
	defer f.Release()

	assert.Equal(t, "a|b {x.y:c|d} e|f", f.String())
	ph := f.Items[1].(*Placeholder)
	assert.Equal(t, "{x.y:c|d}", ph.String())
	assert.Equal(t, "{x.y:c|d}", ph.RawText())
	assert.Equal(t, "x.y", ph.SelectorsText())
	assert.Equal(t, ".", ph.Selectors[1].Operator())
	assert.Equal(t, "", ph.Selectors[0].Operator())
	assert.Len(t, f.Placeholders(), 1)
}

func TestFormat_Split(t *testing.T) {
	f := buildTree()
	defer f.Release()

	parts := f.Split('|')
	defer ReleaseParts(parts)

	got := make([]string, len(parts))
	for i, p := range parts {
		got[i] = p.String()
		assert.Equal(t, p.RawText(), p.String(), "part %d span", i)
	}
	want := []string{"a", "b {x.y:c|d} e", "f"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Split() mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, parts[1].HasNested)
	assert.Same(t, f.Items[1], parts[1].Items[1], "placeholders are borrowed")
}

func TestFormat_SplitNoDelimiter(t *testing.T) {
	f := buildTree()
	defer f.Release()

	parts := f.Split('#')
	defer ReleaseParts(parts)

	require.Len(t, parts, 1)
	assert.Equal(t, f.String(), parts[0].String())
}

func TestFormat_ReleaseBalancesPools(t *testing.T) {
	before := activeCounts()

	f := buildTree()
	parts := f.Split('|')
	ReleaseParts(parts)
	f.Release()

	assert.Equal(t, before, activeCounts())
}

func TestLiteralText_Escaped(t *testing.T) {
	const base = `a\nb`
	f := NewFormat(base, 0, len(base), nil)
	defer f.Release()

	lit := NewEscapedLiteral(base, 1, 3, "\n", f)
	f.Items = append(f.Items, NewLiteralText(base, 0, 1, f), lit, NewLiteralText(base, 3, 4, f))

	assert.True(t, lit.IsEscaped())
	assert.Equal(t, `\n`, lit.RawText())
	assert.Equal(t, "\n", lit.Text())
	assert.Equal(t, base, f.String())
	assert.Equal(t, "a\nb", f.Text())
}

func TestSentinels_CannotBeReturned(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		pool.SetEnabled(enabled)
		assert.ErrorIs(t, formats().Return(initFormat), pool.ErrSentinel)
		assert.ErrorIs(t, placeholders().Return(initPlaceholder), pool.ErrSentinel)
		assert.ErrorIs(t, selectors().Return(initSelector), pool.ErrSentinel)
		assert.ErrorIs(t, literals().Return(initLiteral), pool.ErrSentinel)
	}
	pool.SetEnabled(true)

	assert.Panics(t, func() { initFormat.Release() })
}

func TestClear_ResetsParentToSentinel(t *testing.T) {
	f := buildTree()
	ph := f.Items[1].(*Placeholder)
	sel := ph.Selectors[0]
	f.Release()

	assert.Same(t, initFormat, ph.Parent)
	assert.Same(t, initPlaceholder, sel.Parent)
	assert.Empty(t, ph.Selectors)
	assert.Nil(t, ph.Format)
}
