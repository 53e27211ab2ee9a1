package extension

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/fmtkit/format"
)

type recordingRenderer struct {
	clause *format.Format
	value  any
	depth  int
}

func (r *recordingRenderer) RenderFormat(out io.StringWriter, f *format.Format, value any, args []any, depth int) error {
	r.clause, r.value, r.depth = f, value, depth
	_, err := out.WriteString("nested")
	return err
}

func activeCounts() map[string]int {
	out := map[string]int{}
	for _, st := range PoolStats() {
		out[st.Name] = st.Active
	}
	return out
}

func TestFormattingInfo_FormatNested(t *testing.T) {
	ph, _ := placeholderFor(t, "")
	clause := format.NewFormat(ph.BaseString(), 0, 0, ph)
	defer clause.Release()

	r := &recordingRenderer{}
	var out strings.Builder
	info := NewFormattingInfo(r, &out, "v", ph, []any{1}, 2, false)
	defer info.Release()

	require.NoError(t, info.FormatNested(clause, "child"))
	assert.Same(t, clause, r.clause)
	assert.Equal(t, "child", r.value)
	assert.Equal(t, 3, r.depth)
	assert.Equal(t, "nested", out.String())

	require.NoError(t, info.FormatNested(nil, "ignored"))
}

func TestInfo_ReleaseClearsAndBalances(t *testing.T) {
	before := activeCounts()
	ph, sel := placeholderFor(t, "")

	si := NewSelectorInfo("v", sel, ph, []any{1}, true)
	si.SetResult(42)
	assert.Equal(t, "x", si.Text())
	assert.Equal(t, 0, si.Index())
	si.Release()

	var out strings.Builder
	fi := NewFormattingInfo(nil, &out, "v", ph, nil, 0, false)
	fi.Write("abc")
	assert.NoError(t, fi.Err())
	fi.Release()

	assert.Equal(t, before, activeCounts())

	fresh := NewSelectorInfo(nil, sel, ph, nil, false)
	defer fresh.Release()
	_, ok := fresh.Result()
	assert.False(t, ok, "a reused context starts without a result")
}

func TestInfo_DoubleReleasePanics(t *testing.T) {
	ph, sel := placeholderFor(t, "")
	si := NewSelectorInfo(nil, sel, ph, nil, false)
	si.Release()
	assert.Panics(t, si.Release)
}
