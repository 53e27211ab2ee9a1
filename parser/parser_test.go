package parser

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/fmtkit/format"
	"github.com/randalmurphal/fmtkit/settings"
)

var testFormatters = []string{"cond", "list", "default"}

func newParser(mod func(*settings.Settings)) *Parser {
	s := settings.Default()
	if mod != nil {
		mod(&s)
	}
	return New(s)
}

func withAction(a settings.ErrorAction) func(*settings.Settings) {
	return func(s *settings.Settings) { s.Parser.ErrorAction = a }
}

func mustParse(t *testing.T, p *Parser, tmpl string) *format.Format {
	t.Helper()
	f, err := p.Parse(tmpl, testFormatters)
	require.NoError(t, err)
	require.NotNil(t, f)
	t.Cleanup(f.Release)
	return f
}

func partStrings(parts []*format.Format) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.String()
	}
	return out
}

func activeCounts() map[string]int {
	out := map[string]int{}
	for _, st := range format.PoolStats() {
		out[st.Name] = st.Active
	}
	return out
}

func TestParse_RoundTrip(t *testing.T) {
	p := newParser(nil)
	tests := []string{
		"",
		"plain text",
		"{0}",
		"a {Name} b",
		"{a.b?.c[0]?[1]}",
		"{[0].Name}",
		"{0,10}",
		"{0,-5:x}",
		"{}",
		"{:inner}",
		"{0:cond:yes|no}",
		"{0:list(sep):{}|, }",
		`\{x\} \n \u0041`,
		"{{0}}",
		"{0:{1:{2}}}",
		"{Items:{Name}|, }",
	}
	for _, tmpl := range tests {
		t.Run(tmpl, func(t *testing.T) {
			f := mustParse(t, p, tmpl)
			assert.Equal(t, tmpl, f.String())
		})
	}
}

func TestParse_Split(t *testing.T) {
	p := newParser(nil)
	f := mustParse(t, p, " a|aa {bbb: ccc dd|d {:|||} {eee} ff|f } gg|g ")

	parts := f.Split('|')
	defer format.ReleaseParts(parts)
	want := []string{" a", "aa {bbb: ccc dd|d {:|||} {eee} ff|f } gg", "g "}
	if diff := cmp.Diff(want, partStrings(parts)); diff != "" {
		t.Errorf("root split mismatch (-want +got):\n%s", diff)
	}

	ph := f.Placeholders()[0]
	require.NotNil(t, ph.Format)
	nested := ph.Format.Split('|')
	defer format.ReleaseParts(nested)
	want = []string{" ccc dd", "d {:|||} {eee} ff", "f "}
	if diff := cmp.Diff(want, partStrings(nested)); diff != "" {
		t.Errorf("nested split mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_MissingClosingBrace(t *testing.T) {
	p := newParser(nil)

	f, err := p.Parse("{Name", nil)
	require.Error(t, err)
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrSyntax))

	var perr *Errors
	require.True(t, errors.As(err, &perr))
	require.Len(t, perr.Issues, 1)
	assert.Equal(t, 5, perr.First().Position)
	assert.Equal(t, IssueMissingClosingBrace, perr.First().Issue)
	assert.Contains(t, err.Error(), "closing brace")
}

func TestParse_DoubledBraces(t *testing.T) {
	p := newParser(nil)
	f := mustParse(t, p, "{0} {{0}} {{{0}}}")

	var kinds []string
	for _, it := range f.Items {
		switch v := it.(type) {
		case *format.Placeholder:
			kinds = append(kinds, "ph:"+v.SelectorsText())
		case *format.LiteralText:
			if v.IsEscaped() {
				kinds = append(kinds, "esc:"+v.Text())
			} else {
				kinds = append(kinds, "lit:"+v.Text())
			}
		}
	}
	want := []string{
		"ph:0", "lit: ",
		"esc:{", "lit:0", "esc:}", "lit: ",
		"esc:{", "ph:0", "esc:}",
	}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DoubledBracesOnlyAtRoot(t *testing.T) {
	p := newParser(func(s *settings.Settings) { s.Parser.EscapeMode = settings.EscapeDoubledBraces })
	_, err := p.Parse("{0:{{x}}}", nil)
	assert.Error(t, err, "nested {{ opens a placeholder")

	p = newParser(func(s *settings.Settings) { s.Parser.EscapeMode = settings.EscapeBackslash })
	_, err = p.Parse("{{0}}", nil)
	assert.Error(t, err)
}

func TestParse_Escapes(t *testing.T) {
	p := newParser(nil)
	tmpl := `a\nb\{c\}\u0041\q`
	f := mustParse(t, p, tmpl)

	assert.Equal(t, "a\nb{c}A\\q", f.Text())
	assert.Equal(t, tmpl, f.String())

	escaped := 0
	for _, it := range f.Items {
		if lit, ok := it.(*format.LiteralText); ok && lit.IsEscaped() {
			escaped++
		}
	}
	assert.Equal(t, 4, escaped)
}

func TestParse_EscapesDisabled(t *testing.T) {
	p := newParser(func(s *settings.Settings) { s.Parser.EscapeMode = settings.EscapeDoubledBraces })
	f := mustParse(t, p, `a\nb`)
	assert.Equal(t, `a\nb`, f.Text())
}

func TestParse_CustomEscapeChar(t *testing.T) {
	p := newParser(func(s *settings.Settings) { s.Parser.EscapeChar = "~" })
	f := mustParse(t, p, `~{x~} ~~ \n`)
	assert.Equal(t, `{x} ~ \n`, f.Text())
}

func TestParse_Selectors(t *testing.T) {
	p := newParser(nil)
	f := mustParse(t, p, "{a.b?.c[0]?[1]}")

	ph := f.Placeholders()[0]
	type sel struct {
		Text, Op      string
		Index         int
		Null, Indexer bool
	}
	var got []sel
	for _, s := range ph.Selectors {
		got = append(got, sel{s.Text(), s.Operator(), s.Index, s.IsNullable(), s.IsIndexer()})
	}
	want := []sel{
		{"a", "", 0, false, false},
		{"b", ".", 1, false, false},
		{"c", "?.", 2, true, false},
		{"0", "[", 3, false, true},
		{"1", "?[", 4, true, true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("selectors mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "a.b?.c[0]?[1]", ph.SelectorsText())
	assert.Same(t, f, ph.Parent)
	assert.Same(t, ph, ph.Selectors[0].Parent)
}

func TestParse_CustomCharacters(t *testing.T) {
	p := newParser(func(s *settings.Settings) {
		s.Parser.SelectorChars = "$"
		s.Parser.OperatorChars = "!"
	})
	f := mustParse(t, p, "{$a!b}")
	ph := f.Placeholders()[0]
	require.Len(t, ph.Selectors, 2)
	assert.Equal(t, "$a", ph.Selectors[0].Text())
	assert.Equal(t, "!", ph.Selectors[1].Operator())
}

func TestParse_Alignment(t *testing.T) {
	p := newParser(nil)
	tests := []struct {
		tmpl  string
		width int
	}{
		{"{0,10}", 10},
		{"{0,-7}", -7},
		{"{0,3:x}", 3},
	}
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			f := mustParse(t, p, tt.tmpl)
			assert.Equal(t, tt.width, f.Placeholders()[0].Alignment)
		})
	}
}

func TestParse_FormatterName(t *testing.T) {
	tests := []struct {
		name       string
		tmpl       string
		formatters []string
		ignoreCase bool
		wantName   string
		wantOpts   string
		wantFormat string
	}{
		{name: "known", tmpl: "{0:cond:a|b}", formatters: testFormatters, wantName: "cond", wantFormat: "a|b"},
		{name: "unknown", tmpl: "{0:cond:a|b}", wantFormat: "cond:a|b"},
		{name: "options", tmpl: "{0:list(, ):x}", formatters: testFormatters, wantName: "list", wantOpts: ", ", wantFormat: "x"},
		{name: "empty clause", tmpl: "{0:cond:}", formatters: testFormatters, wantName: "cond"},
		{name: "options with empty clause", tmpl: "{0:list(, ):}", formatters: testFormatters, wantName: "list", wantOpts: ", "},
		{name: "options without colon stay text", tmpl: "{0:list(, )}", formatters: testFormatters, wantFormat: "list(, )"},
		{name: "not a prefix", tmpl: "{0:a b:c}", formatters: []string{"a"}, wantFormat: "a b:c"},
		{name: "case insensitive", tmpl: "{0:COND:x}", formatters: testFormatters, ignoreCase: true, wantName: "COND", wantFormat: "x"},
		{name: "case sensitive", tmpl: "{0:COND:x}", formatters: testFormatters, wantFormat: "COND:x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newParser(func(s *settings.Settings) {
				if tt.ignoreCase {
					s.CaseSensitivity = settings.CaseInsensitive
				}
			})
			f, err := p.Parse(tt.tmpl, tt.formatters)
			require.NoError(t, err)
			defer f.Release()

			ph := f.Placeholders()[0]
			assert.Equal(t, tt.wantName, ph.FormatterName)
			assert.Equal(t, tt.wantOpts, ph.FormatterOptions)
			require.NotNil(t, ph.Format)
			assert.Equal(t, tt.wantFormat, ph.Format.String())
			assert.Equal(t, tt.tmpl, f.String())
		})
	}
}

func TestParse_Nesting(t *testing.T) {
	p := newParser(nil)
	f := mustParse(t, p, "{0:{1:{2}}}")

	outer := f.Placeholders()[0]
	assert.Equal(t, 0, outer.NestedDepth)
	assert.True(t, f.HasNested)

	mid := outer.Format.Placeholders()[0]
	assert.Equal(t, 1, mid.NestedDepth)
	assert.Same(t, outer.Format, mid.Parent)

	inner := mid.Format.Placeholders()[0]
	assert.Equal(t, 2, inner.NestedDepth)
	assert.Nil(t, inner.Format)
	assert.Equal(t, "{2}", inner.RawText())
}

func TestParse_InvalidTemplates(t *testing.T) {
	tests := []struct {
		tmpl  string
		issue Issue
		pos   int
	}{
		{"a {b c} d", IssueInvalidSelectorChar, 4},
		{"a}b", IssueTooManyClosingBraces, 1},
		{"{a..b}", IssueInvalidOperator, 2},
		{"{.a}", IssueInvalidOperator, 1},
		{"{a.}", IssueInvalidOperator, 2},
		{"{a[0}", IssueInvalidOperator, 4},
		{"{a]}", IssueInvalidOperator, 2},
		{"{a[b.c]}", IssueInvalidSelectorChar, 4},
		{"{0,x}", IssueInvalidAlignment, 3},
		{"{0,}", IssueInvalidAlignment, 3},
		{"x {a:{b:{c", IssueMissingClosingBrace, 10},
	}
	p := newParser(nil)
	for _, tt := range tests {
		t.Run(tt.tmpl, func(t *testing.T) {
			_, err := p.Parse(tt.tmpl, nil)
			var perr *Errors
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.issue, perr.First().Issue)
			assert.Equal(t, tt.pos, perr.First().Position)
		})
	}
}

func TestParse_ErrorActions(t *testing.T) {
	for _, action := range []settings.ErrorAction{
		settings.MaintainTokens,
		settings.Ignore,
		settings.OutputErrorInResult,
	} {
		t.Run(action.String(), func(t *testing.T) {
			p := newParser(withAction(action))
			f, err := p.Parse("a {b c} d", nil)
			require.NoError(t, err)
			defer f.Release()

			require.Len(t, f.Items, 3)
			bad, ok := f.Items[1].(*format.LiteralText)
			require.True(t, ok)
			require.Error(t, bad.Err)
			assert.Equal(t, "{b c}", bad.RawText())
			assert.Equal(t, " d", f.Items[2].RawText())
		})
	}
}

func TestParseAll_CollectsIssues(t *testing.T) {
	p := newParser(nil)
	f, errs := p.ParseAll("{a b} {ok} } {c", nil)
	require.NotNil(t, f)
	defer f.Release()

	require.True(t, errs.HasIssues())
	var issues []Issue
	for _, e := range errs.Issues {
		issues = append(issues, e.Issue)
	}
	assert.Equal(t, []Issue{IssueInvalidSelectorChar, IssueTooManyClosingBraces, IssueMissingClosingBrace}, issues)
	assert.Len(t, f.Placeholders(), 1)
	assert.Equal(t, "{a b} {ok} } {c", f.String())
}

func TestParse_UnterminatedNestedIsMalformed(t *testing.T) {
	p := newParser(withAction(settings.MaintainTokens))
	f, err := p.Parse("x {a:{b:{c", nil)
	require.NoError(t, err)
	defer f.Release()

	require.Len(t, f.Items, 2)
	bad := f.Items[1].(*format.LiteralText)
	assert.Equal(t, "{a:{b:{c", bad.RawText())
	assert.Error(t, bad.Err)
}

func TestValidate(t *testing.T) {
	p := newParser(nil)
	assert.Nil(t, p.Validate("{a} {b.c}"))
	assert.True(t, p.Validate("{a").HasIssues())
}

func TestParse_PoolBalance(t *testing.T) {
	before := activeCounts()

	templates := []string{
		"{0} {{0}} {{{0}}}",
		" a|aa {bbb: ccc dd|d {:|||} {eee} ff|f } gg|g ",
		`a\nb {x,5:cond:{y}|z}`,
		"{a b} } {a:{b:{c",
		"{Name",
		"x {a:{b",
	}
	for _, action := range []settings.ErrorAction{settings.ThrowError, settings.MaintainTokens} {
		p := newParser(withAction(action))
		for _, tmpl := range templates {
			f, _ := p.Parse(tmpl, testFormatters)
			if f != nil {
				parts := f.Split('|')
				format.ReleaseParts(parts)
				f.Release()
			}
		}
	}

	assert.Equal(t, before, activeCounts())
}
