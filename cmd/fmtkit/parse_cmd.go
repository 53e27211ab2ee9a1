package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtkit/format"
	"github.com/randalmurphal/fmtkit/parser"
)

func newParseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "parse TEMPLATE",
		Short:   "Print the parse tree of a template",
		GroupID: GroupInspect,
		Args:    cobra.ExactArgs(1),
		Long: `Print the parse tree of a template and every syntax issue in it.

Parsing does not stop at the first issue, so the tree shows how malformed
placeholders are kept as literals.`,
		Example: `  fmtkit parse "Hello {Name,-10:text(upper):}"
  fmtkit parse "{Items:list:{}|, }"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := parser.New(a.settings)
			f, issues := p.ParseAll(args[0], a.engine.Registry().FormatterNames())
			defer f.Release()

			dumpFormat(cmd.OutOrStdout(), f, 0)

			if issues.HasIssues() {
				stderr := cmd.ErrOrStderr()
				for _, issue := range issues.Issues {
					fmt.Fprintf(stderr, "%s\n%s^ %s\n", args[0], strings.Repeat(" ", issue.Position), issue.Message)
				}
				return fmt.Errorf("%d syntax issue(s)", len(issues.Issues))
			}
			return nil
		},
	}

	return cmd
}

// dumpFormat writes one line per node, indented by depth.
func dumpFormat(w io.Writer, f *format.Format, depth int) {
	pad := strings.Repeat("  ", depth)
	for _, item := range f.Items {
		switch it := item.(type) {
		case *format.LiteralText:
			switch {
			case it.Err != nil:
				var perr *parser.Error
				msg := it.Err.Error()
				if errors.As(it.Err, &perr) {
					msg = perr.Message
				}
				fmt.Fprintf(w, "%smalformed %q [%d,%d) %s\n", pad, it.RawText(), it.StartIndex(), it.EndIndex(), msg)
			case it.IsEscaped():
				fmt.Fprintf(w, "%sescape %q -> %q [%d,%d)\n", pad, it.RawText(), it.Text(), it.StartIndex(), it.EndIndex())
			default:
				fmt.Fprintf(w, "%sliteral %q [%d,%d)\n", pad, it.RawText(), it.StartIndex(), it.EndIndex())
			}
		case *format.Placeholder:
			fmt.Fprintf(w, "%splaceholder %s [%d,%d)\n", pad, it.RawText(), it.StartIndex(), it.EndIndex())
			for _, sel := range it.Selectors {
				fmt.Fprintf(w, "%s  selector %q op=%q\n", pad, sel.Text(), sel.Operator())
			}
			if it.Alignment != 0 {
				fmt.Fprintf(w, "%s  alignment %d\n", pad, it.Alignment)
			}
			if it.FormatterName != "" {
				fmt.Fprintf(w, "%s  formatter %s(%s)\n", pad, it.FormatterName, it.FormatterOptions)
			}
			if it.Format != nil {
				fmt.Fprintf(w, "%s  format\n", pad)
				dumpFormat(w, it.Format, depth+2)
			}
		}
	}
}
