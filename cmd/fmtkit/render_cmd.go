package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtkit/loader"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		file     string
		dataPath string
		dir      string
		noNL     bool
	)

	cmd := &cobra.Command{
		Use:     "render [TEMPLATE] [ARG...]",
		Short:   "Render a template",
		GroupID: GroupRender,
		Long: `Render a template to stdout.

The template is the first argument, the contents of --file, or with --dir the
named template of a template directory. A --data document becomes argument 0
and positional arguments follow it.`,
		Example: `  fmtkit render "Hello {0}!" World
  fmtkit render -d user.yaml "{Name.ToUpper} is {Age} years old"
  fmtkit render -f greeting.tmpl -d user.json
  fmtkit render --dir templates mail/welcome -d user.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tmpl, name string
			switch {
			case dir != "":
				if len(args) == 0 {
					return errors.New("--dir needs a template name")
				}
				name, args = args[0], args[1:]
			case file != "":
				raw, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read template: %w", err)
				}
				tmpl = string(raw)
			default:
				if len(args) == 0 {
					return errors.New("no template given")
				}
				tmpl, args = args[0], args[1:]
			}

			targs, err := templateArgs(dataPath, args)
			if err != nil {
				return err
			}

			var out string
			if dir != "" {
				set, err := loader.New(dir, a.engine, loader.WithLogger(a.logger))
				if err != nil {
					return err
				}
				out, err = set.Render(name, targs...)
				if err != nil {
					return err
				}
			} else {
				out, err = a.engine.Render(tmpl, targs...)
				if err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			if noNL {
				_, err = fmt.Fprint(w, out)
			} else {
				_, err = fmt.Fprintln(w, out)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the template from a file")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data document (.yaml, .toml or .json) used as argument 0")
	cmd.Flags().StringVar(&dir, "dir", "", "Template directory; the first argument names the template")
	cmd.Flags().BoolVarP(&noNL, "no-newline", "n", false, "Do not print a trailing newline")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")

	return cmd
}
