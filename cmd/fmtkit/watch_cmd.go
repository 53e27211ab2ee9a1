package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtkit/loader"
)

func newWatchCmd(a *app) *cobra.Command {
	var dataPath string

	cmd := &cobra.Command{
		Use:     "watch DIR NAME [ARG...]",
		Short:   "Re-render a template whenever its directory changes",
		GroupID: GroupRender,
		Args:    cobra.MinimumNArgs(2),
		Example: `  fmtkit watch templates mail/welcome -d user.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, name := args[0], args[1]
			targs, err := templateArgs(dataPath, args[2:])
			if err != nil {
				return err
			}

			set, err := loader.New(dir, a.engine, loader.WithLogger(a.logger))
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			render := func() {
				out, err := set.Render(name, targs...)
				if err != nil {
					a.logger.Error("render failed", slog.String("name", name), slog.Any("error", err))
					return
				}
				fmt.Fprintln(w, out)
			}

			render()
			for err := range set.Watch(cmd.Context()) {
				if err == nil {
					render()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataPath, "data", "d", "", "Data document (.yaml, .toml or .json) used as argument 0")

	return cmd
}
