package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtkit/pool"
	"github.com/randalmurphal/fmtkit/settings"
)

func newPoolsCmd(a *app) *cobra.Command {
	var (
		output string
		times  int
	)

	cmd := &cobra.Command{
		Use:     "pools [TEMPLATE] [ARG...]",
		Short:   "Show object pool statistics",
		GroupID: GroupInspect,
		Long: `Show object pool statistics, optionally after rendering a template
a number of times.`,
		Example: `  fmtkit pools
  fmtkit pools -t 1000 "{0:list:{}|, }" a b c
  fmtkit pools -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				targs, err := templateArgs("", args[1:])
				if err != nil {
					return err
				}
				for range max(times, 1) {
					if _, err := a.engine.Render(args[0], targs...); err != nil {
						return err
					}
				}
			}

			stats := pool.All()
			w := cmd.OutOrStdout()
			if output != "" && output != "table" {
				out, err := settings.Encode(stats, "."+output)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(out))
				return err
			}

			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tALL\tACTIVE\tINACTIVE\tMAX\tTHREAD-SAFE")
			for _, s := range stats {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%t\n", s.Name, s.All, s.Active, s.Inactive, s.MaxSize, s.ThreadSafe)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format: table, yaml or json")
	cmd.Flags().IntVarP(&times, "times", "t", 1, "Number of renders before reading the statistics")

	return cmd
}
