package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/fmtkit/settings"
)

func newSchemaCmd(a *app) *cobra.Command {
	var defaults string

	cmd := &cobra.Command{
		Use:     "schema",
		Short:   "Print the settings JSON schema",
		GroupID: GroupInspect,
		Args:    cobra.NoArgs,
		Example: `  fmtkit schema                 # JSON schema of the settings file
  fmtkit schema --defaults yaml # Effective settings as YAML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				out []byte
				err error
			)
			if defaults != "" {
				out, err = settings.Encode(a.settings, "."+defaults)
			} else {
				out, err = settings.SchemaJSON()
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return err
		},
	}

	cmd.Flags().StringVar(&defaults, "defaults", "", "Print the effective settings instead, as yaml, toml or json")

	return cmd
}
