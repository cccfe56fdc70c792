package main

import (
	"github.com/spf13/cobra"
)

func newCatalogCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return a.catalog.Encode(cmd.OutOrStdout())
		},
	}
}
