package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLevelsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the levels in the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cat, err := loadCatalog(opts.configPath)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tTERMINALS\tSWITCHES")
			for _, lv := range cat.List() {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", lv.ID, lv.Title, len(lv.Terminals), len(lv.Switches))
			}
			return tw.Flush()
		},
	}
}
