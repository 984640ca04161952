package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Describe the loaded dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, true)
			if err != nil {
				return err
			}
			ds, _ := s.service.Current()
			summary := ds.Summary()
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), summary)
			}
			return writeTable(cmd.OutOrStdout(), []string{"Field", "Value"}, [][]string{
				{"Source", summary.Source},
				{"Matches", itoa(summary.Matches)},
				{"Deliveries", itoa(summary.Deliveries)},
				{"Seasons", strings.Join(summary.Seasons, ", ")},
			})
		},
	}
}
