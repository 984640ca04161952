package cmd

import (
	"github.com/spf13/cobra"

	"github.com/preston-bernstein/ipl-stats-service/internal/views"
)

func newEditionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "editions",
		Short: "List view editions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, false)
			if err != nil {
				return err
			}
			catalog := s.service.Catalog()
			editions := catalog.Editions()
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), editions)
			}
			rows := make([][]string, 0, len(editions))
			for _, e := range editions {
				def := ""
				if e.Name == catalog.Default() {
					def = "*"
				}
				rows = append(rows, []string{e.Name, e.Title, itoa(len(e.Views)), def})
			}
			return writeTable(cmd.OutOrStdout(), []string{"Edition", "Title", "Views", "Default"}, rows)
		},
	}
}

func newViewsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "views",
		Short: "List the views of an edition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, false)
			if err != nil {
				return err
			}
			edition, err := s.service.Catalog().Edition("")
			if err != nil {
				return err
			}
			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), edition)
			}
			rows := make([][]string, 0, len(edition.Views))
			for _, v := range edition.Views {
				rows = append(rows, []string{v.Name, v.Title, string(v.Operation), inputLabel(v)})
			}
			return writeTable(cmd.OutOrStdout(), []string{"View", "Title", "Operation", "Input"}, rows)
		},
	}
}

func inputLabel(v views.View) string {
	if !v.Entity {
		return "-"
	}
	return string(v.Vocabulary)
}
