package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRunCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run <view> [name...]",
		Short: "Run a view, resolving the name against the view's vocabulary",
		Example: `  iplctl run match-results "Mumbai Indans"
  iplctl run matches-by-season
  iplctl --edition classic run winners`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd, true)
			if err != nil {
				return err
			}
			input := strings.Join(args[1:], " ")
			res, err := s.service.Run(cmd.Context(), "", args[0], input)
			if err != nil {
				return err
			}
			if opts.asJSON {
				if err := writeJSON(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			} else if err := renderResult(cmd.OutOrStdout(), res); err != nil {
				return err
			}
			if !res.Found {
				return fmt.Errorf("no match for %q", res.Input)
			}
			if res.Empty {
				return errors.New(res.EmptyReason())
			}
			return nil
		},
	}
}
