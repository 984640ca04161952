package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
)

type resolution struct {
	Input       string         `json:"input"`
	Vocabulary  dataset.Column `json:"vocabulary"`
	Match       string         `json:"match,omitempty"`
	Found       bool           `json:"found"`
	Score       float64        `json:"score"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

func newResolveCmd(opts *options) *cobra.Command {
	var vocabulary string
	cmd := &cobra.Command{
		Use:   "resolve <name...>",
		Short: "Resolve a possibly misspelled name against a dataset column",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := dataset.ParseColumn(vocabulary)
			if err != nil {
				return err
			}
			s, err := opts.open(cmd, true)
			if err != nil {
				return err
			}
			ds, _ := s.service.Current()
			runner := s.service.Runner()
			res := runner.Resolver()
			vocab := ds.Vocabulary(col)

			out := resolution{Input: strings.Join(args, " "), Vocabulary: col}
			if match, ok := res.Resolve(out.Input, vocab); ok {
				out.Match, out.Found = match, true
				out.Score = res.Score(out.Input, match)
			} else {
				out.Suggestions = res.Suggest(out.Input, vocab, runner.SuggestionLimit())
			}

			if opts.asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			w := cmd.OutOrStdout()
			if !out.Found {
				printSuggestions(w, out.Input, out.Suggestions)
				return fmt.Errorf("no match for %q", out.Input)
			}
			fmt.Fprintf(w, "%s -> %s (score %.2f)\n", out.Input, out.Match, out.Score)
			return nil
		},
	}
	cmd.Flags().StringVar(&vocabulary, "vocabulary", string(dataset.MatchTeam1), "column to resolve against")
	return cmd
}
