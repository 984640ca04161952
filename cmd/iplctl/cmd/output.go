package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/preston-bernstein/ipl-stats-service/internal/query"
	"github.com/preston-bernstein/ipl-stats-service/internal/views"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func itoa(n int) string { return strconv.Itoa(n) }

func printSuggestions(w io.Writer, input string, suggestions []string) {
	fmt.Fprintf(w, "No match for %q.\n", input)
	if len(suggestions) > 0 {
		fmt.Fprintln(w, mutedStyle.Render("Did you mean: "+strings.Join(suggestions, ", ")+"?"))
	}
}

// renderResult prints a view result as a titled table.
func renderResult(w io.Writer, res views.Result) error {
	title := res.Title
	if res.Resolved != "" {
		title += ": " + res.Resolved
	}
	fmt.Fprintln(w, titleStyle.Render(title))

	if !res.Found {
		printSuggestions(w, res.Input, res.Suggestions)
		return nil
	}
	if res.Empty {
		fmt.Fprintln(w, mutedStyle.Render(res.EmptyReason()))
		return nil
	}

	switch data := res.Data.(type) {
	case query.WinLoss:
		return writeTable(w, []string{"Result", "Matches"}, [][]string{
			{"Won", itoa(data.Won)},
			{"Lost", itoa(data.Lost)},
			{"Total", itoa(data.Total())},
		})
	case views.PlayerOfMatchData:
		rows := seasonRows(data.Seasons)
		rows = append(rows, []string{"Total", itoa(data.Total)})
		return writeTable(w, []string{"Season", "Awards"}, rows)
	case []query.SeasonCount:
		return writeTable(w, []string{"Season", "Matches"}, seasonRows(data))
	case []query.Tally:
		rows := make([][]string, 0, len(data))
		for _, t := range data {
			rows = append(rows, []string{t.Name, itoa(t.Value)})
		}
		return writeTable(w, tallyHeaders(res.Operation), rows)
	case query.TossConversion:
		return writeTable(w, []string{"Toss wins", "Match wins after toss", "Conversion %"}, [][]string{
			{itoa(data.TossWins), itoa(data.MatchWins), strconv.FormatFloat(data.Percentage, 'f', 2, 64)},
		})
	default:
		return writeJSON(w, data)
	}
}

func seasonRows(counts []query.SeasonCount) [][]string {
	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Season, itoa(c.Count)})
	}
	return rows
}

func tallyHeaders(op views.Operation) []string {
	switch op {
	case views.OpBatterVsTeams:
		return []string{"Bowling team", "Runs"}
	case views.OpBatterVsBowlers:
		return []string{"Bowler", "Runs"}
	case views.OpTopBatters, views.OpPowerplayRuns:
		return []string{"Batter", "Runs"}
	case views.OpTopWicketTakers:
		return []string{"Bowler", "Wickets"}
	case views.OpTossDecisions:
		return []string{"Decision", "Count"}
	default:
		return []string{"Team", "Wins"}
	}
}
