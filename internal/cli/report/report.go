// Package report holds the read-only reporting commands: day reports,
// week totals and the session summary
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/session"
)

// DayCmd returns the report command
func DayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the report of one day",
		Long: `Show a day's entries, its total, the week it falls in and the
project/task breakdown, as markdown.

Examples:
  tock report
  tock report --date yesterday
  tock report --date 2024-03-04 --json
`,
		Args: cobra.NoArgs,
		RunE: runDay,
	}

	cmd.Flags().StringP("date", "d", "today", "Day to report")
	cmd.Flags().Bool("raw", false, "Print plain markdown even on a terminal")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDay(cmd *cobra.Command, args []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	raw, _ := cmd.Flags().GetBool("raw")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()
	loc := cliInstance.App.Location()

	day, err := cli.ParseDate(dateFlag, sess.Workspace().Aggregator.Today(), loc)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	report := sess.Day(day)

	if formatter.Quiet {
		fmt.Println(format.Clock(report.Total))
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"report": report})
	}

	md := format.DayMarkdown(report, loc)
	if raw {
		fmt.Print(md)
		return nil
	}
	cli.PrintMarkdown(md)
	return nil
}

// WeekCmd returns the week command
func WeekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Show the totals of a week",
		Long: `Show the seven day totals of the week containing the given date
(today by default) and where the week's time went. Weeks begin on the
configured week_start.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runWeek,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

// weekReport is a week and its breakdown
type weekReport struct {
	Week      aggregate.Week  `json:"week"`
	Total     time.Duration   `json:"total"`
	Breakdown []aggregate.Row `json:"breakdown"`
}

func runWeek(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	ws := cliInstance.Session().Workspace()
	loc := cliInstance.App.Location()
	agg := ws.Aggregator

	day := agg.Today()
	if len(args) > 0 {
		if day, err = cli.ParseDate(args[0], day, loc); err != nil {
			return cli.Fail(formatter, err)
		}
	}

	w := agg.WeekOf(day)
	report := weekReport{Week: w, Total: w.Total(), Breakdown: weekBreakdown(agg, w)}

	if formatter.Quiet {
		fmt.Println(format.Clock(report.Total))
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"report": report})
	}

	fmt.Printf("Week of %s\n", format.Day(w.Start))
	fmt.Println(cli.WeekTable(w, ws.Clock.Now(), loc))
	if len(report.Breakdown) > 0 {
		fmt.Println(cli.BreakdownTable(report.Breakdown))
	}
	fmt.Printf("Total: %s (%s)\n", format.Clock(report.Total), format.Hours(report.Total))
	return nil
}

// weekBreakdown merges the daily breakdowns of w, so entries crossing the
// week's edges only count their part inside it
func weekBreakdown(agg *aggregate.Aggregator, w aggregate.Week) []aggregate.Row {
	merged := make(map[aggregate.GroupKey]aggregate.Row)
	for i := range w.Days {
		for _, r := range agg.BreakdownOn(w.Start.AddDays(i)) {
			if prev, ok := merged[r.Key]; ok {
				r.Duration += prev.Duration
			}
			merged[r.Key] = r
		}
	}

	rows := make([]aggregate.Row, 0, len(merged))
	for _, r := range merged {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Project != rows[j].Project {
			return rows[i].Project < rows[j].Project
		}
		return rows[i].Task < rows[j].Task
	})
	return rows
}

// SummaryCmd returns the summary command
func SummaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the session summary",
		Long: `Show the summary printed when a session ends: every entry, today's
total, this week and the project/task breakdown. Nothing is stopped or saved.`,
		Args: cobra.NoArgs,
		RunE: runSummary,
	}

	cmd.Flags().Bool("raw", false, "Print plain markdown even on a terminal")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	summary := cliInstance.Session().Summary()
	return PrintSummary(formatter, summary, cliInstance.App.Location(), raw)
}

// PrintSummary writes a session summary in the formatter's mode
func PrintSummary(formatter *cli.OutputFormatter, summary *session.Summary, loc *time.Location, raw bool) error {
	if formatter.Quiet {
		fmt.Println(format.Clock(summary.Total))
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"summary": summary})
	}

	md := format.SummaryMarkdown(summary, loc)
	if raw {
		fmt.Print(md)
		return nil
	}
	cli.PrintMarkdown(md)
	return nil
}

