package entry

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/session"
)

// ListCmd returns the list command
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List time entries",
		Long: `List the entries of one day (today by default), or every entry with --all.
Durations in a day listing only count the part of an entry inside that day.

Examples:
  tock list
  tock list --date yesterday
  tock list --all --json
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("date", "d", "today", "Day to list (today, yesterday, YYYY-MM-DD, ...)")
	cmd.Flags().Bool("all", false, "List every entry in insertion order")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	dateFlag, _ := cmd.Flags().GetString("date")
	all, _ := cmd.Flags().GetBool("all")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()
	agg := sess.Workspace().Aggregator
	loc := cliInstance.App.Location()

	var (
		lines []session.EntryLine
		total time.Duration
		title string
	)
	if all {
		lines = sess.Lines(sess.ListEntries(), nil)
		for _, l := range lines {
			total += l.Duration
		}
		title = "All entries"
	} else {
		day, err := cli.ParseDate(dateFlag, agg.Today(), loc)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		report := sess.Day(day)
		lines, total = report.Entries, report.Total
		title = format.Day(day)
	}

	if formatter.Quiet {
		for _, l := range lines {
			fmt.Printf("%d\n", l.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{
			"entries": lines,
			"total":   total,
		})
	}

	if len(lines) == 0 {
		fmt.Println("No entries found")
		return nil
	}

	fmt.Printf("%s: %d entries\n", title, len(lines))
	fmt.Println(cli.EntryTable(lines, loc, sess.Workspace().Clock.Now()))
	fmt.Printf("Total: %s (%s)\n", format.Clock(total), format.Hours(total))
	return nil
}
