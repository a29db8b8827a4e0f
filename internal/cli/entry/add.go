package entry

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/session"
)

// AddCmd returns the add command
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [description]",
		Short: "Record a completed entry",
		Long: `Record time that was not tracked with the timer. Give --start and
either --end or --duration.

Examples:
  tock add "Standup" --start 9:00 --duration 15m
  tock add "Workshop" --start "2024-03-04 13:00" --end "2024-03-04 17:30" --project training
  tock add "Late call" --start -2h --end now
`,
		RunE: runAdd,
	}

	cmd.Flags().String("start", "", "Start time (required)")
	cmd.Flags().String("end", "", "End time")
	cmd.Flags().String("duration", "", "Length instead of --end (e.g. 45m, 1h30m)")
	cmd.Flags().StringP("project", "p", "", "Project name or ID (defaults to $TOCK_PROJECT)")
	cmd.Flags().StringP("task", "t", "", "Task name or ID")
	_ = cmd.MarkFlagRequired("start")
	cmd.MarkFlagsMutuallyExclusive("end", "duration")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	startFlag, _ := cmd.Flags().GetString("start")
	endFlag, _ := cmd.Flags().GetString("end")
	durationFlag, _ := cmd.Flags().GetString("duration")
	projectRef := cli.ProjectRef(cmd)
	taskRef, _ := cmd.Flags().GetString("task")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()
	loc := cliInstance.App.Location()
	now := sess.Workspace().Clock.Now()

	if endFlag == "" && durationFlag == "" {
		return cli.Fail(formatter, cli.Usage("one of --end or --duration is required"))
	}

	start, err := cli.ParseWhen(startFlag, now, loc)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	var in session.EntryInput
	in.Description = strings.Join(args, " ")
	in.Start = start
	if durationFlag != "" {
		d, err := cli.ParseDuration(durationFlag)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		in.End = start.Add(d)
	} else {
		if in.End, err = cli.ParseWhen(endFlag, now, loc); err != nil {
			return cli.Fail(formatter, err)
		}
	}

	if in.Refs, err = sess.ResolveNames(projectRef, taskRef); err != nil {
		return cli.Fail(formatter, err)
	}

	entry, err := sess.AddEntry(ctx, in)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", entry.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"entry": entry})
	}

	fmt.Printf("✓ Entry '%s' added successfully (ID: %d)\n", untitled(entry.Description), entry.ID)
	fmt.Printf("  %s - %s (%s)\n",
		format.Stamp(entry.Start, loc), format.Stamp(*entry.End, loc), format.Clock(entry.DurationAt(now)))
	return nil
}
