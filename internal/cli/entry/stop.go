package entry

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/format"
)

// StopCmd returns the stop command
func StopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the running entry",
		Long:  "Stop the timer and record the running entry. Fails if nothing is running.",
		Args:  cobra.NoArgs,
		RunE:  runStop,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	entry, err := sess.Stop(ctx)
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

	now := sess.Workspace().Clock.Now()
	agg := sess.Workspace().Aggregator
	fmt.Printf("■ Stopped '%s' after %s (ID: %d)\n",
		untitled(entry.Description), format.Clock(entry.DurationAt(now)), entry.ID)
	fmt.Printf("  Today: %s\n", format.Clock(agg.TotalForDay(agg.Today())))
	return nil
}
