package entry

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/styles"
	"github.com/thenoetrevino/tock/internal/format"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the timer state and today's total",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	st := sess.Status()
	agg := sess.Workspace().Aggregator
	today := agg.TotalForDay(agg.Today())

	if formatter.Quiet {
		if st.Active != nil {
			fmt.Printf("%d\n", st.Active.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{
			"status":      st,
			"today_total": today,
		})
	}

	if st.Active == nil {
		fmt.Printf("%s  Today: %s\n", styles.StoppedStyle.Render("Idle"), format.Clock(today))
		return nil
	}

	loc := cliInstance.App.Location()
	catalog := sess.Workspace().Catalog
	lines := []string{
		styles.RunningStyle.Render("● Running") + "  " + styles.TitleStyle.Render(untitled(st.Active.Description)),
		"",
		styles.Field("ID", fmt.Sprintf("%d", st.Active.ID)),
		styles.Field("Project", catalog.ProjectLabel(st.Active.ProjectID)),
		styles.Field("Task", catalog.TaskLabel(st.Active.TaskID)),
		styles.Field("Started", format.Stamp(st.Active.Start, loc)),
		styles.Field("Elapsed", format.Clock(st.Elapsed)),
		styles.Field("Today", format.Clock(today)),
	}
	fmt.Println(styles.RenderCard(strings.Join(lines, "\n")))
	return nil
}
