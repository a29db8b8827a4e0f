package entry

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/session"
)

// EditCmd returns the edit command
func EditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry",
		Long: `Change the description, project, task, start or end of an entry.
Only the given flags are applied. The running entry cannot be given an end;
stop it instead.

Examples:
  tock edit 4 --description "Write quarterly report"
  tock edit 4 --project web --task deploy
  tock edit 4 --no-project
  tock edit 4 --start 8:45 --end 10:00
`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().String("description", "", "New description")
	cmd.Flags().StringP("project", "p", "", "Project name or ID")
	cmd.Flags().StringP("task", "t", "", "Task name or ID")
	cmd.Flags().Bool("no-project", false, "Remove the project (and task)")
	cmd.Flags().Bool("no-task", false, "Remove the task")
	cmd.Flags().String("start", "", "New start time")
	cmd.Flags().String("end", "", "New end time")
	cmd.MarkFlagsMutuallyExclusive("project", "no-project")
	cmd.MarkFlagsMutuallyExclusive("task", "no-task")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	flags := cmd.Flags()

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()
	loc := cliInstance.App.Location()
	now := sess.Workspace().Clock.Now()

	id, err := cli.ParseEntryID(args[0])
	if err != nil {
		return cli.Fail(formatter, err)
	}

	var patch session.EntryPatch
	if flags.Changed("description") {
		d, _ := flags.GetString("description")
		patch.Description = &d
	}
	patch.ClearProject, _ = flags.GetBool("no-project")
	patch.ClearTask, _ = flags.GetBool("no-task")

	projectRef, _ := flags.GetString("project")
	taskRef, _ := flags.GetString("task")
	if projectRef != "" || taskRef != "" {
		refs, err := sess.ResolveNames(projectRef, taskRef)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		patch.ProjectID, patch.TaskID = refs.ProjectID, refs.TaskID
	}

	if flags.Changed("start") {
		s, _ := flags.GetString("start")
		t, err := cli.ParseWhen(s, now, loc)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		patch.Start = &t
	}
	if flags.Changed("end") {
		s, _ := flags.GetString("end")
		t, err := cli.ParseWhen(s, now, loc)
		if err != nil {
			return cli.Fail(formatter, err)
		}
		patch.End = &t
	}

	entry, err := sess.EditEntry(ctx, id, patch)
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

	fmt.Printf("✓ Entry %d updated successfully\n", entry.ID)
	return nil
}
