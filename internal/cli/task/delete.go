package task

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/tui/huhforms"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task>",
		Short: "Delete a task",
		Long: `Delete a task given by ID, or by name together with --project
(requires confirmation unless --force or --quiet). Entries keep their
reference and show the task as unknown.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().StringP("project", "p", "", "Project to look the task name up in")
	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	projectRef, _ := cmd.Flags().GetString("project")
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	refs, err := sess.ResolveNames(projectRef, args[0])
	if err != nil {
		return cli.Fail(formatter, err)
	}
	id := *refs.TaskID
	task, _ := sess.Workspace().Catalog.Task(id)

	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.IsTerminal(os.Stdin) {
			return cli.Fail(formatter, cli.Usage("refusing to delete without confirmation; pass --force"))
		}
		confirmed := false
		form := huhforms.ConfirmDeleteForm(fmt.Sprintf("Delete task '%s'?", task.Name), &confirmed).
			WithTheme(huhforms.Theme(cliInstance.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return cli.Fail(formatter, errors.New("confirmation aborted"))
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if err := sess.DeleteTask(ctx, id); err != nil {
		return cli.Fail(formatter, err)
	}
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"task_id": id})
	}

	fmt.Printf("✓ Task '%s' deleted successfully\n", task.Name)
	return nil
}
