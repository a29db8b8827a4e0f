package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/tui/huhforms"
)

// DeleteCmd returns the project delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a project and its tasks",
		Long: `Delete a project given by name or ID, together with its tasks
(requires confirmation unless --force or --quiet). Entries that referenced
the project are kept and show it as unknown.`,
		Args: cobra.ExactArgs(1),
		RunE: runDelete,
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	force, _ := cmd.Flags().GetBool("force")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	refs, err := sess.ResolveNames(args[0], "")
	if err != nil {
		return cli.Fail(formatter, err)
	}
	id := *refs.ProjectID
	project, _ := sess.Workspace().Catalog.Project(id)

	if !force && !formatter.Quiet && !formatter.JSON {
		if !cli.IsTerminal(os.Stdin) {
			return cli.Fail(formatter, cli.Usage("refusing to delete without confirmation; pass --force"))
		}
		tasks := len(sess.Workspace().Catalog.TasksForProject(id))
		confirmed := false
		form := huhforms.ConfirmDeleteForm(
			fmt.Sprintf("Delete project '%s' and its %d tasks?", project.Name, tasks), &confirmed).
			WithTheme(huhforms.Theme(cliInstance.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return cli.Fail(formatter, errors.New("confirmation aborted"))
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	orphaned, err := sess.DeleteProject(ctx, id)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{
			"project_id":       id,
			"orphaned_entries": orphaned,
		})
	}

	fmt.Printf("✓ Project '%s' deleted successfully\n", project.Name)
	if orphaned > 0 {
		fmt.Printf("  %d entries now show an unknown project\n", orphaned)
	}
	return nil
}
