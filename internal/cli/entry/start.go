// Package entry holds the cli commands that start, stop and edit time entries
//
// e.g., tock start ..., tock add ..., tock edit ...
package entry

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/models"
)

// StartCmd returns the start command
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start [description]",
		Short: "Start timing a new entry",
		Long: `Start the timer with a new entry. Fails if an entry is already running.

Examples:
  # Start with a description
  tock start "Write report"

  # Attach a project and task by name or ID
  tock start "Fix login" --project web --task bugs

  # Quiet mode for bash capture
  ENTRY_ID=$(tock start "Review" --quiet)
`,
		RunE: runStart,
	}

	cmd.Flags().StringP("project", "p", "", "Project name or ID (defaults to $TOCK_PROJECT)")
	cmd.Flags().StringP("task", "t", "", "Task name or ID (implies its project)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	description := strings.Join(args, " ")
	projectRef := cli.ProjectRef(cmd)
	taskRef, _ := cmd.Flags().GetString("task")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	if sess.Workspace().Timer.IsRunning() {
		return cli.Fail(formatter, models.ErrAlreadyRunning)
	}
	refs, err := sess.ResolveNames(projectRef, taskRef)
	if err != nil {
		return cli.Fail(formatter, err)
	}

	entry, err := sess.StartTask(ctx, description, refs)
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

	loc := cliInstance.App.Location()
	fmt.Printf("▶ Started '%s' at %s (ID: %d)\n", untitled(entry.Description), format.TimeOfDay(entry.Start, loc), entry.ID)
	if entry.ProjectID != nil {
		fmt.Printf("  Project: %s\n", sess.Workspace().Catalog.ProjectLabel(entry.ProjectID))
	}
	if entry.TaskID != nil {
		fmt.Printf("  Task: %s\n", sess.Workspace().Catalog.TaskLabel(entry.TaskID))
	}
	return nil
}

func untitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
