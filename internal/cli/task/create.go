package task

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/tui/huhforms"
	"github.com/thenoetrevino/tock/internal/types"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a task in a project",
		Long: `Create a task. Every task belongs to one project; task names are
unique within their project.

Examples:
  tock task create deploy --project web
  tock task create review -p web --description "Code review"
  TASK_ID=$(tock task create deploy -p web --quiet)
  tock task create --interactive
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCreate,
	}

	cmd.Flags().StringP("project", "p", "", "Project name or ID (required unless --interactive)")
	cmd.Flags().String("description", "", "Task description")
	cmd.Flags().BoolP("interactive", "i", false, "Enter the task in a form")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	projectRef := cli.ProjectRef(cmd)
	description, _ := cmd.Flags().GetString("description")
	interactive, _ := cmd.Flags().GetBool("interactive")

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	var projectID types.ProjectID
	if projectRef != "" {
		refs, err := sess.ResolveNames(projectRef, "")
		if err != nil {
			return cli.Fail(formatter, err)
		}
		projectID = *refs.ProjectID
	}

	if interactive {
		projects := sess.Workspace().Catalog.Projects()
		if len(projects) == 0 {
			return cli.Fail(formatter, cli.Usage("create a project first with 'tock project create'"))
		}
		if !cli.IsTerminal(os.Stdin) {
			return cli.Fail(formatter, cli.Usage("--interactive needs a terminal"))
		}
		selected := projectID.ToInt()
		form := huhforms.TaskForm(projects, &selected, &name, &description).
			WithTheme(huhforms.Theme(cliInstance.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return cli.Fail(formatter, errors.New("task form aborted"))
		}
		projectID = types.ProjectID(selected)
	}

	if projectID == 0 {
		return cli.Fail(formatter, cli.Usage("--project is required"))
	}
	if strings.TrimSpace(name) == "" {
		return cli.Fail(formatter, cli.Usage("a task name is required"))
	}

	task, err := sess.CreateTask(ctx, projectID, name, description)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", task.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"task": task})
	}

	projectName := sess.Workspace().Catalog.ProjectLabel(&task.ProjectID)
	fmt.Printf("✓ Task '%s' created in '%s' (ID: %d)\n", task.Name, projectName, task.ID)
	if task.Description != "" {
		fmt.Printf("  Description: %s\n", task.Description)
	}
	return nil
}
