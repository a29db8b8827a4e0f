package task

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <task>",
		Aliases: []string{"rename"},
		Short:   "Rename or describe a task",
		Long: `Change the name or description of a task given by ID, or by name
together with --project.

Examples:
  tock task update 4 --name release
  tock task update deploy -p web --description "Ship to production"
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().StringP("project", "p", "", "Project to look the task name up in")
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
	projectRef, _ := cmd.Flags().GetString("project")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()

	var name, description *string
	if cmd.Flags().Changed("name") {
		v, _ := cmd.Flags().GetString("name")
		name = &v
	}
	if cmd.Flags().Changed("description") {
		v, _ := cmd.Flags().GetString("description")
		description = &v
	}
	if name == nil && description == nil {
		return cli.Fail(formatter, cli.Usage("nothing to change; pass --name or --description"))
	}

	refs, err := sess.ResolveNames(projectRef, args[0])
	if err != nil {
		return cli.Fail(formatter, err)
	}

	task, err := sess.UpdateTask(ctx, *refs.TaskID, name, description)
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

	fmt.Printf("✓ Task %d updated successfully\n", task.ID)
	fmt.Printf("  Name: %s\n", task.Name)
	return nil
}
