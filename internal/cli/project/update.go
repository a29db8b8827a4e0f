package project

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
)

// UpdateCmd returns the project update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "update <project>",
		Aliases: []string{"rename"},
		Short:   "Rename or describe a project",
		Long: `Change the name or description of a project given by name or ID.

Examples:
  tock project update website --name web
  tock project update 3 --description ""
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)

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

	refs, err := sess.ResolveNames(args[0], "")
	if err != nil {
		return cli.Fail(formatter, err)
	}

	project, err := sess.UpdateProject(ctx, *refs.ProjectID, name, description)
	if err != nil {
		return cli.Fail(formatter, err)
	}
	if err := cliInstance.Save(ctx); err != nil {
		return cli.Fail(formatter, err)
	}

	if formatter.Quiet {
		fmt.Printf("%d\n", project.ID)
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"project": project})
	}

	fmt.Printf("✓ Project %d updated successfully\n", project.ID)
	fmt.Printf("  Name: %s\n", project.Name)
	if project.Description != "" {
		fmt.Printf("  Description: %s\n", project.Description)
	}
	return nil
}
