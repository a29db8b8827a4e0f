package project

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/tui/huhforms"
)

// CreateCmd returns the project create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new project",
		Long: `Create a new project. Names are unique, ignoring case.

Examples:
  tock project create website
  tock project create website --description "Company site relaunch"

  # Quiet mode for bash capture
  PROJECT_ID=$(tock project create website --quiet)

  # Fill in a form
  tock project create --interactive
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runCreate,
	}

	cmd.Flags().String("description", "", "Project description")
	cmd.Flags().BoolP("interactive", "i", false, "Enter the project in a form")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cli.Context(cmd)
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

	if interactive {
		if !cli.IsTerminal(os.Stdin) {
			return cli.Fail(formatter, cli.Usage("--interactive needs a terminal"))
		}
		confirmed := true
		form := huhforms.ProjectForm(&name, &description, &confirmed).
			WithTheme(huhforms.Theme(cliInstance.App.Config.ColorScheme))
		if err := form.Run(); err != nil {
			return cli.Fail(formatter, errors.New("project form aborted"))
		}
		if !confirmed {
			fmt.Println("Cancelled")
			return nil
		}
	}

	if strings.TrimSpace(name) == "" {
		return cli.Fail(formatter, cli.Usage("a project name is required"))
	}

	project, err := cliInstance.Session().CreateProject(ctx, name, description)
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

	fmt.Printf("✓ Project '%s' created successfully (ID: %d)\n", project.Name, project.ID)
	if project.Description != "" {
		fmt.Printf("  Description: %s\n", project.Description)
	}
	return nil
}
