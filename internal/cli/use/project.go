package use

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
)

// ProjectCmd returns the use project subcommand
func ProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project [project]",
		Short: "Set the default project for start and add",
		Long: `Set the default project using the TOCK_PROJECT environment variable.
This command prints shell commands that should be evaluated:

  eval $(tock use project web)      # use project "web"
  eval $(tock use project 3)        # use project 3
  eval $(tock use project --clear)  # clear the default
  tock use project --show           # show the default

The --project flag on other commands takes precedence over TOCK_PROJECT.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runUseProject,
	}

	cmd.Flags().Bool("clear", false, "Clear the default project")
	cmd.Flags().Bool("show", false, "Show the default project")
	cmd.Flags().Bool("dry-run", false, "Describe the change without printing shell commands")

	return cmd
}

func runUseProject(cmd *cobra.Command, args []string) error {
	clearFlag, _ := cmd.Flags().GetBool("clear")
	showFlag, _ := cmd.Flags().GetBool("show")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	if showFlag {
		return showCurrentProject(cmd)
	}

	if clearFlag {
		if dryRun {
			fmt.Fprintf(os.Stderr, "Would clear %s\n", cli.EnvProject)
			return nil
		}
		fmt.Printf("unset %s\n", cli.EnvProject)
		fmt.Fprintln(os.Stderr, "Cleared default project")
		return nil
	}

	if len(args) == 0 {
		return cli.Usage("project required\nUsage: eval $(tock use project <project>)")
	}

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	refs, err := cliInstance.Session().ResolveNames(args[0], "")
	if err != nil {
		return cli.Fail(formatter, err)
	}
	project, _ := cliInstance.Session().Workspace().Catalog.Project(*refs.ProjectID)

	if dryRun {
		fmt.Fprintf(os.Stderr, "Would set %s=%d (%s)\n", cli.EnvProject, project.ID, project.Name)
		return nil
	}

	// stdout is for eval; the note goes to stderr
	fmt.Printf("export %s=%d\n", cli.EnvProject, project.ID)
	fmt.Fprintf(os.Stderr, "Now using project %d: %s\n", project.ID, project.Name)
	return nil
}

func showCurrentProject(cmd *cobra.Command) error {
	current := os.Getenv(cli.EnvProject)
	if current == "" {
		fmt.Println("No default project set")
		fmt.Println("Use 'eval $(tock use project <project>)' to set one")
		return nil
	}

	cliInstance, _, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()

	refs, err := cliInstance.Session().ResolveNames(current, "")
	if err != nil {
		fmt.Printf("Default project: %s (not found)\n", current)
		return nil
	}
	project, _ := cliInstance.Session().Workspace().Catalog.Project(*refs.ProjectID)
	fmt.Printf("Default project: %d (%s)\n", project.ID, project.Name)
	return nil
}
