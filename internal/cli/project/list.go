package project

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/styles"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

// projectInfo is a project with its task count and tracked time
type projectInfo struct {
	models.Project
	Tasks   int           `json:"tasks"`
	Tracked time.Duration `json:"tracked"`
}

// ListCmd returns the project list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all projects",
		Long:    "List all projects with their task counts and total tracked time.",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}

	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	ws := cliInstance.Session().Workspace()

	totals := ws.Aggregator.ByProjectAndTask(ws.Store.List())
	tracked := make(map[types.ProjectID]time.Duration)
	for key, d := range totals {
		tracked[key.Project] += d
	}

	projects := ws.Catalog.Projects()
	infos := make([]projectInfo, 0, len(projects))
	for _, p := range projects {
		infos = append(infos, projectInfo{
			Project: p,
			Tasks:   len(ws.Catalog.TasksForProject(p.ID)),
			Tracked: tracked[p.ID],
		})
	}

	if formatter.Quiet {
		for _, p := range infos {
			fmt.Printf("%d\n", p.ID)
		}
		return nil
	}

	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"projects": infos})
	}

	if len(infos) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, p := range infos {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.ID),
			p.Name,
			p.Description,
			fmt.Sprintf("%d", p.Tasks),
			format.Clock(p.Tracked),
		})
	}
	fmt.Printf("Found %d projects:\n", len(infos))
	fmt.Println(styles.Table([]string{"ID", "Name", "Description", "Tasks", "Tracked"}, rows, nil))
	return nil
}
