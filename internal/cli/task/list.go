package task

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

type taskInfo struct {
	models.Task
	Project string        `json:"project"`
	Tracked time.Duration `json:"tracked"`
}

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long:    "List all tasks, or only those of --project, with their tracked time.",
		Args:    cobra.NoArgs,
		RunE:    runList,
	}

	cmd.Flags().StringP("project", "p", "", "Only tasks of this project (name or ID)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	projectRef, _ := cmd.Flags().GetString("project")

	cliInstance, formatter, err := cli.Open(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = cliInstance.Close() }()
	sess := cliInstance.Session()
	ws := sess.Workspace()

	tasks := ws.Catalog.Tasks()
	if projectRef != "" {
		refs, err := sess.ResolveNames(projectRef, "")
		if err != nil {
			return cli.Fail(formatter, err)
		}
		tasks = ws.Catalog.TasksForProject(*refs.ProjectID)
	}

	tracked := make(map[types.TaskID]time.Duration)
	for key, d := range ws.Aggregator.ByProjectAndTask(ws.Store.List()) {
		tracked[key.Task] += d
	}

	infos := make([]taskInfo, 0, len(tasks))
	for _, t := range tasks {
		infos = append(infos, taskInfo{
			Task:    t,
			Project: ws.Catalog.ProjectLabel(&t.ProjectID),
			Tracked: tracked[t.ID],
		})
	}

	if formatter.Quiet {
		for _, t := range infos {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}
	if formatter.JSON {
		return formatter.JSONSuccess(map[string]any{"tasks": infos})
	}

	if len(infos) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	rows := make([][]string, 0, len(infos))
	for _, t := range infos {
		rows = append(rows, []string{
			fmt.Sprintf("%d", t.ID),
			t.Project,
			t.Name,
			t.Description,
			format.Clock(t.Tracked),
		})
	}
	fmt.Printf("Found %d tasks:\n", len(infos))
	fmt.Println(styles.Table([]string{"ID", "Project", "Name", "Description", "Tracked"}, rows, nil))
	return nil
}
