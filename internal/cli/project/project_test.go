package project

import (
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogpkg "github.com/thenoetrevino/tock/internal/catalog"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/session"
	testcli "github.com/thenoetrevino/tock/internal/testutil/cli"
	"github.com/thenoetrevino/tock/internal/types"
)

func TestCreateProject_Positive(t *testing.T) {
	app, _ := testcli.SetupCLITest(t)

	t.Run("name only", func(t *testing.T) {
		output, err := testcli.ExecuteCLICommand(t, app, CreateCmd(), []string{"website", "--quiet"})
		require.NoError(t, err)

		idStr := strings.TrimSpace(output)
		assert.Regexp(t, `^\d+$`, idStr)
		id, _ := strconv.Atoi(idStr)

		p, ok := app.Session.Workspace().Catalog.Project(types.ProjectID(id))
		require.True(t, ok)
		assert.Equal(t, "website", p.Name)
	})

	t.Run("with description", func(t *testing.T) {
		output, err := testcli.ExecuteCLICommand(t, app, CreateCmd(), []string{
			"backend", "--description", "REST API",
		})
		require.NoError(t, err)
		assert.Contains(t, output, "Project 'backend' created successfully")
		assert.Contains(t, output, "Description: REST API")
	})

	t.Run("json", func(t *testing.T) {
		output, err := testcli.ExecuteCLICommand(t, app, CreateCmd(), []string{"docs", "--json"})
		require.NoError(t, err)
		result := testcli.ParseJSON(t, output)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "docs", result["project"].(map[string]any)["name"])
	})
}

func TestCreateProject_Negative(t *testing.T) {
	app, _ := testcli.SetupCLITest(t)

	_, err := testcli.ExecuteCLICommand(t, app, CreateCmd(), []string{"website"})
	require.NoError(t, err)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"missing name", []string{}, cli.ExitUsage},
		{"blank name", []string{"   "}, cli.ExitUsage},
		{"duplicate name", []string{"Website"}, cli.ExitValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testcli.ExecuteCLICommand(t, app, CreateCmd(), tt.args)
			require.Error(t, err)
			assert.Equal(t, tt.code, cli.ExitCodeFor(err))
		})
	}
	assert.Len(t, app.Session.Workspace().Catalog.Projects(), 1)
}

func TestListProjects(t *testing.T) {
	app, _ := testcli.SetupCLITest(t)
	ctx := t.Context()

	output, err := testcli.ExecuteCLICommand(t, app, ListCmd(), nil)
	require.NoError(t, err)
	assert.Contains(t, output, "No projects found")

	web, err := app.Session.CreateProject(ctx, "web", "")
	require.NoError(t, err)
	_, err = app.Session.CreateTask(ctx, web.ID, "deploy", "")
	require.NoError(t, err)
	_, err = app.Session.CreateProject(ctx, "ops", "")
	require.NoError(t, err)
	_, err = app.Session.AddEntry(ctx, session.EntryInput{
		Refs:  session.Refs{ProjectID: types.ProjectRef(web.ID)},
		Start: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 8, 30, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	output, err = testcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--json"})
	require.NoError(t, err)
	result := testcli.ParseJSON(t, output)
	projects := result["projects"].([]any)
	require.Len(t, projects, 2)

	first := projects[0].(map[string]any)
	assert.Equal(t, "web", first["name"])
	assert.Equal(t, float64(1), first["tasks"])
	assert.Equal(t, float64(90*time.Minute), first["tracked"])

	output, err = testcli.ExecuteCLICommand(t, app, ListCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", output)
}

func TestUpdateProject(t *testing.T) {
	app, _ := testcli.SetupCLITest(t)

	_, err := app.Session.CreateProject(t.Context(), "website", "")
	require.NoError(t, err)

	_, err = testcli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"website", "--name", "web", "--description", "site"})
	require.NoError(t, err)

	p, ok := app.Session.Workspace().Catalog.ProjectByName("web")
	require.True(t, ok)
	assert.Equal(t, "site", p.Description)

	_, err = testcli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"web"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	_, err = testcli.ExecuteCLICommand(t, app, UpdateCmd(), []string{"missing", "--name", "x"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestDeleteProject(t *testing.T) {
	app, _ := testcli.SetupCLITest(t)
	ctx := t.Context()

	web, err := app.Session.CreateProject(ctx, "web", "")
	require.NoError(t, err)
	_, err = app.Session.CreateTask(ctx, web.ID, "deploy", "")
	require.NoError(t, err)
	entry, err := app.Session.AddEntry(ctx, session.EntryInput{
		Refs:  session.Refs{ProjectID: types.ProjectRef(web.ID)},
		Start: time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	output, err := testcli.ExecuteCLICommand(t, app, DeleteCmd(), []string{"web", "--json"})
	require.NoError(t, err)
	result := testcli.ParseJSON(t, output)
	assert.Equal(t, float64(1), result["orphaned_entries"])

	catalog := app.Session.Workspace().Catalog
	assert.Empty(t, catalog.Projects())
	assert.Empty(t, catalog.Tasks())

	kept, err := app.Session.Workspace().Store.Get(entry.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.ProjectID)
	assert.Equal(t, web.ID, *kept.ProjectID)
	assert.Equal(t, catalogpkg.LabelUnknownProject, catalog.ProjectLabel(kept.ProjectID))
}
