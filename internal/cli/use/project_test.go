package use

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/cli/entry"
	testcli "github.com/thenoetrevino/tock/internal/testutil/cli"
)

func TestUseProject_PrintsExport(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)
	p, err := a.Session.CreateProject(t.Context(), "web", "")
	require.NoError(t, err)

	output, err := testcli.ExecuteCLICommand(t, a, ProjectCmd(), []string{"web"})
	require.NoError(t, err)
	assert.Equal(t, "export TOCK_PROJECT=1\n", output)
	assert.Equal(t, 1, p.ID.ToInt())
}

func TestUseProject_Clear(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)

	output, err := testcli.ExecuteCLICommand(t, a, ProjectCmd(), []string{"--clear"})
	require.NoError(t, err)
	assert.Equal(t, "unset TOCK_PROJECT\n", output)
}

func TestUseProject_Negative(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)

	_, err := testcli.ExecuteCLICommand(t, a, ProjectCmd(), []string{})
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))

	_, err = testcli.ExecuteCLICommand(t, a, ProjectCmd(), []string{"nope"})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))
}

func TestUseProject_DefaultsStart(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)
	p, err := a.Session.CreateProject(t.Context(), "web", "")
	require.NoError(t, err)
	t.Setenv(cli.EnvProject, "web")

	_, err = testcli.ExecuteCLICommand(t, a, entry.StartCmd(), []string{"deploy", "--quiet"})
	require.NoError(t, err)

	active := a.Session.Status().Active
	require.NotNil(t, active)
	require.NotNil(t, active.ProjectID)
	assert.Equal(t, p.ID, *active.ProjectID)
}

func TestUseProject_Show(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)
	_, err := a.Session.CreateProject(t.Context(), "web", "")
	require.NoError(t, err)

	t.Setenv(cli.EnvProject, "")
	output, err := testcli.ExecuteCLICommand(t, a, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "No default project set")

	t.Setenv(cli.EnvProject, "web")
	output, err = testcli.ExecuteCLICommand(t, a, ProjectCmd(), []string{"--show"})
	require.NoError(t, err)
	assert.Contains(t, output, "Default project: 1 (web)")
}
