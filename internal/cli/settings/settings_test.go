package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/config"
	"github.com/thenoetrevino/tock/internal/testutil"
	testcli "github.com/thenoetrevino/tock/internal/testutil/cli"
)

func TestSettings(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)

	_, err := testcli.ExecuteCLICommand(t, a, SettingsCmd(), []string{"set", "--name", "Ada", "--email", "ada@example.com"})
	require.NoError(t, err)

	output, err := testcli.ExecuteCLICommand(t, a, SettingsCmd(), []string{"--json"})
	require.NoError(t, err)
	result := testcli.ParseJSON(t, output)
	settings := result["settings"].(map[string]any)
	assert.Equal(t, "Ada", settings["name"])
	assert.Equal(t, "ada@example.com", settings["email"])

	_, err = testcli.ExecuteCLICommand(t, a, SettingsCmd(), []string{"set", "--email", ""})
	require.NoError(t, err)
	assert.Equal(t, "Ada", a.Session.Settings().Name)
	assert.Empty(t, a.Session.Settings().Email)
	assert.False(t, a.Session.Dirty())

	_, err = testcli.ExecuteCLICommand(t, a, SettingsCmd(), []string{"set"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tock", "config.yaml")
	t.Setenv(config.EnvConfig, path)

	cmd := ConfigCmd()
	testutil.SetupCobraCommand(cmd, []string{"init"})
	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Contains(t, output, path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.StorageSQLite, cfg.Storage)

	cmd = ConfigCmd()
	testutil.SetupCobraCommand(cmd, []string{"init"})
	var initErr error
	testutil.CaptureOutput(t, func() { initErr = cmd.Execute() })
	require.Error(t, initErr)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(initErr))

	cmd = ConfigCmd()
	testutil.SetupCobraCommand(cmd, []string{"path"})
	output = testutil.CaptureOutput(t, func() {
		require.NoError(t, cmd.Execute())
	})
	assert.Equal(t, path, strings.TrimSpace(output))

	_, err = os.Stat(path)
	require.NoError(t, err)
}
