package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/app"
	"github.com/thenoetrevino/tock/internal/cli"
	"github.com/thenoetrevino/tock/internal/session"
	testcli "github.com/thenoetrevino/tock/internal/testutil/cli"
	"github.com/thenoetrevino/tock/internal/types"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, 3, day, hour, minute, 0, 0, time.UTC)
}

// seed records: Sunday 23:00 to Monday 01:00 on web, Monday 07:00-08:00
// without a project, and Tuesday 10:00-10:30 on web
func seed(t *testing.T, a *app.App) {
	t.Helper()
	ctx := t.Context()

	web, err := a.Session.CreateProject(ctx, "web", "")
	require.NoError(t, err)

	inputs := []session.EntryInput{
		{Description: "late", Refs: session.Refs{ProjectID: types.ProjectRef(web.ID)}, Start: at(1, 23, 0), End: at(2, 1, 0)},
		{Description: "early", Start: at(2, 7, 0), End: at(2, 8, 0)},
		{Description: "tuesday", Refs: session.Refs{ProjectID: types.ProjectRef(web.ID)}, Start: at(3, 10, 0), End: at(3, 10, 30)},
	}
	for _, in := range inputs {
		_, err := a.Session.AddEntry(ctx, in)
		require.NoError(t, err)
	}
}

func TestDayReport(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)
	seed(t, a)

	output, err := testcli.ExecuteCLICommand(t, a, DayCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "02:00:00\n", output)

	output, err = testcli.ExecuteCLICommand(t, a, DayCmd(), []string{"--date", "yesterday", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "01:00:00\n", output)

	output, err = testcli.ExecuteCLICommand(t, a, DayCmd(), []string{"--raw"})
	require.NoError(t, err)
	assert.Contains(t, output, "early")
	assert.Contains(t, output, "late")
	assert.NotContains(t, output, "tuesday")

	output, err = testcli.ExecuteCLICommand(t, a, DayCmd(), []string{"--json"})
	require.NoError(t, err)
	result := testcli.ParseJSON(t, output)
	report := result["report"].(map[string]any)
	assert.Equal(t, "2026-03-02", report["date"])
	assert.Len(t, report["entries"], 2)

	_, err = testcli.ExecuteCLICommand(t, a, DayCmd(), []string{"--date", "someday"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitUsage, cli.ExitCodeFor(err))
}

func TestWeekReport(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)
	seed(t, a)

	// Monday-start week of 2026-03-02 excludes Sunday's hour
	output, err := testcli.ExecuteCLICommand(t, a, WeekCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "02:30:00\n", output)

	output, err = testcli.ExecuteCLICommand(t, a, WeekCmd(), []string{"--json"})
	require.NoError(t, err)
	result := testcli.ParseJSON(t, output)
	report := result["report"].(map[string]any)
	rows := report["breakdown"].([]any)
	require.Len(t, rows, 2)

	byProject := map[string]float64{}
	for _, r := range rows {
		row := r.(map[string]any)
		byProject[row["project"].(string)] = row["duration"].(float64)
	}
	assert.Equal(t, float64(90*time.Minute), byProject["web"])
	assert.Equal(t, float64(time.Hour), byProject["(no project)"])

	output, err = testcli.ExecuteCLICommand(t, a, WeekCmd(), []string{"2026-03-01", "--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "01:00:00\n", output)
}

func TestSummary(t *testing.T) {
	a, _ := testcli.SetupCLITest(t)
	seed(t, a)

	output, err := testcli.ExecuteCLICommand(t, a, SummaryCmd(), []string{"--quiet"})
	require.NoError(t, err)
	assert.Equal(t, "03:30:00\n", output)

	output, err = testcli.ExecuteCLICommand(t, a, SummaryCmd(), []string{"--raw"})
	require.NoError(t, err)
	assert.Contains(t, output, "# Session summary")
	assert.Contains(t, output, "**Total tracked:** 03:30:00")
}
