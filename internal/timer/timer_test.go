package timer

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/catalog"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/store"
	"github.com/thenoetrevino/tock/internal/types"
)

var nine = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	clock   *clock.Mock
	store   *store.Store
	catalog *catalog.Catalog
	timer   *Timer
}

func setup(t *testing.T) fixture {
	t.Helper()
	mock := clock.NewMock()
	mock.Set(nine)
	s := store.New()
	c := catalog.New(mock.Now)
	return fixture{clock: mock, store: s, catalog: c, timer: New(s, c, mock)}
}

// ============================================================================
// State transitions
// ============================================================================

func TestStartStop(t *testing.T) {
	t.Parallel()
	f := setup(t)

	assert.Equal(t, Idle, f.timer.State())

	entry, err := f.timer.Start("Write report", nil, nil)
	require.NoError(t, err)
	assert.True(t, f.timer.IsRunning())
	assert.Equal(t, nine, entry.Start)
	assert.True(t, entry.IsRunning())

	f.clock.Add(45 * time.Minute)
	stopped, err := f.timer.Stop()
	require.NoError(t, err)
	assert.Equal(t, entry.ID, stopped.ID)
	assert.Equal(t, 45*time.Minute, stopped.DurationAt(f.clock.Now()))
	assert.Equal(t, Idle, f.timer.State())

	list := f.store.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Write report", list[0].Description)
	assert.Equal(t, 45*time.Minute, list[0].End.Sub(list[0].Start))
}

func TestStart_WhileRunning(t *testing.T) {
	t.Parallel()
	f := setup(t)

	first, err := f.timer.Start("A", nil, nil)
	require.NoError(t, err)

	_, err = f.timer.Start("B", nil, nil)
	assert.ErrorIs(t, err, models.ErrAlreadyRunning)

	assert.Equal(t, 1, f.store.Len())
	active, ok := f.timer.Active()
	require.True(t, ok)
	assert.Equal(t, first.ID, active.ID)
	assert.Equal(t, "A", active.Description)
}

func TestStop_WhenIdle(t *testing.T) {
	t.Parallel()
	f := setup(t)

	_, err := f.timer.Stop()
	assert.ErrorIs(t, err, models.ErrNotRunning)

	_, err = f.timer.Elapsed()
	assert.ErrorIs(t, err, models.ErrNotRunning)
}

func TestStop_ClockBehindStartGivesZeroLength(t *testing.T) {
	t.Parallel()
	f := setup(t)

	_, err := f.timer.Start("skew", nil, nil)
	require.NoError(t, err)
	f.clock.Set(nine.Add(-time.Minute))

	stopped, err := f.timer.Stop()
	require.NoError(t, err)
	assert.Equal(t, stopped.Start, *stopped.End)
}

func TestElapsed_IsLive(t *testing.T) {
	t.Parallel()
	f := setup(t)

	_, err := f.timer.Start("live", nil, nil)
	require.NoError(t, err)

	f.clock.Add(10 * time.Minute)
	d, err := f.timer.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, d)

	f.clock.Add(5 * time.Minute)
	d, _ = f.timer.Elapsed()
	assert.Equal(t, 15*time.Minute, d)
}

// ============================================================================
// Store interaction
// ============================================================================

func TestRemovingActiveEntryReturnsToIdle(t *testing.T) {
	t.Parallel()
	f := setup(t)

	entry, err := f.timer.Start("doomed", nil, nil)
	require.NoError(t, err)

	require.NoError(t, f.store.Remove(entry.ID))
	assert.Equal(t, Idle, f.timer.State())

	_, err = f.timer.Start("next", nil, nil)
	assert.NoError(t, err)
}

func TestRestore_AdoptsOpenEntry(t *testing.T) {
	t.Parallel()
	f := setup(t)

	require.NoError(t, f.store.Load([]models.TimeEntry{{ID: 8, Start: nine.Add(-time.Hour)}}))
	assert.Equal(t, Running, f.timer.Restore())

	d, err := f.timer.Elapsed()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, d)

	stopped, err := f.timer.Stop()
	require.NoError(t, err)
	assert.Equal(t, types.EntryID(8), stopped.ID)
}

// ============================================================================
// References
// ============================================================================

func TestStart_References(t *testing.T) {
	t.Parallel()
	f := setup(t)
	web, _ := f.catalog.CreateProject("Web", "")
	api, _ := f.catalog.CreateProject("API", "")
	deploy, _ := f.catalog.CreateTask(web.ID, "Deploy", "")

	t.Run("task fills in project", func(t *testing.T) {
		e, err := f.timer.Start("d", nil, &deploy.ID)
		require.NoError(t, err)
		require.NotNil(t, e.ProjectID)
		assert.Equal(t, web.ID, *e.ProjectID)
		_, _ = f.timer.Stop()
	})

	t.Run("task from another project", func(t *testing.T) {
		_, err := f.timer.Start("d", &api.ID, &deploy.ID)
		assert.ErrorIs(t, err, models.ErrInvalidReference)
		assert.False(t, f.timer.IsRunning())
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := f.timer.Start("d", types.ProjectRef(99), nil)
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})

	t.Run("unknown task", func(t *testing.T) {
		_, err := f.timer.Start("d", nil, types.TaskRef(99))
		assert.ErrorIs(t, err, models.ErrInvalidReference)
	})
}
