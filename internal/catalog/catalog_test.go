package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

func newCatalog() *Catalog {
	fixed := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	return New(func() time.Time { return fixed })
}

func strPtr(s string) *string { return &s }

// ============================================================================
// Project Tests
// ============================================================================

func TestCreateProject(t *testing.T) {
	t.Parallel()
	c := newCatalog()

	p, err := c.CreateProject("  Backend  ", " REST API ")
	require.NoError(t, err)
	assert.Equal(t, types.ProjectID(1), p.ID)
	assert.Equal(t, "Backend", p.Name)
	assert.Equal(t, "REST API", p.Description)
	assert.False(t, p.CreatedAt.IsZero())

	_, err = c.CreateProject("backend", "")
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = c.CreateProject("   ", "")
	assert.ErrorIs(t, err, models.ErrEmptyName)
}

func TestUpdateProject(t *testing.T) {
	t.Parallel()
	c := newCatalog()
	a, _ := c.CreateProject("A", "")
	_, _ = c.CreateProject("B", "")

	got, err := c.UpdateProject(a.ID, strPtr("Alpha"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", got.Name)

	_, err = c.UpdateProject(a.ID, strPtr("b"), nil)
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = c.UpdateProject(99, strPtr("x"), nil)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteProject_RemovesOwnedTasks(t *testing.T) {
	t.Parallel()
	c := newCatalog()
	p, _ := c.CreateProject("P", "")
	other, _ := c.CreateProject("Other", "")
	t1, _ := c.CreateTask(p.ID, "one", "")
	t2, _ := c.CreateTask(p.ID, "two", "")
	keep, _ := c.CreateTask(other.ID, "keep", "")

	removed, err := c.DeleteProject(p.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []types.TaskID{t1.ID, t2.ID}, removed)

	_, ok := c.Project(p.ID)
	assert.False(t, ok)
	_, ok = c.Task(t1.ID)
	assert.False(t, ok)
	_, ok = c.Task(keep.ID)
	assert.True(t, ok)

	_, err = c.DeleteProject(p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// ============================================================================
// Task Tests
// ============================================================================

func TestCreateTask(t *testing.T) {
	t.Parallel()
	c := newCatalog()
	p, _ := c.CreateProject("P", "")

	task, err := c.CreateTask(p.ID, "Review", "")
	require.NoError(t, err)
	assert.Equal(t, p.ID, task.ProjectID)

	_, err = c.CreateTask(p.ID, "review", "")
	assert.ErrorIs(t, err, models.ErrDuplicateName)

	_, err = c.CreateTask(42, "Review", "")
	assert.ErrorIs(t, err, models.ErrInvalidReference)

	found, ok := c.TaskByName(p.ID, "REVIEW")
	assert.True(t, ok)
	assert.Equal(t, task.ID, found.ID)
	assert.Len(t, c.TasksForProject(p.ID), 1)
}

func TestDeleteTask(t *testing.T) {
	t.Parallel()
	c := newCatalog()
	p, _ := c.CreateProject("P", "")
	task, _ := c.CreateTask(p.ID, "x", "")

	require.NoError(t, c.DeleteTask(task.ID))
	assert.ErrorIs(t, c.DeleteTask(task.ID), models.ErrNotFound)
}

// ============================================================================
// Labels
// ============================================================================

func TestLabels(t *testing.T) {
	t.Parallel()
	c := newCatalog()
	p, _ := c.CreateProject("Website", "")
	task, _ := c.CreateTask(p.ID, "Deploy", "")

	assert.Equal(t, "Website", c.ProjectLabel(&p.ID))
	assert.Equal(t, LabelNoProject, c.ProjectLabel(nil))
	assert.Equal(t, LabelUnknownProject, c.ProjectLabel(types.ProjectRef(77)))

	assert.Equal(t, "Deploy", c.TaskLabel(&task.ID))
	assert.Equal(t, LabelNoTask, c.TaskLabel(nil))
	assert.Equal(t, LabelUnknownTask, c.TaskLabel(types.TaskRef(77)))
}

// ============================================================================
// Load
// ============================================================================

func TestLoad_ContinuesIDs(t *testing.T) {
	t.Parallel()
	c := newCatalog()
	require.NoError(t, c.Load(
		[]models.Project{{ID: 4, Name: "Four"}},
		[]models.Task{{ID: 9, ProjectID: 4, Name: "Nine"}},
	))

	p, err := c.CreateProject("Five", "")
	require.NoError(t, err)
	assert.Equal(t, types.ProjectID(5), p.ID)

	task, err := c.CreateTask(4, "Ten", "")
	require.NoError(t, err)
	assert.Equal(t, types.TaskID(10), task.ID)

	assert.Error(t, c.Load([]models.Project{{ID: 1}, {ID: 1}}, nil))
}
