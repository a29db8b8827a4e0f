// Package catalog is the registry of projects and their tasks.
//
// Deleting a project or task never touches time entries; entries keep
// their references, which then resolve to the unknown sentinels.
package catalog

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

// Labels used when a reference cannot be shown by name
const (
	LabelNoProject      = "(no project)"
	LabelUnknownProject = "unknown project"
	LabelNoTask         = "(no task)"
	LabelUnknownTask    = "unknown task"
)

// Reader is the read side used by the timer and aggregator
type Reader interface {
	Project(id types.ProjectID) (models.Project, bool)
	Task(id types.TaskID) (models.Task, bool)
}

// Catalog holds projects and tasks in creation order
type Catalog struct {
	mu       sync.RWMutex
	projects []models.Project
	tasks    []models.Task
	nextProj types.ProjectID
	nextTask types.TaskID
	now      func() time.Time
}

// New returns an empty catalog. now stamps CreatedAt.
func New(now func() time.Time) *Catalog {
	return &Catalog{nextProj: 1, nextTask: 1, now: now}
}

var _ Reader = (*Catalog)(nil)

// ============================================================================
// Projects
// ============================================================================

// CreateProject adds a project; names are trimmed and unique ignoring case
func (c *Catalog) CreateProject(name, description string) (models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Project{}, fmt.Errorf("project: %w", models.ErrEmptyName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.projectByNameLocked(name); ok {
		return models.Project{}, fmt.Errorf("project %q: %w", name, models.ErrDuplicateName)
	}

	p := models.Project{
		ID:          c.nextProj,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   c.now(),
	}
	c.nextProj++
	c.projects = append(c.projects, p)
	return p, nil
}

// UpdateProject changes name and/or description; nil leaves a field as is
func (c *Catalog) UpdateProject(id types.ProjectID, name, description *string) (models.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.projectIndexLocked(id)
	if !ok {
		return models.Project{}, fmt.Errorf("project %d: %w", id, models.ErrNotFound)
	}

	p := c.projects[i]
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return models.Project{}, fmt.Errorf("project: %w", models.ErrEmptyName)
		}
		if other, ok := c.projectByNameLocked(n); ok && other.ID != id {
			return models.Project{}, fmt.Errorf("project %q: %w", n, models.ErrDuplicateName)
		}
		p.Name = n
	}
	if description != nil {
		p.Description = strings.TrimSpace(*description)
	}
	c.projects[i] = p
	return p, nil
}

// DeleteProject removes the project and the tasks it owns.
// It returns the IDs of the removed tasks.
func (c *Catalog) DeleteProject(id types.ProjectID) ([]types.TaskID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.projectIndexLocked(id)
	if !ok {
		return nil, fmt.Errorf("project %d: %w", id, models.ErrNotFound)
	}
	c.projects = append(c.projects[:i], c.projects[i+1:]...)

	owned, kept := lo.FilterReject(c.tasks, func(t models.Task, _ int) bool {
		return t.ProjectID == id
	})
	c.tasks = kept
	return lo.Map(owned, func(t models.Task, _ int) types.TaskID { return t.ID }), nil
}

// Project looks up a project by ID
func (c *Catalog) Project(id types.ProjectID) (models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.projectIndexLocked(id)
	if !ok {
		return models.Project{}, false
	}
	return c.projects[i], true
}

// ProjectByName finds a project ignoring case
func (c *Catalog) ProjectByName(name string) (models.Project, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.projectByNameLocked(strings.TrimSpace(name))
}

// Projects lists all projects in creation order
func (c *Catalog) Projects() []models.Project {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Project(nil), c.projects...)
}

// ============================================================================
// Tasks
// ============================================================================

// CreateTask adds a task to an existing project.
// Task names are unique within their project.
func (c *Catalog) CreateTask(projectID types.ProjectID, name, description string) (models.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Task{}, fmt.Errorf("task: %w", models.ErrEmptyName)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.projectIndexLocked(projectID); !ok {
		return models.Task{}, fmt.Errorf("project %d: %w", projectID, models.ErrInvalidReference)
	}
	if _, ok := c.taskByNameLocked(projectID, name); ok {
		return models.Task{}, fmt.Errorf("task %q: %w", name, models.ErrDuplicateName)
	}

	t := models.Task{
		ID:          c.nextTask,
		ProjectID:   projectID,
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   c.now(),
	}
	c.nextTask++
	c.tasks = append(c.tasks, t)
	return t, nil
}

// UpdateTask changes name and/or description; nil leaves a field as is
func (c *Catalog) UpdateTask(id types.TaskID, name, description *string) (models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.taskIndexLocked(id)
	if !ok {
		return models.Task{}, fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}

	t := c.tasks[i]
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return models.Task{}, fmt.Errorf("task: %w", models.ErrEmptyName)
		}
		if other, ok := c.taskByNameLocked(t.ProjectID, n); ok && other.ID != id {
			return models.Task{}, fmt.Errorf("task %q: %w", n, models.ErrDuplicateName)
		}
		t.Name = n
	}
	if description != nil {
		t.Description = strings.TrimSpace(*description)
	}
	c.tasks[i] = t
	return t, nil
}

// DeleteTask removes a task
func (c *Catalog) DeleteTask(id types.TaskID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.taskIndexLocked(id)
	if !ok {
		return fmt.Errorf("task %d: %w", id, models.ErrNotFound)
	}
	c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
	return nil
}

// Task looks up a task by ID
func (c *Catalog) Task(id types.TaskID) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	i, ok := c.taskIndexLocked(id)
	if !ok {
		return models.Task{}, false
	}
	return c.tasks[i], true
}

// TaskByName finds a task of a project ignoring case
func (c *Catalog) TaskByName(projectID types.ProjectID, name string) (models.Task, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.taskByNameLocked(projectID, strings.TrimSpace(name))
}

// Tasks lists all tasks in creation order
func (c *Catalog) Tasks() []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Task(nil), c.tasks...)
}

// TasksForProject lists the tasks owned by a project
func (c *Catalog) TasksForProject(projectID types.ProjectID) []models.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Filter(c.tasks, func(t models.Task, _ int) bool { return t.ProjectID == projectID })
}

// ============================================================================
// Labels
// ============================================================================

// ProjectLabel names an optional project reference for display
func (c *Catalog) ProjectLabel(id *types.ProjectID) string {
	if id == nil {
		return LabelNoProject
	}
	p, ok := c.Project(*id)
	if !ok {
		return LabelUnknownProject
	}
	return p.Name
}

// TaskLabel names an optional task reference for display
func (c *Catalog) TaskLabel(id *types.TaskID) string {
	if id == nil {
		return LabelNoTask
	}
	t, ok := c.Task(*id)
	if !ok {
		return LabelUnknownTask
	}
	return t.Name
}

// ============================================================================
// Persistence
// ============================================================================

// Load replaces the catalog with persisted projects and tasks
func (c *Catalog) Load(projects []models.Project, tasks []models.Task) error {
	var maxProj types.ProjectID
	seenProj := make(map[types.ProjectID]bool, len(projects))
	for _, p := range projects {
		if p.ID <= 0 || seenProj[p.ID] {
			return fmt.Errorf("invalid or duplicate project id %d", p.ID)
		}
		seenProj[p.ID] = true
		maxProj = max(maxProj, p.ID)
	}

	var maxTask types.TaskID
	seenTask := make(map[types.TaskID]bool, len(tasks))
	for _, t := range tasks {
		if t.ID <= 0 || seenTask[t.ID] {
			return fmt.Errorf("invalid or duplicate task id %d", t.ID)
		}
		seenTask[t.ID] = true
		maxTask = max(maxTask, t.ID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = append([]models.Project(nil), projects...)
	c.tasks = append([]models.Task(nil), tasks...)
	c.nextProj = maxProj + 1
	c.nextTask = maxTask + 1
	return nil
}

// Reset empties the catalog
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = nil
	c.tasks = nil
	c.nextProj = 1
	c.nextTask = 1
}

func (c *Catalog) projectIndexLocked(id types.ProjectID) (int, bool) {
	_, i, ok := lo.FindIndexOf(c.projects, func(p models.Project) bool { return p.ID == id })
	return i, ok
}

func (c *Catalog) taskIndexLocked(id types.TaskID) (int, bool) {
	_, i, ok := lo.FindIndexOf(c.tasks, func(t models.Task) bool { return t.ID == id })
	return i, ok
}

func (c *Catalog) projectByNameLocked(name string) (models.Project, bool) {
	return lo.Find(c.projects, func(p models.Project) bool { return strings.EqualFold(p.Name, name) })
}

func (c *Catalog) taskByNameLocked(projectID types.ProjectID, name string) (models.Task, bool) {
	return lo.Find(c.tasks, func(t models.Task) bool {
		return t.ProjectID == projectID && strings.EqualFold(t.Name, name)
	})
}
