// Package session runs a tracking session: it turns user commands into
// timer, store and catalog operations, and loads and saves the session
// through a Persister.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/thenoetrevino/tock/internal/events"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/timer"
	"github.com/thenoetrevino/tock/internal/types"
)

// Persister loads and saves a whole session. Each call either fully
// succeeds or leaves the stored data as it was.
type Persister interface {
	LoadAll(ctx context.Context) (models.Snapshot, error)
	SaveAll(ctx context.Context, snap models.Snapshot) error
}

// errLoadFailed blocks saves after a failed load so unreadable data is
// not replaced by an empty session
var errLoadFailed = errors.New("stored data could not be loaded; refusing to overwrite it")

// Refs are the optional project and task of an entry
type Refs struct {
	ProjectID *types.ProjectID
	TaskID    *types.TaskID
}

// EntryInput describes a manually added, completed entry
type EntryInput struct {
	Description string
	Refs        Refs
	Start       time.Time
	End         time.Time
}

// EntryPatch lists entry fields to change; nil fields are kept.
// ClearProject and ClearTask drop a reference. A task belongs to a
// project, so ClearProject drops the task as well and cannot be combined
// with a new project or task.
type EntryPatch struct {
	Description  *string
	ProjectID    *types.ProjectID
	TaskID       *types.TaskID
	ClearProject bool
	ClearTask    bool
	Start        *time.Time
	End          *time.Time
}

// Status is a point-in-time view of the timer
type Status struct {
	State   timer.State       `json:"state"`
	Active  *models.TimeEntry `json:"active,omitempty"`
	Elapsed time.Duration     `json:"elapsed"`
}

// Controller executes session commands. It is meant to be driven from a
// single goroutine.
type Controller struct {
	ws        *Workspace
	persister Persister
	policy    ExitPolicy
	autosave  bool
	logger    *slog.Logger
	events    events.EventPublisher
	settings  models.Settings

	loadErr     error
	lastSaveErr error
	dirty       bool
}

// New creates a controller over ws. Call Open before use.
func New(ws *Workspace, persister Persister, opts ...Option) *Controller {
	c := &Controller{
		ws:        ws,
		persister: persister,
		policy:    AutoStop,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Workspace exposes the in-memory state for read-only views
func (c *Controller) Workspace() *Workspace {
	return c.ws
}

// ============================================================================
// Lifecycle
// ============================================================================

// Open loads the persisted session. A failed load is not fatal: the
// session starts empty, LoadWarning reports why, and saving is disabled
// until Import replaces the data.
func (c *Controller) Open(ctx context.Context) error {
	if c.persister == nil {
		return errors.New("session has no persister")
	}

	snap, err := c.persister.LoadAll(ctx)
	if err == nil {
		err = c.ws.Load(snap)
	}
	if err != nil {
		c.loadErr = models.NewPersistenceError("load", err)
		c.ws.Reset()
		c.logger.Warn("failed to load session, starting empty", "error", err)
		return nil
	}

	if snap.Settings.Name != "" || snap.Settings.Email != "" {
		c.settings = snap.Settings
	}
	c.dirty = false
	c.logger.Info("session loaded",
		"entries", c.ws.Store.Len(),
		"projects", len(snap.Projects),
		"running", c.ws.Timer.IsRunning())
	return nil
}

// LoadWarning returns the load failure that Open recovered from
func (c *Controller) LoadWarning() error {
	return c.loadErr
}

// Dirty reports whether there are changes that have not been saved
func (c *Controller) Dirty() bool {
	return c.dirty
}

// LastSaveError is the error of the most recent flush, if it failed
func (c *Controller) LastSaveError() error {
	return c.lastSaveErr
}

// Snapshot returns the full session contents
func (c *Controller) Snapshot() models.Snapshot {
	return c.ws.Snapshot(c.settings)
}

// Flush saves the session. On failure the in-memory session is kept and
// stays dirty.
func (c *Controller) Flush(ctx context.Context) error {
	if c.loadErr != nil {
		c.lastSaveErr = models.NewPersistenceError("save", errLoadFailed)
		c.publish(events.Event{Type: events.EventSaveFailed, Message: c.lastSaveErr.Error()})
		return c.lastSaveErr
	}

	if err := c.persister.SaveAll(ctx, c.Snapshot()); err != nil {
		c.lastSaveErr = models.NewPersistenceError("save", err)
		c.logger.Error("failed to save session", "error", err)
		c.publish(events.Event{Type: events.EventSaveFailed, Message: err.Error()})
		return c.lastSaveErr
	}

	c.dirty = false
	c.lastSaveErr = nil
	c.logger.Debug("session saved", "entries", c.ws.Store.Len())
	c.publish(events.Event{Type: events.EventSaved})
	return nil
}

// Import replaces the whole session with snap and saves it. This also
// clears a previous load failure.
func (c *Controller) Import(ctx context.Context, snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if err := c.ws.Load(snap); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	if snap.Settings.Name != "" || snap.Settings.Email != "" {
		c.settings = snap.Settings
	}
	c.loadErr = nil
	c.dirty = true
	c.publish(events.Event{Type: events.EventCatalogChanged})
	return c.Flush(ctx)
}

// ============================================================================
// Timer commands
// ============================================================================

// StartTask starts timing a new entry
func (c *Controller) StartTask(ctx context.Context, description string, refs Refs) (models.TimeEntry, error) {
	entry, err := c.ws.Timer.Start(description, refs.ProjectID, refs.TaskID)
	if err != nil {
		return models.TimeEntry{}, err
	}

	c.logger.Info("timer started", "entry_id", entry.ID, "description", entry.Description)
	c.changed(ctx, events.Event{Type: events.EventEntryStarted, EntryID: entry.ID})
	return entry, nil
}

// Stop ends the running entry
func (c *Controller) Stop(ctx context.Context) (models.TimeEntry, error) {
	entry, err := c.ws.Timer.Stop()
	if err != nil {
		return models.TimeEntry{}, err
	}

	c.logger.Info("timer stopped",
		"entry_id", entry.ID,
		"duration", entry.DurationAt(c.ws.Clock.Now()))
	c.changed(ctx, events.Event{Type: events.EventEntryStopped, EntryID: entry.ID})
	return entry, nil
}

// Status reports the timer state and live elapsed time
func (c *Controller) Status() Status {
	active, ok := c.ws.Timer.Active()
	if !ok {
		return Status{State: timer.Idle}
	}
	return Status{
		State:   timer.Running,
		Active:  &active,
		Elapsed: active.DurationAt(c.ws.Clock.Now()),
	}
}

// ListEntries returns every entry in the order they were created
func (c *Controller) ListEntries() []models.TimeEntry {
	return c.ws.Store.List()
}

// ============================================================================
// Entry commands
// ============================================================================

// AddEntry records a completed entry without touching the timer
func (c *Controller) AddEntry(ctx context.Context, in EntryInput) (models.TimeEntry, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return models.TimeEntry{}, fmt.Errorf("start and end are required: %w", models.ErrInvalidTimeRange)
	}

	projectID, taskID, err := timer.ResolveRefs(c.ws.Catalog, in.Refs.ProjectID, in.Refs.TaskID)
	if err != nil {
		return models.TimeEntry{}, err
	}

	end := in.End
	entry, err := c.ws.Store.Append(models.TimeEntry{
		Description: strings.TrimSpace(in.Description),
		ProjectID:   projectID,
		TaskID:      taskID,
		Start:       in.Start,
		End:         &end,
		CreatedAt:   c.ws.Clock.Now(),
	})
	if err != nil {
		return models.TimeEntry{}, err
	}

	c.changed(ctx, events.Event{Type: events.EventEntryAdded, EntryID: entry.ID})
	return entry, nil
}

// EditEntry applies patch to an entry. The running entry cannot be given
// an end here and its start cannot move past now.
func (c *Controller) EditEntry(ctx context.Context, id types.EntryID, patch EntryPatch) (models.TimeEntry, error) {
	current, err := c.ws.Store.Get(id)
	if err != nil {
		return models.TimeEntry{}, err
	}

	if current.IsRunning() {
		if patch.End != nil {
			return models.TimeEntry{}, models.ErrActiveEntry
		}
		if patch.Start != nil && patch.Start.After(c.ws.Clock.Now()) {
			return models.TimeEntry{}, models.ErrInvalidTimeRange
		}
	}

	if patch.ClearProject && (patch.ProjectID != nil || patch.TaskID != nil) {
		return models.TimeEntry{}, fmt.Errorf("cannot clear the project and set a reference: %w", models.ErrInvalidReference)
	}

	projectID, taskID := current.ProjectID, current.TaskID
	if patch.ClearProject {
		projectID, taskID = nil, nil
	}
	if patch.ProjectID != nil {
		projectID = patch.ProjectID
		if patch.TaskID == nil {
			taskID = nil
		}
	}
	if patch.ClearTask {
		taskID = nil
	}
	if patch.TaskID != nil {
		taskID = patch.TaskID
	}
	if patch.ProjectID != nil || patch.TaskID != nil || patch.ClearProject || patch.ClearTask {
		projectID, taskID, err = timer.ResolveRefs(c.ws.Catalog, projectID, taskID)
		if err != nil {
			return models.TimeEntry{}, err
		}
	}

	updated, err := c.ws.Store.Update(id, func(e *models.TimeEntry) {
		if patch.Description != nil {
			e.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Start != nil {
			e.Start = *patch.Start
		}
		if patch.End != nil {
			end := *patch.End
			e.End = &end
		}
		e.ProjectID = projectID
		e.TaskID = taskID
	})
	if err != nil {
		return models.TimeEntry{}, err
	}

	c.changed(ctx, events.Event{Type: events.EventEntryEdited, EntryID: id})
	return updated, nil
}

// DeleteEntry removes an entry. Deleting the running entry leaves the
// timer idle.
func (c *Controller) DeleteEntry(ctx context.Context, id types.EntryID) error {
	if err := c.ws.Store.Remove(id); err != nil {
		return err
	}
	c.logger.Info("entry deleted", "entry_id", id)
	c.changed(ctx, events.Event{Type: events.EventEntryDeleted, EntryID: id})
	return nil
}

// ============================================================================
// Catalog commands
// ============================================================================

// CreateProject adds a project
func (c *Controller) CreateProject(ctx context.Context, name, description string) (models.Project, error) {
	p, err := c.ws.Catalog.CreateProject(name, description)
	if err != nil {
		return models.Project{}, err
	}
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return p, nil
}

// UpdateProject renames or re-describes a project
func (c *Controller) UpdateProject(ctx context.Context, id types.ProjectID, name, description *string) (models.Project, error) {
	p, err := c.ws.Catalog.UpdateProject(id, name, description)
	if err != nil {
		return models.Project{}, err
	}
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return p, nil
}

// DeleteProject removes a project and its tasks. Entries are kept and
// their references become dangling. It returns how many entries were
// referencing the project.
func (c *Controller) DeleteProject(ctx context.Context, id types.ProjectID) (int, error) {
	if _, err := c.ws.Catalog.DeleteProject(id); err != nil {
		return 0, err
	}

	orphaned := 0
	for _, e := range c.ws.Store.List() {
		if e.ProjectID != nil && *e.ProjectID == id {
			orphaned++
		}
	}
	c.logger.Info("project deleted", "project_id", id, "orphaned_entries", orphaned)
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return orphaned, nil
}

// CreateTask adds a task to a project
func (c *Controller) CreateTask(ctx context.Context, projectID types.ProjectID, name, description string) (models.Task, error) {
	t, err := c.ws.Catalog.CreateTask(projectID, name, description)
	if err != nil {
		return models.Task{}, err
	}
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return t, nil
}

// UpdateTask renames or re-describes a task
func (c *Controller) UpdateTask(ctx context.Context, id types.TaskID, name, description *string) (models.Task, error) {
	t, err := c.ws.Catalog.UpdateTask(id, name, description)
	if err != nil {
		return models.Task{}, err
	}
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return t, nil
}

// DeleteTask removes a task; entries keep the dangling reference
func (c *Controller) DeleteTask(ctx context.Context, id types.TaskID) error {
	if err := c.ws.Catalog.DeleteTask(id); err != nil {
		return err
	}
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return nil
}

// ResolveNames turns a project and task given by name or numeric ID into
// references. Empty strings mean no reference. A task name is looked up
// within the given project.
func (c *Controller) ResolveNames(project, task string) (Refs, error) {
	var refs Refs
	project, task = strings.TrimSpace(project), strings.TrimSpace(task)

	if project != "" {
		p, ok := c.ws.Catalog.ProjectByName(project)
		if !ok {
			if id, err := strconv.Atoi(project); err == nil {
				p, ok = c.ws.Catalog.Project(types.ProjectID(id))
			}
		}
		if !ok {
			return Refs{}, fmt.Errorf("project %q: %w", project, models.ErrInvalidReference)
		}
		refs.ProjectID = types.ProjectRef(p.ID)
	}

	if task != "" {
		var found bool
		if refs.ProjectID != nil {
			t, ok := c.ws.Catalog.TaskByName(*refs.ProjectID, task)
			if ok {
				refs.TaskID, found = types.TaskRef(t.ID), true
			}
		}
		if !found {
			if id, err := strconv.Atoi(task); err == nil {
				if t, ok := c.ws.Catalog.Task(types.TaskID(id)); ok {
					refs.TaskID, found = types.TaskRef(t.ID), true
				}
			}
		}
		if !found {
			return Refs{}, fmt.Errorf("task %q: %w", task, models.ErrInvalidReference)
		}
	}
	return refs, nil
}

// ============================================================================
// Settings
// ============================================================================

// Settings returns the user settings
func (c *Controller) Settings() models.Settings {
	return c.settings
}

// UpdateSettings changes the given fields
func (c *Controller) UpdateSettings(ctx context.Context, name, email *string) models.Settings {
	if name != nil {
		c.settings.Name = strings.TrimSpace(*name)
	}
	if email != nil {
		c.settings.Email = strings.TrimSpace(*email)
	}
	c.changed(ctx, events.Event{Type: events.EventCatalogChanged})
	return c.settings
}

// ============================================================================
// Exit
// ============================================================================

// Exit applies the exit policy to a running timer, saves, and returns the
// session summary. A save failure is returned together with the summary.
func (c *Controller) Exit(ctx context.Context) (*Summary, error) {
	var stopped *models.TimeEntry

	if c.ws.Timer.IsRunning() {
		if c.policy == RequireStop {
			return nil, models.ErrStillRunning
		}
		entry, err := c.Stop(ctx)
		if err != nil {
			return nil, err
		}
		stopped = &entry
		c.logger.Info("stopped running timer on exit", "entry_id", entry.ID)
	}

	var saveErr error
	if c.dirty || c.lastSaveErr != nil {
		saveErr = c.Flush(ctx)
	}

	summary := c.Summary()
	summary.Stopped = stopped
	return summary, saveErr
}

func (c *Controller) changed(ctx context.Context, event events.Event) {
	c.dirty = true
	c.publish(event)
	if c.autosave {
		// the error is kept in lastSaveErr and the session stays dirty
		_ = c.Flush(ctx)
	}
}

func (c *Controller) publish(event events.Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = c.ws.Clock.Now()
	}
	events.Publish(c.events, event)
}
