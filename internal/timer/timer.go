// Package timer is the Idle/Running state machine that owns the single
// open time entry of a session.
package timer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/thenoetrevino/tock/internal/catalog"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/store"
	"github.com/thenoetrevino/tock/internal/types"
)

// State of the timer
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "idle"
	}
}

// MarshalText writes the state as "idle" or "running"
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Timer starts and stops entries in a Store. While Running it holds the
// ID of the one entry whose End is unset.
type Timer struct {
	mu     sync.Mutex
	store  *store.Store
	refs   catalog.Reader
	clock  clock.Clock
	active types.EntryID
}

// New creates an idle timer over s. Removing the active entry from s
// returns the timer to Idle.
func New(s *store.Store, refs catalog.Reader, clk clock.Clock) *Timer {
	t := &Timer{store: s, refs: refs, clock: clk}
	s.OnRemove(t.entryRemoved)
	return t
}

// Start opens a new entry at the current time
func (t *Timer) Start(description string, projectID *types.ProjectID, taskID *types.TaskID) (models.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active != 0 {
		return models.TimeEntry{}, models.ErrAlreadyRunning
	}

	projectID, taskID, err := ResolveRefs(t.refs, projectID, taskID)
	if err != nil {
		return models.TimeEntry{}, err
	}

	now := t.clock.Now()
	entry, err := t.store.Append(models.TimeEntry{
		Description: strings.TrimSpace(description),
		ProjectID:   projectID,
		TaskID:      taskID,
		Start:       now,
		CreatedAt:   now,
	})
	if err != nil {
		return models.TimeEntry{}, err
	}

	t.active = entry.ID
	return entry, nil
}

// Stop closes the active entry at the current time. If the clock reads
// earlier than the entry start, the entry is closed with zero length.
func (t *Timer) Stop() (models.TimeEntry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active == 0 {
		return models.TimeEntry{}, models.ErrNotRunning
	}

	now := t.clock.Now()
	entry, err := t.store.Update(t.active, func(e *models.TimeEntry) {
		end := now
		if end.Before(e.Start) {
			end = e.Start
		}
		e.End = &end
	})
	if err != nil {
		return models.TimeEntry{}, fmt.Errorf("stopping entry %d: %w", t.active, err)
	}

	t.active = 0
	return entry, nil
}

// Elapsed is the running time of the active entry
func (t *Timer) Elapsed() (time.Duration, error) {
	entry, ok := t.Active()
	if !ok {
		return 0, models.ErrNotRunning
	}
	return entry.DurationAt(t.clock.Now()), nil
}

// IsRunning reports whether an entry is open
func (t *Timer) IsRunning() bool {
	return t.State() == Running
}

// State returns Idle or Running
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.active == 0 {
		return Idle
	}
	return Running
}

// Active returns the open entry
func (t *Timer) Active() (models.TimeEntry, bool) {
	t.mu.Lock()
	id := t.active
	t.mu.Unlock()

	if id == 0 {
		return models.TimeEntry{}, false
	}
	entry, err := t.store.Get(id)
	if err != nil {
		return models.TimeEntry{}, false
	}
	return entry, true
}

// Restore re-derives the state from the store, adopting an open entry
// that was loaded from persistence
func (t *Timer) Restore() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.active = 0
	if e, ok := t.store.Running(); ok {
		t.active = e.ID
		return Running
	}
	return Idle
}

func (t *Timer) entryRemoved(e models.TimeEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if e.ID == t.active {
		t.active = 0
	}
}

// ResolveRefs checks optional project and task references against the
// catalog. A task without a project takes its project from the task; a
// task from a different project than the one given is rejected.
func ResolveRefs(refs catalog.Reader, projectID *types.ProjectID, taskID *types.TaskID) (*types.ProjectID, *types.TaskID, error) {
	if projectID != nil {
		if _, ok := refs.Project(*projectID); !ok {
			return nil, nil, fmt.Errorf("project %d: %w", *projectID, models.ErrInvalidReference)
		}
		projectID = types.ProjectRef(*projectID)
	}

	if taskID == nil {
		return projectID, nil, nil
	}

	task, ok := refs.Task(*taskID)
	if !ok {
		return nil, nil, fmt.Errorf("task %d: %w", *taskID, models.ErrInvalidReference)
	}
	if projectID == nil {
		projectID = types.ProjectRef(task.ProjectID)
	} else if *projectID != task.ProjectID {
		return nil, nil, fmt.Errorf("task %d belongs to project %d, not %d: %w",
			task.ID, task.ProjectID, *projectID, models.ErrInvalidReference)
	}
	return projectID, types.TaskRef(task.ID), nil
}
