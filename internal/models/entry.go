package models

import (
	"time"

	"github.com/thenoetrevino/tock/internal/types"
)

// TimeEntry is a span of tracked time. A nil End marks the entry that is
// currently being timed; at most one entry may be open at a time.
type TimeEntry struct {
	ID          types.EntryID    `json:"id" yaml:"id"`
	Description string           `json:"description" yaml:"description"`
	ProjectID   *types.ProjectID `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	TaskID      *types.TaskID    `json:"task_id,omitempty" yaml:"task_id,omitempty"`
	Start       time.Time        `json:"start" yaml:"start"`
	End         *time.Time       `json:"end,omitempty" yaml:"end,omitempty"`
	CreatedAt   time.Time        `json:"created_at" yaml:"created_at"`
}

// IsRunning reports whether the entry has no end yet
func (e TimeEntry) IsRunning() bool {
	return e.End == nil
}

// EndOr returns the end time, or now for a running entry
func (e TimeEntry) EndOr(now time.Time) time.Time {
	if e.End == nil {
		return now
	}
	return *e.End
}

// DurationAt returns the entry length, measuring a running entry up to now.
// A running entry whose start is after now reports zero.
func (e TimeEntry) DurationAt(now time.Time) time.Duration {
	d := e.EndOr(now).Sub(e.Start)
	if d < 0 {
		return 0
	}
	return d
}

// Clone returns a copy that shares no pointers with e
func (e TimeEntry) Clone() TimeEntry {
	c := e
	if e.End != nil {
		end := *e.End
		c.End = &end
	}
	if e.ProjectID != nil {
		c.ProjectID = types.ProjectRef(*e.ProjectID)
	}
	if e.TaskID != nil {
		c.TaskID = types.TaskRef(*e.TaskID)
	}
	return c
}

// Validate checks the invariants that hold for every stored entry
func (e TimeEntry) Validate() error {
	if e.End != nil && e.End.Before(e.Start) {
		return ErrInvalidTimeRange
	}
	return nil
}

func (e TimeEntry) GetID() int {
	return e.ID.ToInt()
}
