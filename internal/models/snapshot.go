package models

import (
	"fmt"

	"github.com/thenoetrevino/tock/internal/types"
)

// Snapshot is everything a session persists. Entries keep insertion order.
// NextEntryID is the ID the next new entry gets, so IDs of deleted entries
// are not handed out again; zero means one past the highest entry.
type Snapshot struct {
	Settings    Settings      `json:"settings" yaml:"settings"`
	Projects    []Project     `json:"projects" yaml:"projects"`
	Tasks       []Task        `json:"tasks" yaml:"tasks"`
	Entries     []TimeEntry   `json:"entries" yaml:"entries"`
	NextEntryID types.EntryID `json:"next_entry_id,omitempty" yaml:"next_entry_id,omitempty"`
}

// Validate rejects snapshots a session cannot be rebuilt from: duplicate
// IDs, inverted time ranges, or more than one open entry. Dangling
// project and task references are allowed.
func (s Snapshot) Validate() error {
	projects := make(map[types.ProjectID]struct{}, len(s.Projects))
	for _, p := range s.Projects {
		if _, dup := projects[p.ID]; dup {
			return fmt.Errorf("duplicate project id %d", p.ID)
		}
		projects[p.ID] = struct{}{}
	}

	tasks := make(map[types.TaskID]struct{}, len(s.Tasks))
	for _, t := range s.Tasks {
		if _, dup := tasks[t.ID]; dup {
			return fmt.Errorf("duplicate task id %d", t.ID)
		}
		tasks[t.ID] = struct{}{}
	}

	entries := make(map[types.EntryID]struct{}, len(s.Entries))
	open := 0
	for _, e := range s.Entries {
		if _, dup := entries[e.ID]; dup {
			return fmt.Errorf("duplicate entry id %d", e.ID)
		}
		entries[e.ID] = struct{}{}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
		if e.IsRunning() {
			open++
		}
	}
	if open > 1 {
		return fmt.Errorf("%d entries are open, at most one may be running", open)
	}
	if s.NextEntryID < 0 {
		return fmt.Errorf("invalid next entry id %d", s.NextEntryID)
	}
	return nil
}
