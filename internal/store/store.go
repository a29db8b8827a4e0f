// Package store keeps the time entries of a session in memory, in the
// order they were created.
package store

import (
	"fmt"
	"sync"

	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

// RemoveHook is called after an entry has been removed
type RemoveHook func(removed models.TimeEntry)

// Store is the ordered collection of time entries.
// Entries handed out are copies; changes go through Update.
type Store struct {
	mu      sync.RWMutex
	entries []models.TimeEntry
	index   map[types.EntryID]int
	nextID  types.EntryID
	onRem   []RemoveHook
}

// New returns an empty store
func New() *Store {
	return &Store{
		index:  make(map[types.EntryID]int),
		nextID: 1,
	}
}

// OnRemove registers a hook fired after every successful Remove
func (s *Store) OnRemove(hook RemoveHook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRem = append(s.onRem, hook)
}

// Append assigns a fresh ID to entry, stores it and returns the stored copy
func (s *Store) Append(entry models.TimeEntry) (models.TimeEntry, error) {
	if err := entry.Validate(); err != nil {
		return models.TimeEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry = entry.Clone()
	entry.ID = s.nextID
	s.nextID++

	s.index[entry.ID] = len(s.entries)
	s.entries = append(s.entries, entry)
	return entry.Clone(), nil
}

// Get returns a copy of the entry with the given ID
func (s *Store) Get(id types.EntryID) (models.TimeEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.TimeEntry{}, fmt.Errorf("entry %d: %w", id, models.ErrNotFound)
	}
	return s.entries[i].Clone(), nil
}

// Update applies mutate to the stored entry. The ID cannot be changed and
// the result must still be a valid entry, otherwise nothing is written.
func (s *Store) Update(id types.EntryID, mutate func(*models.TimeEntry)) (models.TimeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.TimeEntry{}, fmt.Errorf("entry %d: %w", id, models.ErrNotFound)
	}

	updated := s.entries[i].Clone()
	mutate(&updated)
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return models.TimeEntry{}, err
	}

	s.entries[i] = updated
	return updated.Clone(), nil
}

// Remove deletes the entry and notifies the remove hooks
func (s *Store) Remove(id types.EntryID) error {
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("entry %d: %w", id, models.ErrNotFound)
	}

	removed := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.reindex()
	hooks := append([]RemoveHook(nil), s.onRem...)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(removed)
	}
	return nil
}

// List returns a snapshot of all entries in insertion order.
// Later mutations of the store do not show up in the returned slice.
func (s *Store) List() []models.TimeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.TimeEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of stored entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Running returns the open entry, if any
func (s *Store) Running() (models.TimeEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.entries {
		if e.IsRunning() {
			return e.Clone(), true
		}
	}
	return models.TimeEntry{}, false
}

// Load replaces the contents with previously persisted entries, keeping
// their IDs. New IDs continue after the highest loaded one.
func (s *Store) Load(entries []models.TimeEntry) error {
	index := make(map[types.EntryID]int, len(entries))
	loaded := make([]models.TimeEntry, 0, len(entries))
	var maxID types.EntryID
	open := 0

	for _, e := range entries {
		if e.ID <= 0 {
			return fmt.Errorf("entry has invalid id %d", e.ID)
		}
		if _, dup := index[e.ID]; dup {
			return fmt.Errorf("duplicate entry id %d", e.ID)
		}
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
		if e.IsRunning() {
			open++
		}
		index[e.ID] = len(loaded)
		loaded = append(loaded, e.Clone())
		maxID = max(maxID, e.ID)
	}
	if open > 1 {
		return fmt.Errorf("%d open entries, at most one may be running", open)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = loaded
	s.index = index
	s.nextID = maxID + 1
	return nil
}

// NextID is the ID the next Append will assign
func (s *Store) NextID() types.EntryID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextID
}

// SetNextID moves ID assignment forward to next. It never goes back to
// an ID at or below one already handed out.
func (s *Store) SetNextID(next types.EntryID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = max(s.nextID, next)
}

// Reset empties the store and restarts ID assignment
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.index = make(map[types.EntryID]int)
	s.nextID = 1
}

// reindex rebuilds the ID lookup; caller holds the write lock
func (s *Store) reindex() {
	s.index = make(map[types.EntryID]int, len(s.entries))
	for i, e := range s.entries {
		s.index[e.ID] = i
	}
}
