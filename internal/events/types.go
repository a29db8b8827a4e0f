package events

import (
	"time"

	"github.com/thenoetrevino/tock/internal/types"
)

// EventType indicates what changed in the session
type EventType string

const (
	EventEntryStarted   EventType = "entry_started"
	EventEntryStopped   EventType = "entry_stopped"
	EventEntryAdded     EventType = "entry_added"
	EventEntryEdited    EventType = "entry_edited"
	EventEntryDeleted   EventType = "entry_deleted"
	EventCatalogChanged EventType = "catalog_changed"
	EventSaved          EventType = "saved"
	EventSaveFailed     EventType = "save_failed"
)

// Event describes one change. EntryID is zero for non-entry events.
type Event struct {
	Type       EventType
	EntryID    types.EntryID
	Message    string
	Timestamp  time.Time
	SequenceID int64 // increases by one per published event
}
