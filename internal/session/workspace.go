package session

import (
	"github.com/benbjohnson/clock"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/catalog"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/store"
	"github.com/thenoetrevino/tock/internal/timer"
)

// Workspace is the in-memory state of one session. The timer and the
// aggregator share the workspace's store.
type Workspace struct {
	Clock      clock.Clock
	Store      *store.Store
	Catalog    *catalog.Catalog
	Timer      *timer.Timer
	Aggregator *aggregate.Aggregator
}

// NewWorkspace builds an empty workspace. A nil clock uses the wall clock.
func NewWorkspace(clk clock.Clock, opts ...aggregate.Option) *Workspace {
	if clk == nil {
		clk = clock.New()
	}
	s := store.New()
	c := catalog.New(clk.Now)
	return &Workspace{
		Clock:      clk,
		Store:      s,
		Catalog:    c,
		Timer:      timer.New(s, c, clk),
		Aggregator: aggregate.New(s, c, clk, opts...),
	}
}

// Load replaces the workspace contents with a snapshot. On error the
// workspace is left empty.
func (w *Workspace) Load(snap models.Snapshot) error {
	if err := snap.Validate(); err != nil {
		w.Reset()
		return err
	}
	if err := w.Catalog.Load(snap.Projects, snap.Tasks); err != nil {
		w.Reset()
		return err
	}
	if err := w.Store.Load(snap.Entries); err != nil {
		w.Reset()
		return err
	}
	w.Store.SetNextID(snap.NextEntryID)
	w.Timer.Restore()
	return nil
}

// Reset empties the workspace
func (w *Workspace) Reset() {
	w.Store.Reset()
	w.Catalog.Reset()
	w.Timer.Restore()
}

// Snapshot copies the workspace contents for persistence
func (w *Workspace) Snapshot(settings models.Settings) models.Snapshot {
	return models.Snapshot{
		Settings:    settings,
		Projects:    w.Catalog.Projects(),
		Tasks:       w.Catalog.Tasks(),
		Entries:     w.Store.List(),
		NextEntryID: w.Store.NextID(),
	}
}
