// Package app wires configuration, persistence and the session controller
// into one container.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/config"
	"github.com/thenoetrevino/tock/internal/database"
	"github.com/thenoetrevino/tock/internal/events"
	"github.com/thenoetrevino/tock/internal/filestore"
	"github.com/thenoetrevino/tock/internal/session"
	"github.com/thenoetrevino/tock/internal/user"
)

// App holds the session and the resources behind it
type App struct {
	Config  *config.Config
	Session *session.Controller

	// Event system for live updates
	eventClient events.EventPublisher
	ownsEvents  bool

	persister session.Persister
	logger    *slog.Logger
	location  *time.Location
}

// New opens the storage backend named by cfg and loads the session
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	persister, err := OpenPersister(ctx, cfg)
	if err != nil {
		return nil, err
	}
	a, err := NewWithPersister(ctx, cfg, persister, opts...)
	if err != nil {
		closeIfCloser(persister)
		return nil, err
	}
	return a, nil
}

// OpenPersister returns the backend selected by cfg.Storage
func OpenPersister(ctx context.Context, cfg *config.Config) (session.Persister, error) {
	switch cfg.Storage {
	case config.StorageYAML:
		path := cfg.Database
		if path == "" {
			p, err := database.DefaultPath()
			if err != nil {
				return nil, err
			}
			path = strings.TrimSuffix(p, filepath.Ext(p)) + ".yaml"
		}
		return filestore.New(path), nil
	case config.StorageSQLite, "":
		repo, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		return repo, nil
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}

// NewWithPersister builds the App over an already opened persister and
// loads the session from it. A failed load is not an error here; see
// Session.LoadWarning.
func NewWithPersister(ctx context.Context, cfg *config.Config, persister session.Persister, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	ac := &appConfig{}
	for _, opt := range opts {
		opt(ac)
	}
	if ac.logger == nil {
		ac.logger = slog.Default()
	}
	if ac.clock == nil {
		ac.clock = clock.New()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := cfg.Weekday()
	if err != nil {
		return nil, err
	}
	policy, err := session.ParseExitPolicy(cfg.ExitPolicy)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:      cfg,
		eventClient: ac.eventClient,
		persister:   persister,
		logger:      ac.logger,
		location:    loc,
	}
	if a.eventClient == nil {
		a.eventClient = events.NewBus(events.DefaultBuffer, ac.clock.Now)
		a.ownsEvents = true
	}

	ws := session.NewWorkspace(ac.clock,
		aggregate.WithLocation(loc),
		aggregate.WithWeekStart(weekStart))

	a.Session = session.New(ws, persister,
		session.WithExitPolicy(policy),
		session.WithAutosave(cfg.AutosaveEnabled()),
		session.WithLogger(ac.logger),
		session.WithEventPublisher(a.eventClient),
		session.WithDefaultSettings(user.DefaultSettings()),
	)
	if err := a.Session.Open(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

// Events returns the publisher session events go to
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Location is the zone used for days and displayed times
func (a *App) Location() *time.Location {
	return a.location
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the storage backend and the event bus the App created.
// It does not save; callers flush or exit the session first.
func (a *App) Close() error {
	if a.ownsEvents {
		if err := a.eventClient.Close(); err != nil {
			a.logger.Warn("failed to close event bus", "error", err)
		}
	}
	if c, ok := a.persister.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func closeIfCloser(p session.Persister) {
	if c, ok := p.(io.Closer); ok {
		_ = c.Close()
	}
}
