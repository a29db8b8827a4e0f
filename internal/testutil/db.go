package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/thenoetrevino/tock/internal/app"
	"github.com/thenoetrevino/tock/internal/config"
	"github.com/thenoetrevino/tock/internal/database"
	"github.com/thenoetrevino/tock/internal/logging"
)

// Epoch is the time mock clocks start at: Monday 2026-03-02 09:00 UTC
var Epoch = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// SetupTestRepo opens an in-memory database with the full schema
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	repo, err := database.Open(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// NewMockClock returns a mock clock set to Epoch
func NewMockClock() *clock.Mock {
	clk := clock.NewMock()
	clk.Set(Epoch)
	return clk
}

// TestConfig is the default config with days measured in UTC
func TestConfig() *config.Config {
	cfg := config.Default()
	cfg.Timezone = "UTC"
	return cfg
}

// NewTestApp builds an App over an in-memory database, driven by clk
func NewTestApp(t *testing.T, clk clock.Clock) *app.App {
	t.Helper()

	repo := SetupTestRepo(t)
	a, err := app.NewWithPersister(context.Background(), TestConfig(), repo,
		app.WithClock(clk),
		app.WithLogger(logging.Discard()))
	if err != nil {
		t.Fatalf("Failed to create test app: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}
