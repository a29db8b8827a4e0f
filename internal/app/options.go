package app

import (
	"log/slog"

	"github.com/benbjohnson/clock"
	"github.com/thenoetrevino/tock/internal/events"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	eventClient events.EventPublisher
	logger      *slog.Logger
	clock       clock.Clock
}

// WithEventPublisher sets the event publisher for the application.
// Without it the App creates its own in-process bus.
func WithEventPublisher(ec events.EventPublisher) Option {
	return func(cfg *appConfig) {
		cfg.eventClient = ec
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithClock replaces the wall clock, mainly for tests
func WithClock(clk clock.Clock) Option {
	return func(cfg *appConfig) {
		cfg.clock = clk
	}
}
