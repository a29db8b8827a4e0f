package session

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/thenoetrevino/tock/internal/events"
	"github.com/thenoetrevino/tock/internal/models"
)

// ExitPolicy decides what Exit does with a running timer
type ExitPolicy string

const (
	// AutoStop stops the running entry at the exit time
	AutoStop ExitPolicy = "auto_stop"
	// RequireStop refuses to exit while an entry is running
	RequireStop ExitPolicy = "require_stop"
)

// ParseExitPolicy accepts the config spelling of a policy
func ParseExitPolicy(s string) (ExitPolicy, error) {
	switch ExitPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case AutoStop, "":
		return AutoStop, nil
	case RequireStop:
		return RequireStop, nil
	default:
		return "", fmt.Errorf("unknown exit policy %q (want %s or %s)", s, AutoStop, RequireStop)
	}
}

// Option is a functional option for configuring a Controller
type Option func(*Controller)

// WithExitPolicy sets the exit policy; the default is AutoStop
func WithExitPolicy(p ExitPolicy) Option {
	return func(c *Controller) {
		c.policy = p
	}
}

// WithAutosave flushes after every mutating command
func WithAutosave(on bool) Option {
	return func(c *Controller) {
		c.autosave = on
	}
}

// WithLogger sets the logger for the controller
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventPublisher sets where session events are sent
func WithEventPublisher(ep events.EventPublisher) Option {
	return func(c *Controller) {
		c.events = ep
	}
}

// WithDefaultSettings sets the settings used when nothing was loaded
func WithDefaultSettings(s models.Settings) Option {
	return func(c *Controller) {
		c.settings = s
	}
}
