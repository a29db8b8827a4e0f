package events

import "context"

// EventPublisher sends session events to whoever is listening.
// Publishing never blocks the caller.
type EventPublisher interface {
	// SendEvent delivers an event to current listeners
	SendEvent(event Event) error

	// Listen returns a channel of events until ctx is done or the
	// publisher is closed
	Listen(ctx context.Context) (<-chan Event, error)

	// Close stops delivery and closes all listener channels
	Close() error
}

// Compile-time verification that *Bus implements EventPublisher
var _ EventPublisher = (*Bus)(nil)
