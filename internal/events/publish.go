package events

import "log/slog"

// Publish sends event if a publisher is configured. Failures are logged
// and swallowed; events are advisory and must not fail the operation
// that produced them.
func Publish(client EventPublisher, event Event) {
	if client == nil {
		return
	}
	if err := client.SendEvent(event); err != nil {
		slog.Debug("event publish failed",
			"event_type", event.Type,
			"entry_id", event.EntryID,
			"error", err)
	}
}
