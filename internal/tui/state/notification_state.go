package state

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	// LevelInfo is for confirmations such as a stopped entry
	LevelInfo NotificationLevel = iota
	// LevelWarning is for problems that did not stop a command
	LevelWarning
	// LevelError is for failed commands and failed saves
	LevelError
)

// Notification is a single message with a severity level.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState holds the notifications shown in the status line.
type NotificationState struct {
	notifications []Notification
}

// NewNotificationState creates a NotificationState with no notifications.
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Add appends a notification
func (s *NotificationState) Add(level NotificationLevel, message string) {
	s.notifications = append(s.notifications, Notification{
		Level:   level,
		Message: message,
	})
}

// Clear removes all notifications.
func (s *NotificationState) Clear() {
	s.notifications = nil
}

// ClearLevel removes all notifications of one level.
func (s *NotificationState) ClearLevel(level NotificationLevel) {
	kept := s.notifications[:0]
	for _, n := range s.notifications {
		if n.Level != level {
			kept = append(kept, n)
		}
	}
	s.notifications = kept
}

// All returns all current notifications.
func (s *NotificationState) All() []Notification {
	return s.notifications
}

// HasAny returns true if there are any notifications.
func (s *NotificationState) HasAny() bool {
	return len(s.notifications) > 0
}
