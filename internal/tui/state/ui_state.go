package state

import "cloud.google.com/go/civil"

// Mode represents the current interaction mode of the TUI.
// Each mode determines which keys are active and what is displayed.
type Mode int

const (
	NormalMode        Mode = iota // Default navigation mode
	InputMode                     // Typing the description of a new entry
	DeleteConfirmMode             // Confirming entry deletion
	HelpMode                      // Displaying the key help
)

// UIState manages the user interface state: the selected day and entry,
// terminal dimensions, and the current interaction mode.
type UIState struct {
	// day is the date whose entries are listed
	day civil.Date

	// selectedEntry is the index into the listed entries
	selectedEntry int

	width  int
	height int

	mode Mode
}

// NewUIState creates a UIState showing today
func NewUIState(today civil.Date) *UIState {
	return &UIState{day: today, mode: NormalMode}
}

// Day returns the listed date
func (s *UIState) Day() civil.Date {
	return s.day
}

// SetDay moves to another date and resets the entry selection
func (s *UIState) SetDay(d civil.Date) {
	if d != s.day {
		s.selectedEntry = 0
	}
	s.day = d
}

// ShiftDay moves the listed date by n days
func (s *UIState) ShiftDay(n int) {
	s.SetDay(s.day.AddDays(n))
}

// SelectedEntry returns the selected index
func (s *UIState) SelectedEntry() int {
	return s.selectedEntry
}

// SetSelectedEntry sets the selected index
func (s *UIState) SetSelectedEntry(i int) {
	s.selectedEntry = i
}

// MoveSelection moves the selection by delta, staying within [0, count)
func (s *UIState) MoveSelection(delta, count int) {
	s.selectedEntry = ClampSelection(s.selectedEntry+delta, count)
}

// ClampSelection keeps i within [0, count); with no entries it is 0
func ClampSelection(i, count int) int {
	if count <= 0 || i < 0 {
		return 0
	}
	if i >= count {
		return count - 1
	}
	return i
}

// Width returns the terminal width
func (s *UIState) Width() int {
	return s.width
}

// SetWidth sets the terminal width
func (s *UIState) SetWidth(width int) {
	s.width = width
}

// Height returns the terminal height
func (s *UIState) Height() int {
	return s.height
}

// SetHeight sets the terminal height
func (s *UIState) SetHeight(height int) {
	s.height = height
}

// Mode returns the current interaction mode
func (s *UIState) Mode() Mode {
	return s.mode
}

// SetMode changes the interaction mode
func (s *UIState) SetMode(mode Mode) {
	s.mode = mode
}
