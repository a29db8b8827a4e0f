package tui

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tock/internal/events"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/session"
	"github.com/thenoetrevino/tock/internal/tui/state"
)

// Update handles all messages and updates the model accordingly
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.UiState.SetWidth(msg.Width)
		m.UiState.SetHeight(msg.Height)
		m.input.SetWidth(max(msg.Width-4, 20))
		return m, nil

	case tickMsg:
		return m, tick()

	case eventMsg:
		m.handleEvent(events.Event(msg))
		return m, m.waitForEvent()

	case eventsClosedMsg:
		m.events = nil
		return m, nil

	case tea.KeyPressMsg:
		switch m.UiState.Mode() {
		case state.InputMode:
			return m.updateInput(msg)
		case state.DeleteConfirmMode:
			return m.updateDeleteConfirm(msg)
		case state.HelpMode:
			m.UiState.SetMode(state.NormalMode)
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}

	return m, nil
}

func (m *Model) handleEvent(ev events.Event) {
	switch ev.Type {
	case events.EventSaveFailed:
		m.Notifications.ClearLevel(state.LevelError)
		m.Notifications.Add(state.LevelError, "Save failed: "+ev.Message)
	case events.EventSaved:
		m.Notifications.ClearLevel(state.LevelError)
	}
}

// ============================================================================
// Normal mode
// ============================================================================

func (m Model) updateNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m.quit()
	}

	m.Notifications.ClearLevel(state.LevelInfo)
	count := len(m.dayLines())

	switch key {
	case m.keys.Quit:
		return m.quit()

	case m.keys.Start:
		m.UiState.SetMode(state.InputMode)
		m.input.Reset()
		return m, m.input.Focus()

	case m.keys.Stop:
		entry, err := m.session.Stop(m.ctx)
		if err != nil {
			m.notifyErr(err)
			return m, nil
		}
		m.Notifications.Add(state.LevelInfo, fmt.Sprintf("Stopped entry %d", entry.ID))
		m.UiState.SetDay(m.session.Workspace().Aggregator.Today())
		m.UiState.SetSelectedEntry(m.indexOf(entry.ID.ToInt()))

	case m.keys.NextEntry, "down":
		m.UiState.MoveSelection(1, count)
	case m.keys.PrevEntry, "up":
		m.UiState.MoveSelection(-1, count)

	case m.keys.PrevDay, "left":
		m.UiState.ShiftDay(-1)
	case m.keys.NextDay, "right":
		m.UiState.ShiftDay(1)
	case m.keys.PrevWeek:
		m.UiState.ShiftDay(-7)
	case m.keys.NextWeek:
		m.UiState.ShiftDay(7)
	case m.keys.Today:
		m.UiState.SetDay(m.session.Workspace().Aggregator.Today())

	case m.keys.DeleteEntry:
		if count > 0 {
			m.UiState.SetMode(state.DeleteConfirmMode)
		}

	case m.keys.ShowHelp:
		m.UiState.SetMode(state.HelpMode)
	}

	return m, nil
}

// quit exits the session. With the require-stop policy and a running
// timer the session stays open and the user is told to stop first.
func (m Model) quit() (tea.Model, tea.Cmd) {
	summary, err := m.session.Exit(m.ctx)
	if summary == nil {
		if errors.Is(err, models.ErrStillRunning) {
			m.Notifications.Add(state.LevelWarning, "Stop the running entry before quitting")
		} else {
			m.notifyErr(err)
		}
		return m, nil
	}
	m.summary = summary
	m.exitErr = err
	m.done = true
	return m, tea.Quit
}

// ============================================================================
// Input mode
// ============================================================================

func (m Model) updateInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.Blur()
		m.UiState.SetMode(state.NormalMode)
		return m, nil

	case "enter":
		m.input.Blur()
		m.UiState.SetMode(state.NormalMode)

		// anything typed is a description, even a command keyword
		cmd, _ := session.ParseCommand("start " + m.input.Value())
		res, err := m.session.Dispatch(m.ctx, cmd)
		if err != nil {
			m.notifyErr(err)
			return m, nil
		}
		m.Notifications.Add(state.LevelInfo, fmt.Sprintf("Started entry %d", res.Entry.ID))
		if res.SaveErr != nil {
			m.Notifications.Add(state.LevelError, "Save failed: "+res.SaveErr.Error())
		}
		m.UiState.SetDay(m.session.Workspace().Aggregator.Today())
		m.UiState.SetSelectedEntry(m.indexOf(res.Entry.ID.ToInt()))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// ============================================================================
// Delete confirmation
// ============================================================================

func (m Model) updateDeleteConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.UiState.SetMode(state.NormalMode)
	if msg.String() != "y" {
		return m, nil
	}

	lines := m.dayLines()
	i := state.ClampSelection(m.UiState.SelectedEntry(), len(lines))
	if len(lines) == 0 {
		return m, nil
	}
	target := lines[i]

	if err := m.session.DeleteEntry(m.ctx, target.ID); err != nil {
		m.notifyErr(err)
		return m, nil
	}
	m.Notifications.Add(state.LevelInfo, fmt.Sprintf("Deleted entry %d", target.ID))
	m.UiState.SetSelectedEntry(state.ClampSelection(i, len(lines)-1))
	return m, nil
}

func (m *Model) notifyErr(err error) {
	m.Notifications.Add(state.LevelError, err.Error())
}

// indexOf finds an entry among the selected day's lines
func (m Model) indexOf(id int) int {
	for i, l := range m.dayLines() {
		if l.GetID() == id {
			return i
		}
	}
	return 0
}
