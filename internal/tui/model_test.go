package tui

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/events"
	"github.com/thenoetrevino/tock/internal/session"
	"github.com/thenoetrevino/tock/internal/testutil"
	"github.com/thenoetrevino/tock/internal/tui/state"
)

// ============================================================================
// Helpers
// ============================================================================

func newTestModel(t *testing.T) (Model, *session.Controller, func(time.Duration)) {
	t.Helper()
	clk := testutil.NewMockClock()
	a := testutil.NewTestApp(t, clk)
	m := InitialModel(t.Context(), a)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, a.Session, clk.Add
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	require.True(t, ok, "Update should return a Model")
	return out
}

func press(t *testing.T, m Model, key string) Model {
	t.Helper()
	r := []rune(key)[0]
	return send(t, m, tea.KeyPressMsg(tea.Key{Text: key, Code: r}))
}

func startEntry(t *testing.T, m Model, description string) Model {
	t.Helper()
	m = press(t, m, "s")
	require.Equal(t, state.InputMode, m.UiState.Mode())
	m.input.SetValue(description)
	return send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter}))
}

// ============================================================================
// Timer
// ============================================================================

func TestModel_StartFromInput(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = startEntry(t, m, "write docs")

	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	st := sess.Status()
	require.NotNil(t, st.Active)
	assert.Equal(t, "write docs", st.Active.Description)
	assert.True(t, m.Notifications.HasAny())
}

func TestModel_StartKeywordIsDescription(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = startEntry(t, m, "stop")

	st := sess.Status()
	require.NotNil(t, st.Active)
	assert.Equal(t, "stop", st.Active.Description)
	_ = m
}

func TestModel_EscCancelsInput(t *testing.T) {
	m, sess, _ := newTestModel(t)

	m = press(t, m, "s")
	m.input.SetValue("never started")
	m = send(t, m, tea.KeyPressMsg(tea.Key{Code: tea.KeyEsc}))

	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Nil(t, sess.Status().Active)
}

func TestModel_Stop(t *testing.T) {
	m, sess, advance := newTestModel(t)

	m = startEntry(t, m, "review")
	advance(30 * time.Minute)
	m = press(t, m, "x")

	assert.Nil(t, sess.Status().Active)
	entries := sess.ListEntries()
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].End)
	assert.Equal(t, 30*time.Minute, entries[0].End.Sub(entries[0].Start))
}

func TestModel_StartWhileRunningNotifiesError(t *testing.T) {
	m, sess, _ := newTestModel(t)
	m = startEntry(t, m, "first")
	m.Notifications.Clear()

	m = startEntry(t, m, "second")

	require.True(t, m.Notifications.HasAny())
	assert.Equal(t, state.LevelError, m.Notifications.All()[0].Level)
	assert.Equal(t, "first", sess.Status().Active.Description)
}

func TestModel_StopWhenIdleNotifiesError(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "x")

	require.True(t, m.Notifications.HasAny())
	assert.Equal(t, state.LevelError, m.Notifications.All()[0].Level)
}

// ============================================================================
// Navigation
// ============================================================================

func TestModel_DayNavigation(t *testing.T) {
	m, _, _ := newTestModel(t)
	today := m.UiState.Day()

	m = press(t, m, "h")
	assert.Equal(t, today.AddDays(-1), m.UiState.Day())

	m = press(t, m, "]")
	assert.Equal(t, today.AddDays(6), m.UiState.Day())

	m = press(t, m, "t")
	assert.Equal(t, today, m.UiState.Day())
}

func TestModel_EntrySelection(t *testing.T) {
	m, _, advance := newTestModel(t)

	m = startEntry(t, m, "one")
	advance(10 * time.Minute)
	m = press(t, m, "x")
	m = startEntry(t, m, "two")

	assert.Equal(t, 1, m.UiState.SelectedEntry(), "new entry is selected")
	m = press(t, m, "k")
	assert.Equal(t, 0, m.UiState.SelectedEntry())
	m = press(t, m, "k")
	assert.Equal(t, 0, m.UiState.SelectedEntry())
	m = press(t, m, "j")
	m = press(t, m, "j")
	assert.Equal(t, 1, m.UiState.SelectedEntry())
}

// ============================================================================
// Delete
// ============================================================================

func TestModel_DeleteConfirmed(t *testing.T) {
	m, sess, advance := newTestModel(t)
	m = startEntry(t, m, "mistake")
	advance(time.Minute)
	m = press(t, m, "x")

	m = press(t, m, "d")
	require.Equal(t, state.DeleteConfirmMode, m.UiState.Mode())
	m = press(t, m, "y")

	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Empty(t, sess.ListEntries())
}

func TestModel_DeleteDeclined(t *testing.T) {
	m, sess, advance := newTestModel(t)
	m = startEntry(t, m, "keep me")
	advance(time.Minute)

	m = press(t, m, "d")
	m = press(t, m, "n")

	assert.Equal(t, state.NormalMode, m.UiState.Mode())
	assert.Len(t, sess.ListEntries(), 1)
}

func TestModel_DeleteWithNoEntriesIsIgnored(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "d")

	assert.Equal(t, state.NormalMode, m.UiState.Mode())
}

// ============================================================================
// Quit
// ============================================================================

func TestModel_QuitStopsRunningEntry(t *testing.T) {
	m, sess, advance := newTestModel(t)
	m = startEntry(t, m, "wrap up")
	advance(45 * time.Minute)

	updated, cmd := m.Update(tea.KeyPressMsg(tea.Key{Text: "q", Code: 'q'}))
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.Done())
	require.NoError(t, m.ExitErr())
	require.NotNil(t, m.Summary())
	require.NotNil(t, m.Summary().Stopped)
	assert.Equal(t, 45*time.Minute, m.Summary().Total)
	assert.Nil(t, sess.Status().Active)
}

// ============================================================================
// Events and view
// ============================================================================

func TestModel_SaveFailedEventNotifies(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = send(t, m, eventMsg(events.Event{Type: events.EventSaveFailed, Message: "disk full"}))
	require.True(t, m.Notifications.HasAny())
	assert.Contains(t, m.Notifications.All()[0].Message, "disk full")

	m = send(t, m, eventMsg(events.Event{Type: events.EventSaved}))
	assert.False(t, m.Notifications.HasAny())
}

func TestModel_HelpMode(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "?")
	assert.Equal(t, state.HelpMode, m.UiState.Mode())
	assert.Contains(t, m.View().Content, "start a new entry")

	m = press(t, m, "?")
	assert.Equal(t, state.NormalMode, m.UiState.Mode())
}

func TestModel_View(t *testing.T) {
	m, _, advance := newTestModel(t)

	v := m.View()
	assert.True(t, v.AltScreen)
	assert.Contains(t, v.Content, "Idle")

	m = startEntry(t, m, "design review")
	advance(90 * time.Second)
	v = m.View()
	assert.Contains(t, v.Content, "design review")
	assert.Contains(t, v.Content, "00:01:30")
}

func TestModel_ViewBeforeResize(t *testing.T) {
	clk := testutil.NewMockClock()
	m := InitialModel(t.Context(), testutil.NewTestApp(t, clk))

	assert.Equal(t, "Loading...", m.View().Content)
}
