// Package tui is the full-screen tracker: the running entry, the week's
// day totals and the entries of the selected day.
package tui

import (
	"context"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/tock/internal/app"
	"github.com/thenoetrevino/tock/internal/config"
	"github.com/thenoetrevino/tock/internal/events"
	"github.com/thenoetrevino/tock/internal/session"
	"github.com/thenoetrevino/tock/internal/tui/state"
)

// tickInterval is how often the elapsed time is redrawn
const tickInterval = time.Second

type tickMsg time.Time

// eventMsg carries one session event from the bus
type eventMsg events.Event

// eventsClosedMsg is sent once the event channel is closed
type eventsClosedMsg struct{}

// Model represents the application state for the TUI
type Model struct {
	ctx     context.Context
	app     *app.App
	session *session.Controller
	keys    config.KeyMappings

	UiState       *state.UIState
	Notifications *state.NotificationState
	input         textinput.Model

	events <-chan events.Event

	summary *session.Summary
	exitErr error
	done    bool
}

// InitialModel creates the model for a, showing today
func InitialModel(ctx context.Context, a *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "what are you working on? (@project +task)"
	ti.CharLimit = 200

	sess := a.Session
	m := Model{
		ctx:           ctx,
		app:           a,
		session:       sess,
		keys:          a.Config.KeyMappings,
		UiState:       state.NewUIState(sess.Workspace().Aggregator.Today()),
		Notifications: state.NewNotificationState(),
		input:         ti,
	}

	ch, err := a.Events().Listen(ctx)
	if err != nil {
		a.Logger().Warn("live updates unavailable", "error", err)
	} else {
		m.events = ch
	}

	if warn := sess.LoadWarning(); warn != nil {
		m.Notifications.Add(state.LevelWarning, "Started empty: "+warn.Error())
	}
	return m
}

// Init starts the redraw ticker and the event subscription
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.waitForEvent())
}

// Summary is the session summary produced when the model quit
func (m Model) Summary() *session.Summary {
	return m.summary
}

// ExitErr is the error returned by the session exit, if any
func (m Model) ExitErr() error {
	return m.exitErr
}

// Done reports whether the session has been exited
func (m Model) Done() bool {
	return m.done
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(ev)
	}
}

// dayLines returns the entries of the selected day
func (m Model) dayLines() []session.EntryLine {
	return m.session.Day(m.UiState.Day()).Entries
}

// Run shows the TUI until the user quits or ctx ends, then returns the
// session summary. If the program stops without the user quitting, the
// session is exited here.
func Run(ctx context.Context, a *app.App, opts ...tea.ProgramOption) (*session.Summary, error) {
	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(InitialModel(listenCtx, a), opts...)
	final, runErr := p.Run()

	if m, ok := final.(Model); ok && m.done {
		return m.summary, m.exitErr
	}

	// interrupted: keep the exit policy and the save on the way out
	summary, err := a.Session.Exit(context.WithoutCancel(ctx))
	if summary == nil && err == nil {
		err = runErr
	}
	return summary, err
}
