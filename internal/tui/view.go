package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/session"
	"github.com/thenoetrevino/tock/internal/tui/notifications"
	"github.com/thenoetrevino/tock/internal/tui/state"
	"github.com/thenoetrevino/tock/internal/tui/theme"
)

// View renders the current state of the application
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.UiState.Width() == 0 {
		view.Content = "Loading..."
		return view
	}

	if m.UiState.Mode() == state.HelpMode {
		view.Content = m.viewHelp()
		return view
	}

	report := m.session.Day(m.UiState.Day())

	sections := []string{
		m.viewHeader(),
		m.viewTimer(),
		m.viewWeek(report.Week),
		m.viewDay(report),
	}
	switch m.UiState.Mode() {
	case state.InputMode:
		sections = append(sections, m.input.View())
	case state.DeleteConfirmMode:
		sections = append(sections, m.viewDeleteConfirm(report.Entries))
	}
	sections = append(sections, m.viewStatusBar())

	view.Content = lipgloss.JoinVertical(lipgloss.Left, sections...)
	return view
}

func (m Model) viewHeader() string {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Title)).
		Bold(true).
		Render("tock")
	if name := m.session.Settings().Name; name != "" {
		title += lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("  " + name)
	}
	return title
}

func (m Model) viewTimer() string {
	st := m.session.Status()
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(max(m.UiState.Width()-2, 20))

	if st.Active == nil {
		return box.BorderForeground(lipgloss.Color(theme.Stopped)).
			Foreground(lipgloss.Color(theme.Subtle)).
			Render(fmt.Sprintf("Idle. Press %s to start tracking.", m.keys.Start))
	}

	desc := st.Active.Description
	if desc == "" {
		desc = "(untitled)"
	}
	ref := m.session.Workspace().Catalog
	line := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Running)).Bold(true).
		Render("● "+format.Clock(st.Elapsed)) + "  " + desc
	sub := fmt.Sprintf("%s / %s  since %s",
		ref.ProjectLabel(st.Active.ProjectID),
		ref.TaskLabel(st.Active.TaskID),
		format.TimeOfDay(st.Active.Start, m.app.Location()))

	return box.BorderForeground(lipgloss.Color(theme.Running)).
		Render(line + "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(sub))
}

func (m Model) viewWeek(w aggregate.Week) string {
	selected := m.UiState.Day()
	today := m.session.Workspace().Aggregator.Today()

	cells := make([]string, 0, len(w.Days)+1)
	for _, d := range w.Days {
		style := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
		if d.Date == today {
			style = style.Foreground(lipgloss.Color(theme.Accent))
		}
		if d.Date == selected {
			style = style.Background(lipgloss.Color(theme.SelectedBg)).Bold(true)
		}
		cells = append(cells, style.Render(format.Weekday(d.Date)+"\n"+format.Clock(d.Total)))
	}
	cells = append(cells, lipgloss.NewStyle().Padding(0, 1).Bold(true).
		Render("Week\n"+format.Clock(w.Total())))

	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m Model) viewDay(r session.DayReport) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).
		Render(format.Day(r.Date) + "  " + format.Clock(r.Total))

	if len(r.Entries) == 0 {
		return heading + "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("No entries")
	}

	loc := m.app.Location()
	selected := state.ClampSelection(m.UiState.SelectedEntry(), len(r.Entries))
	rows := make([][]string, 0, len(r.Entries))
	for _, l := range r.Entries {
		end := "running"
		if l.End != nil {
			end = format.TimeOfDay(*l.End, loc)
		}
		desc := l.Description
		if desc == "" {
			desc = "(untitled)"
		}
		rows = append(rows, []string{
			fmt.Sprint(l.ID),
			format.TimeOfDay(l.Start, loc),
			end,
			format.Clock(l.Duration),
			l.Project,
			l.Task,
			desc,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Border))).
		Headers("ID", "Start", "End", "Duration", "Project", "Task", "Description").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return base.Bold(true).Foreground(lipgloss.Color(theme.Accent))
			case row == selected:
				return base.Background(lipgloss.Color(theme.SelectedBg)).Foreground(lipgloss.Color(theme.Normal))
			case r.Entries[row].Running:
				return base.Foreground(lipgloss.Color(theme.Running))
			default:
				return base.Foreground(lipgloss.Color(theme.Normal))
			}
		})

	return heading + "\n" + t.String()
}

func (m Model) viewDeleteConfirm(lines []session.EntryLine) string {
	if len(lines) == 0 {
		return ""
	}
	l := lines[state.ClampSelection(m.UiState.SelectedEntry(), len(lines))]
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Delete)).Bold(true).
		Render(fmt.Sprintf("Delete entry %d? (y/n)", l.ID))
}

func (m Model) viewStatusBar() string {
	parts := make([]string, 0, 2)
	for _, n := range m.Notifications.All() {
		parts = append(parts, notifications.RenderInlineFromState(n))
	}
	parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).
		Render(fmt.Sprintf("%s help  %s quit", m.keys.ShowHelp, m.keys.Quit)))
	return strings.Join(parts, "  ")
}

func (m Model) viewHelp() string {
	k := m.keys
	bindings := [][2]string{
		{k.Start, "start a new entry"},
		{k.Stop, "stop the running entry"},
		{k.NextEntry + "/" + k.PrevEntry, "select entry"},
		{k.DeleteEntry, "delete selected entry"},
		{k.PrevDay + "/" + k.NextDay, "previous/next day"},
		{k.PrevWeek + "/" + k.NextWeek, "previous/next week"},
		{k.Today, "jump to today"},
		{k.ShowHelp, "toggle help"},
		{k.Quit, "quit and show summary"},
	}

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)).Bold(true).Width(8)
	lines := make([]string, 0, len(bindings)+2)
	lines = append(lines, lipgloss.NewStyle().Bold(true).Render("Keys"), "")
	for _, b := range bindings {
		lines = append(lines, keyStyle.Render(b[0])+b[1])
	}

	return notifications.Render(notifications.Info, "Type a description with @project and +task when starting.") +
		"\n" + lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Border)).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}
