package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tock/internal/tui/state"
	"github.com/thenoetrevino/tock/internal/tui/theme"
)

// Render renders a bordered notification banner
func Render(severity Severity, message string) string {
	style := severity.style()

	headerText := style.icon + " " + style.title
	maxWidth := max(lipgloss.Width(headerText), lipgloss.Width(message))

	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Bold(true).
		Width(maxWidth).
		Render(headerText)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Normal)).
		Width(maxWidth).
		Render(message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(style.foreground)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, body))
}

// RenderInline renders a one-line notification for the status bar
func RenderInline(severity Severity, message string) string {
	style := severity.style()
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Render(style.icon + " " + message)
}

// RenderInlineFromState renders a one-line notification from state
func RenderInlineFromState(n state.Notification) string {
	return RenderInline(SeverityOf(n.Level), n.Message)
}

// SeverityOf maps a notification level to its severity
func SeverityOf(level state.NotificationLevel) Severity {
	switch level {
	case state.LevelWarning:
		return Warning
	case state.LevelError:
		return Error
	default:
		return Info
	}
}
