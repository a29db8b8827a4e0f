package format

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/session"
)

// SummaryMarkdown renders an end-of-session summary
func SummaryMarkdown(s *session.Summary, loc *time.Location) string {
	var b strings.Builder

	b.WriteString("# Session summary\n\n")
	if s.User.Name != "" {
		fmt.Fprintf(&b, "**User:** %s", escape(s.User.Name))
		if s.User.Email != "" {
			fmt.Fprintf(&b, " (%s)", escape(s.User.Email))
		}
		b.WriteString("\n\n")
	}
	if s.Stopped != nil {
		fmt.Fprintf(&b, "Stopped **%s** at %s after %s.\n\n",
			orUntitled(s.Stopped.Description),
			TimeOfDay(s.Stopped.EndOr(s.GeneratedAt), loc),
			Clock(s.Stopped.DurationAt(s.GeneratedAt)))
	}

	b.WriteString("## Entries\n\n")
	writeEntries(&b, s.Entries, loc)

	fmt.Fprintf(&b, "## Today (%s): %s\n\n", Day(s.Today), Clock(s.TodayTotal))
	writeWeek(&b, s.Week)
	writeBreakdown(&b, s.Breakdown)

	fmt.Fprintf(&b, "**Total tracked:** %s (%s)\n", Clock(s.Total), Hours(s.Total))
	return b.String()
}

// DayMarkdown renders a day report
func DayMarkdown(r session.DayReport, loc *time.Location) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", Day(r.Date))
	writeEntries(&b, r.Entries, loc)
	fmt.Fprintf(&b, "**Day total:** %s (%s)\n\n", Clock(r.Total), Hours(r.Total))
	writeWeek(&b, r.Week)
	writeBreakdown(&b, r.Breakdown)
	return b.String()
}

func writeEntries(b *strings.Builder, lines []session.EntryLine, loc *time.Location) {
	if len(lines) == 0 {
		b.WriteString("_No entries._\n\n")
		return
	}

	b.WriteString("| ID | Description | Project | Task | Start | End | Duration |\n")
	b.WriteString("|---:|---|---|---|---|---|---:|\n")
	for _, l := range lines {
		end := "running"
		if l.End != nil {
			end = Stamp(*l.End, loc)
		}
		fmt.Fprintf(b, "| %d | %s | %s | %s | %s | %s | %s |\n",
			l.ID, escape(orUntitled(l.Description)), escape(l.Project), escape(l.Task),
			Stamp(l.Start, loc), end, Clock(l.Duration))
	}
	b.WriteString("\n")
}

func writeWeek(b *strings.Builder, w aggregate.Week) {
	fmt.Fprintf(b, "## Week of %s\n\n", w.Start)

	header := make([]string, 0, len(w.Days)+1)
	align := make([]string, 0, len(w.Days)+1)
	cells := make([]string, 0, len(w.Days)+1)
	for _, d := range w.Days {
		header = append(header, Weekday(d.Date)+" "+fmt.Sprintf("%02d", d.Date.Day))
		align = append(align, "---:")
		cells = append(cells, Clock(d.Total))
	}
	header = append(header, "Total")
	align = append(align, "---:")
	cells = append(cells, Clock(w.Total()))

	fmt.Fprintf(b, "| %s |\n|%s|\n| %s |\n\n",
		strings.Join(header, " | "), strings.Join(align, "|"), strings.Join(cells, " | "))
}

func writeBreakdown(b *strings.Builder, rows []aggregate.Row) {
	b.WriteString("## By project and task\n\n")
	if len(rows) == 0 {
		b.WriteString("_Nothing tracked._\n\n")
		return
	}
	b.WriteString("| Project | Task | Duration | Hours |\n|---|---|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			escape(r.Project), escape(r.Task), Clock(r.Duration), Hours(r.Duration))
	}
	b.WriteString("\n")
}

func orUntitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}

var markdownEscaper = strings.NewReplacer("|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;")

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// Cache Glamour renderers by width to avoid expensive re-creation
var rendererCache sync.Map // map[int]*glamour.TermRenderer

func getRenderer(width int) (*glamour.TermRenderer, error) {
	if cached, ok := rendererCache.Load(width); ok {
		return cached.(*glamour.TermRenderer), nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}

	rendererCache.Store(width, renderer)
	return renderer, nil
}

// RenderMarkdown styles md for a terminal of the given width. The
// markdown is returned unchanged if rendering fails.
func RenderMarkdown(md string, width int) string {
	if width <= 0 {
		width = 100
	}
	renderer, err := getRenderer(width)
	if err != nil {
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
