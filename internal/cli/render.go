package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/cli/styles"
	"github.com/thenoetrevino/tock/internal/format"
	"github.com/thenoetrevino/tock/internal/session"
)

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// EntryTable renders entry lines as a table; running entries are highlighted
func EntryTable(lines []session.EntryLine, loc *time.Location, now time.Time) string {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		end := "running"
		if l.End != nil {
			end = format.TimeOfDay(*l.End, loc)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", l.ID),
			untitled(l.Description),
			l.Project,
			l.Task,
			format.Stamp(l.Start, loc),
			end,
			format.Clock(l.Duration),
			format.Relative(l.Start, now),
		})
	}
	return styles.Table(
		[]string{"ID", "Description", "Project", "Task", "Start", "End", "Duration", "Started"},
		rows,
		func(row int) bool { return row >= 0 && row < len(lines) && lines[row].Running },
	)
}

// WeekTable renders the seven day totals of w. The column of today is
// marked with an asterisk.
func WeekTable(w aggregate.Week, today time.Time, loc *time.Location) string {
	headers := make([]string, 0, len(w.Days)+1)
	cells := make([]string, 0, len(w.Days)+1)
	marker := today.In(loc).Format("2006-01-02")
	for _, d := range w.Days {
		h := format.Weekday(d.Date) + " " + fmt.Sprintf("%02d", d.Date.Day)
		if d.Date.String() == marker {
			h = "*" + h
		}
		headers = append(headers, h)
		cells = append(cells, format.Clock(d.Total))
	}
	headers = append(headers, "Total")
	cells = append(cells, format.Clock(w.Total()))
	return styles.Table(headers, [][]string{cells}, nil)
}

// BreakdownTable renders project/task totals
func BreakdownTable(rows []aggregate.Row) string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{r.Project, r.Task, format.Clock(r.Duration), format.Hours(r.Duration)})
	}
	return styles.Table([]string{"Project", "Task", "Duration", "Hours"}, out, nil)
}

// PrintMarkdown writes md to stdout, styled through glamour when stdout
// is a terminal
func PrintMarkdown(md string) {
	if IsTerminal(os.Stdout) {
		fmt.Print(format.RenderMarkdown(md, 100))
		return
	}
	fmt.Print(md)
}

func untitled(s string) string {
	if strings.TrimSpace(s) == "" {
		return "(untitled)"
	}
	return s
}
