package session

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

// EntryLine is an entry with its references resolved for display
type EntryLine struct {
	ID          types.EntryID `json:"id"`
	Description string        `json:"description"`
	Project     string        `json:"project"`
	Task        string        `json:"task"`
	Start       time.Time     `json:"start"`
	End         *time.Time    `json:"end,omitempty"`
	Duration    time.Duration `json:"duration"`
	Running     bool          `json:"running"`
}

func (l EntryLine) GetID() int {
	return l.ID.ToInt()
}

// Summary is what a session shows when it ends
type Summary struct {
	GeneratedAt time.Time         `json:"generated_at"`
	User        models.Settings   `json:"user"`
	Stopped     *models.TimeEntry `json:"stopped,omitempty"`
	Entries     []EntryLine       `json:"entries"`
	Today       civil.Date        `json:"today"`
	TodayTotal  time.Duration     `json:"today_total"`
	Week        aggregate.Week    `json:"week"`
	Breakdown   []aggregate.Row   `json:"breakdown"`
	Total       time.Duration     `json:"total"`
}

// DayReport is the entries and totals of one day, with its week
type DayReport struct {
	Date      civil.Date      `json:"date"`
	Entries   []EntryLine     `json:"entries"`
	Total     time.Duration   `json:"total"`
	Week      aggregate.Week  `json:"week"`
	Breakdown []aggregate.Row `json:"breakdown"`
}

// Summary builds the summary of all entries at the current time
func (c *Controller) Summary() *Summary {
	agg := c.ws.Aggregator
	entries := c.ws.Store.List()
	today := agg.Today()

	s := &Summary{
		GeneratedAt: c.ws.Clock.Now(),
		User:        c.settings,
		Entries:     c.Lines(entries, nil),
		Today:       today,
		TodayTotal:  agg.TotalForDay(today),
		Week:        agg.WeekOf(today),
		Breakdown:   agg.Breakdown(entries),
	}
	for _, l := range s.Entries {
		s.Total += l.Duration
	}
	return s
}

// Day builds the report for date d. Entry durations are clipped to the day.
func (c *Controller) Day(d civil.Date) DayReport {
	agg := c.ws.Aggregator
	entries := agg.EntriesForDay(d)
	return DayReport{
		Date:      d,
		Entries:   c.Lines(entries, &d),
		Total:     agg.TotalForDay(d),
		Week:      agg.WeekOf(d),
		Breakdown: agg.BreakdownOn(d),
	}
}

// Lines labels entries. With a day, durations count only that day.
func (c *Controller) Lines(entries []models.TimeEntry, day *civil.Date) []EntryLine {
	now := c.ws.Clock.Now()
	lines := make([]EntryLine, 0, len(entries))
	for _, e := range entries {
		d := e.DurationAt(now)
		if day != nil {
			d = c.ws.Aggregator.DurationOn(e, *day)
		}
		lines = append(lines, EntryLine{
			ID:          e.ID,
			Description: e.Description,
			Project:     c.ws.Catalog.ProjectLabel(e.ProjectID),
			Task:        c.ws.Catalog.TaskLabel(e.TaskID),
			Start:       e.Start,
			End:         e.End,
			Duration:    d,
			Running:     e.IsRunning(),
		})
	}
	return lines
}
