package format

import (
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tock/internal/aggregate"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/session"
)

func TestClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00:00"},
		{45 * time.Minute, "00:45:00"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{1500 * time.Millisecond, "00:00:01"},
		{101 * time.Hour, "101:00:00"},
		{-time.Minute, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clock(tt.in), tt.in.String())
	}
}

func TestHours(t *testing.T) {
	assert.Equal(t, "1.75h", Hours(105*time.Minute))
	assert.Equal(t, "0.00h", Hours(0))
}

func TestRelative(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "3 hours ago", Relative(now.Add(-3*time.Hour), now))
}

func TestDay(t *testing.T) {
	assert.Equal(t, "Mon 2024-03-04", Day(civil.Date{Year: 2024, Month: 3, Day: 4}))
}

func TestSummaryMarkdown(t *testing.T) {
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)
	monday := civil.Date{Year: 2024, Month: 3, Day: 4}

	week := aggregate.Week{Start: monday}
	for i := range week.Days {
		week.Days[i].Date = monday.AddDays(i)
	}
	week.Days[0].Total = 45 * time.Minute

	s := &session.Summary{
		GeneratedAt: end,
		User:        models.Settings{Name: "Ada", Email: "ada@example.com"},
		Stopped:     &models.TimeEntry{ID: 1, Description: "Write report", Start: start, End: &end},
		Entries: []session.EntryLine{{
			ID: 1, Description: "Write report", Project: "a|b", Task: "(no task)",
			Start: start, End: &end, Duration: 45 * time.Minute,
		}},
		Today:      monday,
		TodayTotal: 45 * time.Minute,
		Week:       week,
		Breakdown:  []aggregate.Row{{Project: "a|b", Task: "(no task)", Duration: 45 * time.Minute}},
		Total:      45 * time.Minute,
	}

	md := SummaryMarkdown(s, time.UTC)
	assert.Contains(t, md, "**User:** Ada (ada@example.com)")
	assert.Contains(t, md, "Stopped **Write report** at 09:45 after 00:45:00.")
	assert.Contains(t, md, `| 1 | Write report | a\|b | (no task) | 2024-03-04 09:00 | 2024-03-04 09:45 | 00:45:00 |`)
	assert.Contains(t, md, "## Today (Mon 2024-03-04): 00:45:00")
	assert.Contains(t, md, "| Mon 04 | Tue 05 |")
	assert.Contains(t, md, "**Total tracked:** 00:45:00 (0.75h)")
}

func TestDayMarkdown_Empty(t *testing.T) {
	d := civil.Date{Year: 2024, Month: 3, Day: 5}
	md := DayMarkdown(session.DayReport{Date: d, Week: aggregate.Week{Start: d}}, time.UTC)

	assert.True(t, strings.HasPrefix(md, "# Tue 2024-03-05"))
	assert.Contains(t, md, "_No entries._")
	assert.Contains(t, md, "_Nothing tracked._")
}
