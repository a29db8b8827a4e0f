package aggregate

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/thenoetrevino/tock/internal/types"
)

// GroupKey identifies a project/task bucket. Project and Task hold the
// NoProject/UnknownProject and NoTask/UnknownTask sentinels when the
// reference is absent or dangling.
type GroupKey struct {
	Project types.ProjectID
	Task    types.TaskID
}

// Row is one labelled line of a breakdown
type Row struct {
	Key      GroupKey      `json:"-"`
	Project  string        `json:"project"`
	Task     string        `json:"task"`
	Duration time.Duration `json:"duration"`
}

// DayTotal is the time tracked on one date
type DayTotal struct {
	Date  civil.Date    `json:"date"`
	Total time.Duration `json:"total"`
}

// Week is seven consecutive day totals
type Week struct {
	Start civil.Date  `json:"start"`
	Days  [7]DayTotal `json:"days"`
}

// Total sums the seven days
func (w Week) Total() time.Duration {
	var sum time.Duration
	for _, d := range w.Days {
		sum += d.Total
	}
	return sum
}

// End is the first date after the week
func (w Week) End() civil.Date {
	return w.Start.AddDays(7)
}

// Contains reports whether d is one of the week's days
func (w Week) Contains(d civil.Date) bool {
	return !d.Before(w.Start) && d.Before(w.End())
}

// ByDate maps each day to its total
func (w Week) ByDate() map[civil.Date]time.Duration {
	out := make(map[civil.Date]time.Duration, len(w.Days))
	for _, d := range w.Days {
		out[d.Date] = d.Total
	}
	return out
}
