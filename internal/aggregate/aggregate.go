// Package aggregate derives day totals, week rows and project/task
// breakdowns from time entries.
//
// Days are local calendar days in the configured location. An entry that
// crosses midnight contributes to each day only the part that falls
// inside it. A running entry is measured up to the clock's current time.
package aggregate

import (
	"sort"
	"time"

	"cloud.google.com/go/civil"
	"github.com/benbjohnson/clock"
	"github.com/samber/lo"
	"github.com/thenoetrevino/tock/internal/catalog"
	"github.com/thenoetrevino/tock/internal/models"
	"github.com/thenoetrevino/tock/internal/types"
)

// EntrySource supplies a snapshot of entries
type EntrySource interface {
	List() []models.TimeEntry
}

// Aggregator computes totals over an entry source
type Aggregator struct {
	entries   EntrySource
	refs      catalog.Reader
	clock     clock.Clock
	loc       *time.Location
	weekStart time.Weekday
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithLocation sets the zone that defines day boundaries
func WithLocation(loc *time.Location) Option {
	return func(a *Aggregator) {
		if loc != nil {
			a.loc = loc
		}
	}
}

// WithWeekStart sets the first day of a week for WeekOf
func WithWeekStart(day time.Weekday) Option {
	return func(a *Aggregator) {
		a.weekStart = day
	}
}

// New returns an aggregator using local time and Monday-start weeks
// unless told otherwise
func New(entries EntrySource, refs catalog.Reader, clk clock.Clock, opts ...Option) *Aggregator {
	a := &Aggregator{
		entries:   entries,
		refs:      refs,
		clock:     clk,
		loc:       time.Local,
		weekStart: time.Monday,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Location returns the zone used for day boundaries
func (a *Aggregator) Location() *time.Location {
	return a.loc
}

// WeekStart returns the configured first weekday
func (a *Aggregator) WeekStart() time.Weekday {
	return a.weekStart
}

// Today is the current local date
func (a *Aggregator) Today() civil.Date {
	return a.DateOf(a.clock.Now())
}

// DateOf returns the local date of t
func (a *Aggregator) DateOf(t time.Time) civil.Date {
	return civil.DateOf(t.In(a.loc))
}

// DayBounds returns the local midnight starting d and the next one.
// On DST transitions the span is 23 or 25 hours.
func (a *Aggregator) DayBounds(d civil.Date) (time.Time, time.Time) {
	return d.In(a.loc), d.AddDays(1).In(a.loc)
}

// DurationOn is the part of e that falls on day d
func (a *Aggregator) DurationOn(e models.TimeEntry, d civil.Date) time.Duration {
	from, to := a.DayBounds(d)
	return overlap(e, from, to, a.clock.Now())
}

// EntriesForDay lists entries that overlap day d in store order.
// Zero-length entries starting on d are included.
func (a *Aggregator) EntriesForDay(d civil.Date) []models.TimeEntry {
	from, to := a.DayBounds(d)
	now := a.clock.Now()

	return lo.Filter(a.entries.List(), func(e models.TimeEntry, _ int) bool {
		return overlap(e, from, to, now) > 0 || within(e.Start, from, to)
	})
}

// TotalForDay sums the time tracked on day d
func (a *Aggregator) TotalForDay(d civil.Date) time.Duration {
	from, to := a.DayBounds(d)
	return a.totalBetween(a.entries.List(), from, to, a.clock.Now())
}

// TotalForRange sums the time tracked on days [from, to)
func (a *Aggregator) TotalForRange(from, to civil.Date) time.Duration {
	if !from.Before(to) {
		return 0
	}
	return a.totalBetween(a.entries.List(), from.In(a.loc), to.In(a.loc), a.clock.Now())
}

// TotalsForWeek returns the seven day totals starting at weekStart.
// weekStart is used as given, whatever weekday it falls on.
func (a *Aggregator) TotalsForWeek(weekStart civil.Date) Week {
	entries := a.entries.List()
	now := a.clock.Now()

	w := Week{Start: weekStart}
	for i := range w.Days {
		d := weekStart.AddDays(i)
		from, to := a.DayBounds(d)
		w.Days[i] = DayTotal{Date: d, Total: a.totalBetween(entries, from, to, now)}
	}
	return w
}

// WeekOf returns the week containing d, using the configured week start
func (a *Aggregator) WeekOf(d civil.Date) Week {
	return a.TotalsForWeek(WeekStartFor(d, a.weekStart))
}

// ByProjectAndTask sums full entry durations per project and task.
// References that no longer resolve are grouped under the unknown
// sentinels; absent references under the "none" keys.
func (a *Aggregator) ByProjectAndTask(entries []models.TimeEntry) map[GroupKey]time.Duration {
	now := a.clock.Now()
	out := make(map[GroupKey]time.Duration)
	for _, e := range entries {
		out[a.KeyFor(e)] += e.DurationAt(now)
	}
	return out
}

// KeyFor resolves the group key of an entry
func (a *Aggregator) KeyFor(e models.TimeEntry) GroupKey {
	key := GroupKey{Project: types.NoProject, Task: types.NoTask}
	if e.ProjectID != nil {
		key.Project = types.UnknownProject
		if _, ok := a.refs.Project(*e.ProjectID); ok {
			key.Project = *e.ProjectID
		}
	}
	if e.TaskID != nil {
		key.Task = types.UnknownTask
		if _, ok := a.refs.Task(*e.TaskID); ok {
			key.Task = *e.TaskID
		}
	}
	return key
}

// ByProjectAndTaskOn is ByProjectAndTask counting only the time on day d
func (a *Aggregator) ByProjectAndTaskOn(d civil.Date) map[GroupKey]time.Duration {
	from, to := a.DayBounds(d)
	now := a.clock.Now()
	out := make(map[GroupKey]time.Duration)
	for _, e := range a.entries.List() {
		if part := overlap(e, from, to, now); part > 0 {
			out[a.KeyFor(e)] += part
		}
	}
	return out
}

// Breakdown is ByProjectAndTask as labelled rows, sorted by project then task
func (a *Aggregator) Breakdown(entries []models.TimeEntry) []Row {
	return a.rows(a.ByProjectAndTask(entries))
}

// BreakdownOn is ByProjectAndTaskOn as labelled rows
func (a *Aggregator) BreakdownOn(d civil.Date) []Row {
	return a.rows(a.ByProjectAndTaskOn(d))
}

func (a *Aggregator) rows(totals map[GroupKey]time.Duration) []Row {
	rows := make([]Row, 0, len(totals))
	for key, d := range totals {
		rows = append(rows, Row{
			Key:      key,
			Project:  a.projectLabel(key.Project),
			Task:     a.taskLabel(key.Task),
			Duration: d,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Project != rows[j].Project {
			return rows[i].Project < rows[j].Project
		}
		return rows[i].Task < rows[j].Task
	})
	return rows
}

func (a *Aggregator) projectLabel(id types.ProjectID) string {
	switch id {
	case types.NoProject:
		return catalog.LabelNoProject
	case types.UnknownProject:
		return catalog.LabelUnknownProject
	}
	p, _ := a.refs.Project(id)
	return p.Name
}

func (a *Aggregator) taskLabel(id types.TaskID) string {
	switch id {
	case types.NoTask:
		return catalog.LabelNoTask
	case types.UnknownTask:
		return catalog.LabelUnknownTask
	}
	t, _ := a.refs.Task(id)
	return t.Name
}

func (a *Aggregator) totalBetween(entries []models.TimeEntry, from, to, now time.Time) time.Duration {
	return lo.SumBy(entries, func(e models.TimeEntry) time.Duration {
		return overlap(e, from, to, now)
	})
}

// WeekStartFor returns the most recent date on or before d that falls on first
func WeekStartFor(d civil.Date, first time.Weekday) civil.Date {
	wd := d.In(time.UTC).Weekday()
	back := (int(wd) - int(first) + 7) % 7
	return d.AddDays(-back)
}

// overlap is the length of e inside [from, to)
func overlap(e models.TimeEntry, from, to, now time.Time) time.Duration {
	start := e.Start
	end := e.EndOr(now)
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

func within(t, from, to time.Time) bool {
	return !t.Before(from) && t.Before(to)
}
