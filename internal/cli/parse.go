package cli

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/araddon/dateparse"
	"github.com/k1LoW/duration"
	"github.com/thenoetrevino/tock/internal/types"
)

var clockTime = regexp.MustCompile(`^\d{1,2}:\d{2}(:\d{2})?$`)

// ParseWhen reads a point in time. Accepted: "now", a time of day
// ("9:30", "17:05:10") meaning today, a negative offset ("-45m", "-1h30m")
// relative to now, or any date/time dateparse understands.
func ParseWhen(s string, now time.Time, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || strings.EqualFold(s, "now"):
		return now, nil

	case clockTime.MatchString(s):
		layout := "15:04"
		if strings.Count(s, ":") == 2 {
			layout = "15:04:05"
		}
		if len(s) == len(layout)-1 {
			s = "0" + s
		}
		tod, err := time.Parse(layout, s)
		if err != nil {
			return time.Time{}, Usage("invalid time %q: %v", s, err)
		}
		local := now.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day(),
			tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil

	case strings.HasPrefix(s, "-"):
		d, err := duration.Parse(strings.TrimPrefix(s, "-"))
		if err != nil {
			return time.Time{}, Usage("invalid offset %q: %v", s, err)
		}
		return now.Add(-d), nil
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, Usage("invalid time %q: %v", s, err)
	}
	return t, nil
}

// ParseDate reads a calendar date: "today", "yesterday", "tomorrow",
// YYYY-MM-DD, or anything dateparse understands
func ParseDate(s string, today civil.Date, loc *time.Location) (civil.Date, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}

	if d, err := civil.ParseDate(strings.TrimSpace(s)); err == nil {
		return d, nil
	}
	t, err := dateparse.ParseIn(strings.TrimSpace(s), loc)
	if err != nil {
		return civil.Date{}, Usage("invalid date %q: %v", s, err)
	}
	return civil.DateOf(t.In(loc)), nil
}

// ParseDuration reads a length such as "45m", "1h30m" or "1d"
func ParseDuration(s string) (time.Duration, error) {
	d, err := duration.Parse(strings.TrimSpace(s))
	if err != nil {
		return 0, Usage("invalid duration %q: %v", s, err)
	}
	if d <= 0 {
		return 0, Usage("duration must be positive, got %q", s)
	}
	return d, nil
}

// ParseEntryID reads a positive entry ID argument
func ParseEntryID(s string) (types.EntryID, error) {
	id, err := parseID(s)
	return types.EntryID(id), err
}

// ParseProjectID reads a positive project ID argument
func ParseProjectID(s string) (types.ProjectID, error) {
	id, err := parseID(s)
	return types.ProjectID(id), err
}

// ParseTaskID reads a positive task ID argument
func ParseTaskID(s string) (types.TaskID, error) {
	id, err := parseID(s)
	return types.TaskID(id), err
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, Usage("invalid ID %q", s)
	}
	return id, nil
}
