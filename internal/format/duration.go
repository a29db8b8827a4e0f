// Package format turns durations, times and session reports into text.
package format

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/dustin/go-humanize"
)

// Clock renders d as HH:MM:SS. Hours grow past two digits when needed;
// negative durations render as zero.
func Clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// Hours renders d as decimal hours, e.g. 1.75h
func Hours(d time.Duration) string {
	return fmt.Sprintf("%.2fh", d.Hours())
}

// Relative renders t relative to now, e.g. "3 hours ago"
func Relative(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// TimeOfDay renders t as 15:04 in loc
func TimeOfDay(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("15:04")
}

// Stamp renders t as 2006-01-02 15:04 in loc
func Stamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02 15:04")
}

// Weekday is the short weekday name of d
func Weekday(d civil.Date) string {
	return d.In(time.UTC).Weekday().String()[:3]
}

// Day renders d as "Mon 2006-01-02"
func Day(d civil.Date) string {
	return Weekday(d) + " " + d.String()
}
