package cli

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var parseNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func TestParseWhen(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"now", parseNow},
		{"", parseNow},
		{"8:15", time.Date(2026, 3, 2, 8, 15, 0, 0, time.UTC)},
		{"17:05:10", time.Date(2026, 3, 2, 17, 5, 10, 0, time.UTC)},
		{"-45m", parseNow.Add(-45 * time.Minute)},
		{"2026-02-27 13:30", time.Date(2026, 2, 27, 13, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWhen(tt.in, parseNow, time.UTC)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
		})
	}
}

func TestParseWhen_Invalid(t *testing.T) {
	_, err := ParseWhen("not a time at all", parseNow, time.UTC)
	assert.Equal(t, ExitUsage, ExitCodeFor(err))
}

func TestParseDate(t *testing.T) {
	today := civil.Date{Year: 2026, Month: 3, Day: 2}

	tests := []struct {
		in   string
		want civil.Date
	}{
		{"today", today},
		{"yesterday", civil.Date{Year: 2026, Month: 3, Day: 1}},
		{"tomorrow", civil.Date{Year: 2026, Month: 3, Day: 3}},
		{"2025-12-31", civil.Date{Year: 2025, Month: 12, Day: 31}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in, today, time.UTC)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration("1h30m")
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, d)

	_, err = ParseDuration("0s")
	assert.Equal(t, ExitUsage, ExitCodeFor(err))

	_, err = ParseDuration("soon")
	assert.Equal(t, ExitUsage, ExitCodeFor(err))
}

func TestParseEntryID(t *testing.T) {
	id, err := ParseEntryID(" 7 ")
	require.NoError(t, err)
	assert.Equal(t, 7, id.ToInt())

	for _, bad := range []string{"0", "-2", "abc"} {
		_, err := ParseEntryID(bad)
		assert.Equal(t, ExitUsage, ExitCodeFor(err), bad)
	}
}
