package models

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/tock/internal/types"
)

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func at(d time.Duration) *time.Time {
	t := base.Add(d)
	return &t
}

// ============================================================================
// Error Tests
// ============================================================================

func TestPersistenceError_MatchesSentinelAndCause(t *testing.T) {
	err := NewPersistenceError("save", fs.ErrPermission)

	assert.True(t, errors.Is(err, ErrPersistence))
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Contains(t, err.Error(), "save")

	var pe *PersistenceError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "save", pe.Op)
}

func TestNewPersistenceError_Nil(t *testing.T) {
	assert.NoError(t, NewPersistenceError("load", nil))
}

// ============================================================================
// TimeEntry Tests
// ============================================================================

func TestTimeEntry_DurationAt(t *testing.T) {
	tests := []struct {
		name  string
		entry TimeEntry
		now   time.Time
		want  time.Duration
	}{
		{"completed", TimeEntry{Start: base, End: at(45 * time.Minute)}, base.Add(5 * time.Hour), 45 * time.Minute},
		{"running", TimeEntry{Start: base}, base.Add(10 * time.Minute), 10 * time.Minute},
		{"running with clock behind start", TimeEntry{Start: base}, base.Add(-time.Minute), 0},
		{"zero length", TimeEntry{Start: base, End: at(0)}, base, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.DurationAt(tt.now))
		})
	}
}

func TestTimeEntry_CloneDoesNotShare(t *testing.T) {
	e := TimeEntry{
		ID:        1,
		Start:     base,
		End:       at(time.Hour),
		ProjectID: types.ProjectRef(3),
		TaskID:    types.TaskRef(4),
	}

	c := e.Clone()
	*c.End = base
	*c.ProjectID = 9
	*c.TaskID = 9

	assert.Equal(t, base.Add(time.Hour), *e.End)
	assert.Equal(t, types.ProjectID(3), *e.ProjectID)
	assert.Equal(t, types.TaskID(4), *e.TaskID)
}

func TestTimeEntry_Validate(t *testing.T) {
	assert.NoError(t, TimeEntry{Start: base}.Validate())
	assert.NoError(t, TimeEntry{Start: base, End: at(0)}.Validate())
	assert.ErrorIs(t, TimeEntry{Start: base, End: at(-time.Second)}.Validate(), ErrInvalidTimeRange)
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSnapshot_Validate(t *testing.T) {
	tests := []struct {
		name    string
		snap    Snapshot
		wantErr bool
	}{
		{"empty", Snapshot{}, false},
		{
			"dangling references are fine",
			Snapshot{Entries: []TimeEntry{{ID: 1, Start: base, End: at(time.Hour), ProjectID: types.ProjectRef(42)}}},
			false,
		},
		{
			"duplicate entry ids",
			Snapshot{Entries: []TimeEntry{{ID: 1, Start: base, End: at(1)}, {ID: 1, Start: base, End: at(1)}}},
			true,
		},
		{
			"two open entries",
			Snapshot{Entries: []TimeEntry{{ID: 1, Start: base}, {ID: 2, Start: base}}},
			true,
		},
		{
			"inverted range",
			Snapshot{Entries: []TimeEntry{{ID: 1, Start: base, End: at(-time.Minute)}}},
			true,
		},
		{
			"duplicate project ids",
			Snapshot{Projects: []Project{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}},
			true,
		},
		{
			"duplicate task ids",
			Snapshot{Tasks: []Task{{ID: 1, ProjectID: 1, Name: "a"}, {ID: 1, ProjectID: 1, Name: "b"}}},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.snap.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
