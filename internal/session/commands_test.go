package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/tock/internal/models"
)

// ============================================================================
// ParseCommand
// ============================================================================

func TestParseCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		line   string
		want   Command
		wantOK bool
	}{
		{"blank", "   ", Command{}, false},
		{"stop", "stop", Command{Name: CmdStop}, true},
		{"stop uppercase", "  STOP ", Command{Name: CmdStop}, true},
		{"list", "list", Command{Name: CmdList}, true},
		{"ls", "ls", Command{Name: CmdList}, true},
		{"status", "status", Command{Name: CmdStatus}, true},
		{"exit", "exit", Command{Name: CmdExit}, true},
		{"quit", "quit", Command{Name: CmdExit}, true},
		{"free text starts", "Write report", Command{Name: CmdStart, Description: "Write report"}, true},
		{"explicit start", "start Write report", Command{Name: CmdStart, Description: "Write report"}, true},
		{
			"project and task",
			"fix login @web +bugs",
			Command{Name: CmdStart, Description: "fix login", Project: "web", Task: "bugs"},
			true,
		},
		{"keyword with words is a description", "stop the bleeding", Command{Name: CmdStart, Description: "stop the bleeding"}, true},
		{"bare sigils stay in the description", "email @ +", Command{Name: CmdStart, Description: "email @ +"}, true},
		{"start with only a project", "start @web", Command{Name: CmdStart, Project: "web"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseCommand(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ============================================================================
// Dispatch
// ============================================================================

func TestDispatch_StartStopList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, mock := newController(t, &memPersister{})
	web, err := c.CreateProject(ctx, "Web", "")
	require.NoError(t, err)

	cmd, _ := ParseCommand("landing page @web")
	res, err := c.Dispatch(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, res.Entry)
	assert.Equal(t, web.ID, *res.Entry.ProjectID)

	mock.Add(20 * time.Minute)
	res, err = c.Dispatch(ctx, Command{Name: CmdStatus})
	require.NoError(t, err)
	require.NotNil(t, res.Status)
	assert.Equal(t, 20*time.Minute, res.Status.Elapsed)

	res, err = c.Dispatch(ctx, Command{Name: CmdStop})
	require.NoError(t, err)
	require.NotNil(t, res.Entry.End)

	res, err = c.Dispatch(ctx, Command{Name: CmdList})
	require.NoError(t, err)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "Web", res.Entries[0].Project)
	assert.Equal(t, 20*time.Minute, res.Entries[0].Duration)
}

func TestDispatch_Errors(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, _ := newController(t, &memPersister{})

	_, err := c.Dispatch(ctx, Command{Name: CmdStop})
	assert.ErrorIs(t, err, models.ErrNotRunning)

	_, err = c.Dispatch(ctx, Command{Name: CmdStart, Description: "x", Project: "missing"})
	assert.ErrorIs(t, err, models.ErrInvalidReference)
	assert.False(t, c.Workspace().Timer.IsRunning())

	_, err = c.Dispatch(ctx, Command{Name: "dance"})
	assert.ErrorIs(t, err, models.ErrUnknownCommand)
}

func TestDispatch_StartWhileRunningWinsOverBadNames(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	c, _ := newController(t, &memPersister{})

	_, err := c.Dispatch(ctx, Command{Name: CmdStart, Description: "first"})
	require.NoError(t, err)

	_, err = c.Dispatch(ctx, Command{Name: CmdStart, Description: "second", Project: "missing", Task: "nope"})
	assert.ErrorIs(t, err, models.ErrAlreadyRunning)
	assert.Len(t, c.ListEntries(), 1)
}

func TestDispatch_ExitReportsSaveFailure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := &memPersister{}
	c, _ := newController(t, p)

	_, err := c.Dispatch(ctx, Command{Name: CmdStart, Description: "work"})
	require.NoError(t, err)

	p.saveErr = errors.New("disk full")
	res, err := c.Dispatch(ctx, Command{Name: CmdExit})
	require.NoError(t, err, "exit still succeeds")
	require.NotNil(t, res.Summary)
	assert.ErrorIs(t, res.SaveErr, models.ErrPersistence)
	assert.True(t, c.Dirty())
	assert.Len(t, c.ListEntries(), 1)
}

func TestDispatch_AutosaveError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	p := &memPersister{saveErr: errors.New("read-only")}
	c, _ := newController(t, p, WithAutosave(true))

	res, err := c.Dispatch(ctx, Command{Name: CmdStart, Description: "work"})
	require.NoError(t, err)
	assert.ErrorIs(t, res.SaveErr, models.ErrPersistence)
	assert.True(t, c.Workspace().Timer.IsRunning())
}
