package cli

import (
	"errors"
	"fmt"

	"github.com/thenoetrevino/tock/internal/models"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: unexpected failures, or a session that could not be started.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, invalid flag combinations,
	// unparseable dates or durations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Entry, project or task IDs that don't exist.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Import files that cannot be decoded or validated.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty or duplicate names, inverted time ranges, references
	// to projects or tasks that don't exist.
	ExitValidation = 5

	// ExitPersistence indicates the session could not be saved or loaded.
	ExitPersistence = 6

	// ExitState indicates the timer was not in the state the command needs.
	// Use for: start while running, stop while idle, exit while running
	// under the require_stop policy.
	ExitState = 7
)

// ExitCodeError carries the process exit code for a failed command.
// Reported is set once the message has been shown to the user.
type ExitCodeError struct {
	Code     int
	Err      error
	Reported bool
}

func (e *ExitCodeError) Error() string {
	return e.Err.Error()
}

func (e *ExitCodeError) Unwrap() error {
	return e.Err
}

// ExitCodeFor returns the exit code for err
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitCodeError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	code, _, _ := classify(err)
	return code
}

// Usage wraps a bad-argument error so it exits with ExitUsage
func Usage(format string, args ...any) error {
	return &ExitCodeError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// classify maps an error to an exit code, an error code string for JSON
// output and a suggestion
func classify(err error) (int, string, string) {
	var exitErr *ExitCodeError
	switch {
	case errors.As(err, &exitErr) && exitErr.Code == ExitUsage:
		return ExitUsage, "USAGE_ERROR", "run with --help to see the accepted flags"
	case errors.Is(err, models.ErrAlreadyRunning):
		return ExitState, "ALREADY_RUNNING", "stop the running entry first with 'tock stop'"
	case errors.Is(err, models.ErrNotRunning):
		return ExitState, "NOT_RUNNING", "start one with 'tock start <description>'"
	case errors.Is(err, models.ErrStillRunning):
		return ExitState, "STILL_RUNNING", "stop the running entry before exiting"
	case errors.Is(err, models.ErrActiveEntry):
		return ExitState, "ACTIVE_ENTRY", "stop the entry before setting its end"
	case errors.Is(err, models.ErrNotFound):
		return ExitNotFound, "NOT_FOUND", ""
	case errors.Is(err, models.ErrInvalidReference):
		return ExitValidation, "INVALID_REFERENCE", "list projects with 'tock project list'"
	case errors.Is(err, models.ErrEmptyName),
		errors.Is(err, models.ErrDuplicateName),
		errors.Is(err, models.ErrInvalidTimeRange):
		return ExitValidation, "VALIDATION_ERROR", ""
	case errors.Is(err, models.ErrPersistence):
		return ExitPersistence, "PERSISTENCE_ERROR", "check the database path in your config"
	case errors.As(err, &exitErr):
		return exitErr.Code, "ERROR", ""
	}
	return ExitError, "ERROR", ""
}
