package models

import (
	"errors"
	"fmt"
)

// Domain errors shared by the store, timer and session controller
var (
	// State errors
	ErrAlreadyRunning = errors.New("a timer is already running")
	ErrNotRunning     = errors.New("no timer is running")
	ErrStillRunning   = errors.New("a timer is still running; stop it before exiting")
	ErrActiveEntry    = errors.New("entry is being timed; stop it first")

	// Lookup errors
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("invalid project or task reference")

	// Validation errors
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrDuplicateName    = errors.New("name is already in use")
	ErrInvalidTimeRange = errors.New("end time is before start time")
	ErrUnknownCommand   = errors.New("unknown command")

	// Storage errors
	ErrPersistence = errors.New("persistence failure")
)

// PersistenceError wraps a failed load or save. errors.Is matches both
// ErrPersistence and the underlying cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersistence, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

// NewPersistenceError wraps err, returning nil when err is nil
func NewPersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &PersistenceError{Op: op, Err: err}
}
