package repository

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrProgressRegression indicates an attempt to write a session
	// progress value lower than the stored one.
	ErrProgressRegression = errors.New("progress regression rejected")

	// ErrStorageFull indicates the underlying database has run out of
	// space. Callers treat this distinctly: it blocks the completion
	// handoff until the user frees space or bypasses the write.
	ErrStorageFull = errors.New("local storage full")
)

// classifyStorageErr maps low-level SQLite write failures onto the
// repository error taxonomy. Disk-exhaustion gets its own sentinel.
func classifyStorageErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "database or disk is full") {
		return ErrStorageFull
	}
	return err
}
