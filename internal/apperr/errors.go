package apperr

import "errors"

var (
	// ErrSectionNotFound is returned when the classified category's heading
	// does not exist in the index document (index drift).
	ErrSectionNotFound = errors.New("section not found")
	// ErrAlreadyRan is returned when the run ledger already holds a row for
	// the requested date.
	ErrAlreadyRan = errors.New("already ran")
	// ErrLocked is returned when another run holds the run lock.
	ErrLocked = errors.New("another run in progress")
)
