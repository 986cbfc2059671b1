package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidDate rejects entry dates that are not real ISO dates.
	ErrInvalidDate = errors.New("invalid entry date")

	// ErrNoEntries signals an empty journal: a valid "nothing to do"
	// outcome, distinct from any failure.
	ErrNoEntries = errors.New("no journal entries")

	// ErrNoContext signals that a generation payload was requested but no
	// session log exists for the date or any recent day.
	ErrNoContext = errors.New("no context available")
)
