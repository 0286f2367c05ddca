package garden

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrNoGardenSelected = errors.New("no garden selected")
	ErrNotLoggedIn      = errors.New("not logged in")
	ErrInvalidInput     = errors.New("invalid input")
	// ErrNotConfirmed: the delete was declined, nothing changed.
	ErrNotConfirmed = errors.New("not confirmed")
)
