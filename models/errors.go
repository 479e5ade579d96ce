package models

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced game, user or RSVP no longer
// exists. Callers typically treat it as "someone else already deleted this".
var ErrNotFound = errors.New("not found")

// ErrNotOrganizer is returned when a non-organizer attempts an
// organizer-only mutation.
var ErrNotOrganizer = errors.New("only the game organizer can modify this game")

// ValidationError reports malformed input. It is never retried automatically.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
