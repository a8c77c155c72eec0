// ABOUTME: Precondition errors returned when a plan cannot be generated.
// ABOUTME: Wraps sentinels so callers can test with errors.Is.
package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrProfileMissing means no health profile was supplied for the user.
	ErrProfileMissing = errors.New("profile missing")
	// ErrLastPeriodMissing means cycle_sync was selected without a last period date.
	ErrLastPeriodMissing = errors.New("last period date missing")
	// ErrInvalidRequest covers malformed request fields.
	ErrInvalidRequest = errors.New("invalid request")
)

// PreconditionError identifies the user and field that blocked generation.
type PreconditionError struct {
	UserID string
	Field  string
	Err    error
}

func (e *PreconditionError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("user %s: %s: %v", e.UserID, e.Field, e.Err)
}

func (e *PreconditionError) Unwrap() error {
	return e.Err
}

func precondition(userID, field string, err error) error {
	return &PreconditionError{UserID: userID, Field: field, Err: err}
}
