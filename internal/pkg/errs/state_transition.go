package errs

import (
	"errors"
	"fmt"
)

// ErrStateTransition is the sentinel for refused status transitions.
var ErrStateTransition = errors.New("state transition is not allowed")

// StateTransitionError indicates that a status transition was refused,
// either because the edge does not exist or because the actor's role is
// not authorized to trigger it.
type StateTransitionError struct {
	From   string
	To     string
	Reason string
}

// NewStateTransitionError creates a StateTransitionError for the refused
// edge From -> To with a human-readable reason.
func NewStateTransitionError(from, to, reason string) *StateTransitionError {
	return &StateTransitionError{From: from, To: to, Reason: reason}
}

func (e *StateTransitionError) Error() string {
	return sanitize(fmt.Sprintf("%s: %s -> %s (%s)", ErrStateTransition, e.From, e.To, e.Reason))
}

func (e *StateTransitionError) Unwrap() error {
	return ErrStateTransition
}
