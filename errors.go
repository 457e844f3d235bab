package rosette

import (
	"errors"
	"fmt"
)

// Sentinel errors for rosette and its sub-packages.
var (
	// ErrSessionDestroyed is returned by any session operation after Destroy.
	ErrSessionDestroyed = errors.New("rosette: session destroyed")

	// ErrSessionInactive is returned when a session was never created.
	ErrSessionInactive = errors.New("rosette: session not active")

	// ErrTooFewPoints is returned when a leaf outline has fewer than 3 points.
	ErrTooFewPoints = errors.New("rosette: outline needs at least 3 points")
)

// ParameterDomainError reports a shape parameter outside its valid range.
// It is returned before any sampling starts.
type ParameterDomainError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ParameterDomainError) Error() string {
	return fmt.Sprintf("rosette: parameter %s = %v: %s", e.Field, e.Value, e.Reason)
}

// GeometryError reports a failure while turning samples into a leaf.
type GeometryError struct {
	Stage  string
	Points int
	Err    error
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("rosette: %s: %d points: %v", e.Stage, e.Points, e.Err)
}

func (e *GeometryError) Unwrap() error { return e.Err }

// SessionStateError reports an operation invoked in the wrong lifecycle state.
type SessionStateError struct {
	Op    string
	State string
	Err   error
}

func (e *SessionStateError) Error() string {
	return fmt.Sprintf("rosette: %s in state %s: %v", e.Op, e.State, e.Err)
}

func (e *SessionStateError) Unwrap() error { return e.Err }
