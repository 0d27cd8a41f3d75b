package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrLocationOccupied   = errors.New("location is occupied")
	ErrPolicyViolation    = errors.New("policy violation")
	ErrPersistenceFailure = errors.New("persistence failure")
)

// InvalidTransitionError is returned when a status change is not an edge of
// the order state machine. The order is left untouched.
type InvalidTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: from %s to %s", ErrInvalidTransition, e.From, e.To), e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// LocationOccupiedError is returned when a new order is started on a location
// that already has an active order.
type LocationOccupiedError struct {
	LocationID string
}

func NewLocationOccupiedError(locationID string) *LocationOccupiedError {
	return &LocationOccupiedError{LocationID: locationID}
}

func (e *LocationOccupiedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrLocationOccupied, e.LocationID)
}

func (e *LocationOccupiedError) Unwrap() error {
	return ErrLocationOccupied
}

// PolicyViolationError is returned when an operation is valid in shape but
// forbidden by a business rule (removing printed items, mutating a closed order,
// completing without stock).
type PolicyViolationError struct {
	Rule  string
	Cause error
}

func NewPolicyViolationError(rule string) *PolicyViolationError {
	return &PolicyViolationError{Rule: rule}
}

func NewPolicyViolationErrorWithCause(rule string, cause error) *PolicyViolationError {
	return &PolicyViolationError{Rule: rule, Cause: cause}
}

func (e *PolicyViolationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPolicyViolation, e.Rule), e.Cause)
}

func (e *PolicyViolationError) Unwrap() error {
	return ErrPolicyViolation
}

// PersistenceFailureError wraps a store error. Unwrap exposes both the
// sentinel and the underlying cause.
type PersistenceFailureError struct {
	Operation string
	Cause     error
}

func NewPersistenceFailureError(operation string, cause error) *PersistenceFailureError {
	return &PersistenceFailureError{Operation: operation, Cause: cause}
}

func (e *PersistenceFailureError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrPersistenceFailure, e.Operation), e.Cause)
}

func (e *PersistenceFailureError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistenceFailure}
	}
	return []error{ErrPersistenceFailure, e.Cause}
}
