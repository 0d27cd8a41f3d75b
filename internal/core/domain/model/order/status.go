package order

import (
	"fmt"

	"pos/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Preparing ──> Ready ──> Completed
//	   │            │
//	   └────────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Pending, Preparing and Ready are
// active: an order in one of them keeps its location occupied.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota
	Pending
	Preparing
	Ready
	Completed
	Cancelled
)

var statusCodes = map[Status]string{
	Pending:   "pending",
	Preparing: "preparing",
	Ready:     "ready",
	Completed: "completed",
	Cancelled: "cancelled",
}

var statusLabels = map[Status]string{
	Pending:   "Pendiente",
	Preparing: "Preparando",
	Ready:     "Listo",
	Completed: "Completado",
	Cancelled: "Cancelado",
}

// transitions is the edge set of the state machine.
var transitions = map[Status][]Status{
	Pending:   {Preparing, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Completed},
}

// Statuses lists the valid statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Preparing, Ready, Completed, Cancelled}
}

// StatusFromString parses a stored status code such as "preparing".
func StatusFromString(s string) (Status, error) {
	for st, code := range statusCodes {
		if code == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := statusCodes[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stored code, e.g. "pending".
func (s Status) String() string {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return "unknown"
}

// Label returns the text shown to staff, e.g. "Pendiente".
func (s Status) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "Desconocido"
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// IsActive reports whether an order in this status occupies its location.
func (s Status) IsActive() bool {
	return s == Pending || s == Preparing || s == Ready
}

// CanTransitionTo reports whether target is directly reachable from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo returns target when the edge s -> target exists and an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidTransitionError(s, target)
	}
	return target, nil
}

func (s Status) Prepare() (Status, error)  { return s.TransitionTo(Preparing) }
func (s Status) MarkReady() (Status, error) { return s.TransitionTo(Ready) }
func (s Status) Complete() (Status, error) { return s.TransitionTo(Completed) }
func (s Status) Cancel() (Status, error)   { return s.TransitionTo(Cancelled) }
