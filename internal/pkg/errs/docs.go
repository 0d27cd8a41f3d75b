// Package errs defines the error kinds of the point-of-sale core.
//
// Every kind has a sentinel for errors.Is and a struct carrying details:
//
//	ErrValueIsRequired    *ValueIsRequiredError     missing input
//	ErrValueIsInvalid     *ValueIsInvalidError      malformed input
//	ErrValueIsOutOfRange  *ValueIsOutOfRangeError   input outside its bounds
//	ErrObjectNotFound     *ObjectNotFoundError      unknown product, order or location
//	ErrInvalidTransition  *InvalidTransitionError   status change off the state machine
//	ErrLocationOccupied   *LocationOccupiedError    new order on a taken location
//	ErrPolicyViolation    *PolicyViolationError     business rule refused the change
//	ErrPersistenceFailure *PersistenceFailureError  the record store failed
//
// None of them is fatal. An operation that fails leaves its aggregate as it
// was, and adapters map the kind to a response (see the http adapter).
package errs
