// Package services provides domain services that coordinate more than one
// aggregate of the point-of-sale domain.
//
// The package includes:
//   - OrderLifecycle: status transitions of an order with the stock decrement on completion
//
// Services hold no state beyond their policy and never perform I/O; callers
// persist the returned changes.
package services
