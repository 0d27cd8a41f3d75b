// Package order provides the Order aggregate of the point-of-sale system: a
// tab bound to a location, its line items, derived totals and its status.
//
// The package includes:
//   - Order: the aggregate root, with AddItem, ChangeQuantity, MarkKitchenTicketPrinted and TransitionTo
//   - LineItem: a product row with the name and price captured when it was added
//   - Status: the state machine pending -> preparing -> ready -> completed, with cancellation from pending or preparing
//   - Snapshot: a read-only copy for rendering, printing and export
//
// Key business rules:
//   - Totals are recomputed synchronously after every mutation
//   - Items cannot be removed or decremented once the kitchen ticket is printed
//   - Completed and cancelled orders cannot change
//   - A failed operation never leaves a partial change behind
package order
