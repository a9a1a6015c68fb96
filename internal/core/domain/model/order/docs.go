// Package order holds the Order aggregate of the food order service and
// its status state machine.
//
// The package includes:
//   - Order: the aggregate root owning items, the immutable total and the status
//   - Item: an order line with an exact decimal unit price
//   - Status: the lifecycle enum with its transition table, happy path and
//     the automatic progression steps
//
// Key business rules:
//   - New orders are always Pending and carry at least one item
//   - The total is computed once at creation and never recomputed
//   - Status changes only follow edges of the transition table; Delivered and
//     Cancelled are terminal
//   - Every status change refreshes updatedAt, which strictly increases
package order
