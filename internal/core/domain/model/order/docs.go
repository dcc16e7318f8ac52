// Package order provides the Order aggregate of the dispatch service and its
// lifecycle.
//
// The package includes:
//   - Order: the aggregate root holding the immutable trip data (fare, stops,
//     driving distances) plus status and version
//   - Status: the state machine ASSIGNING -> ONGOING -> COMPLETED, with
//     CANCELLED reachable from both non-terminal states
//   - Operation: take, complete and cancel as values, so stores can apply
//     them atomically
//   - Event: what happened to an order after a change is committed
//
// Key business rules:
//   - An order has at least two stops and one driving distance per leg
//   - Each operation succeeds at most once per order; a rejected operation
//     reports why through errs.PreconditionViolationError
//   - Every successful transition increments the version
package order
