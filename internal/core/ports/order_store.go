// Package ports defines the contracts between the use cases and the
// infrastructure: where orders live and where their events go.
package ports

import (
	"context"
	"fmt"

	"dispatch/internal/core/domain/model/order"
)

// OrderStore owns the authoritative copy of every order. Implementations
// must make Transition atomic per order id: the status read, the transition
// table check and the write happen as one step with respect to every other
// Create, Get and Transition on the same id. Calls on different ids must not
// wait for each other.
//
// Returned orders are copies; mutating them does not affect the store.
type OrderStore interface {
	// Create stores a new order in ASSIGNING status. A duplicate id is
	// handled according to the store's CreatePolicy.
	Create(ctx context.Context, o *order.Order) (*order.Order, error)

	// Get returns a consistent snapshot or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*order.Order, error)

	// Transition applies op to the stored order and returns the result.
	//
	// Errors:
	//   - *errs.ObjectNotFoundError when id is unknown
	//   - *errs.PreconditionViolationError when op is not allowed from the
	//     current status; the stored order is unchanged
	Transition(ctx context.Context, id string, op order.Operation) (*order.Order, error)

	// CountByStatus returns how many orders are in each status. Statuses
	// with no orders may be absent.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}

// CreatePolicy decides what Create does with an id that is already stored.
type CreatePolicy int

const (
	// CreatePolicyOverwrite replaces the stored order with the new one, which
	// starts over in ASSIGNING with version 1.
	CreatePolicyOverwrite CreatePolicy = iota
	// CreatePolicyReject fails with *errs.ObjectAlreadyExistsError.
	CreatePolicyReject
)

// ParseCreatePolicy accepts "overwrite" and "reject".
func ParseCreatePolicy(s string) (CreatePolicy, error) {
	switch s {
	case "overwrite":
		return CreatePolicyOverwrite, nil
	case "reject":
		return CreatePolicyReject, nil
	default:
		return 0, fmt.Errorf("unknown order create policy %q", s)
	}
}

func (p CreatePolicy) String() string {
	if p == CreatePolicyReject {
		return "reject"
	}
	return "overwrite"
}
