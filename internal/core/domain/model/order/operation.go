package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Operation is a lifecycle operation requested by an actor.
type Operation int

const (
	// OperationUnknown is the zero value and is never applied.
	OperationUnknown Operation = iota
	// Take is performed by a driver accepting an ASSIGNING order.
	Take
	// Complete is performed when an ONGOING trip ends.
	Complete
	// Cancel calls off an order that is not terminal.
	Cancel
)

// String returns the lower-case operation name, which also appears in URLs.
func (op Operation) String() string {
	switch op {
	case Take:
		return "take"
	case Complete:
		return "complete"
	case Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Validate rejects OperationUnknown and out-of-range values.
func (op Operation) Validate() error {
	switch op {
	case Take, Complete, Cancel:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("operation is invalid", fmt.Errorf("%d is not a valid operation", op))
	}
}

// Apply evaluates the transition table for op starting at from.
func (op Operation) Apply(from Status) (Status, error) {
	switch op {
	case Take:
		return from.Take()
	case Complete:
		return from.Complete()
	case Cancel:
		return from.Cancel()
	default:
		return Unknown, op.Validate()
	}
}
