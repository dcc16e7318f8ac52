package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	ASSIGNING ──take──> ONGOING ──complete──> COMPLETED
//	    │                  │
//	    └──cancel──┬───────┘
//	               v
//	           CANCELLED
//
// COMPLETED and CANCELLED are terminal. Status never moves backwards and no
// transition skips a state.
type Status int

const (
	// Unknown catches uninitialized Status values; it is never stored.
	Unknown Status = iota

	// Assigning is the initial status: the order waits for a driver to take it.
	Assigning

	// Ongoing means a driver has taken the order.
	Ongoing

	// Completed means the trip finished. Terminal.
	Completed

	// Cancelled means the order was called off before completion. Terminal.
	Cancelled
)

// Precondition reasons returned to callers verbatim.
const (
	ReasonNotAssigning     = "Order status is not ASSIGNING"
	ReasonNotOngoing       = "Order status is not ONGOING"
	ReasonCompletedAlready = "Order status is COMPLETED already"
	ReasonCancelledAlready = "Order status is CANCELLED already"
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Assigning: "ASSIGNING",
		Ongoing:   "ONGOING",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Assigning: "ASSIGNING",
		Ongoing:   "ONGOING",
		Completed: "COMPLETED",
		Cancelled: "CANCELLED",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Assigning, Ongoing, Completed, Cancelled}
}

// ParseStatus converts the wire/storage name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name used on the wire, or "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Take transitions ASSIGNING -> ONGOING.
//
// Returns:
//   - (Ongoing, nil) on a valid transition
//   - (Unknown, *errs.PreconditionViolationError) from any other status
func (s Status) Take() (Status, error) {
	if s != Assigning {
		return Unknown, errs.NewPreconditionViolationError(ReasonNotAssigning)
	}
	return Ongoing, nil
}

// Complete transitions ONGOING -> COMPLETED.
func (s Status) Complete() (Status, error) {
	if s != Ongoing {
		return Unknown, errs.NewPreconditionViolationError(ReasonNotOngoing)
	}
	return Completed, nil
}

// Cancel transitions ASSIGNING or ONGOING -> CANCELLED. Terminal statuses
// report which terminal state blocks the cancellation.
func (s Status) Cancel() (Status, error) {
	switch s {
	case Assigning, Ongoing:
		return Cancelled, nil
	case Completed:
		return Unknown, errs.NewPreconditionViolationError(ReasonCompletedAlready)
	case Cancelled:
		return Unknown, errs.NewPreconditionViolationError(ReasonCancelledAlready)
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}
}
