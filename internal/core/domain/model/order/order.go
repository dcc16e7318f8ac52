package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// MaxIDLength bounds caller-supplied order identifiers.
const MaxIDLength = 64

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root of a transportation job. Every field except
// status and version is fixed at construction.
//
// Order follows these invariants:
//   - id is a non-empty caller-supplied identifier
//   - stops has at least two valid locations
//   - distances has one non-negative entry per leg (len(stops) - 1)
//   - status only changes through Take, Complete and Cancel
//   - version starts at 1 and grows by one per committed transition
//
// Order is not safe for concurrent mutation; stores hand out clones.
type Order struct {
	id        string
	orderedAt time.Time
	fare      kernel.Money
	distances []int
	stops     []kernel.Location
	status    Status
	version   int64

	guard guard.ConstructorGuard
}

// NewOrder creates an order in ASSIGNING status with version 1. All
// validation failures are reported together.
//
// Example:
//
//	fare, _ := kernel.MoneyFromString("130.00", "HKD")
//	a, _ := kernel.NewLocation(22.344674, 114.124651)
//	b, _ := kernel.NewLocation(22.375384, 114.182446)
//	o, err := order.NewOrder("11", orderedAt, fare, []int{2300}, []kernel.Location{a, b})
func NewOrder(
	id string,
	orderedAt time.Time,
	fare kernel.Money,
	distances []int,
	stops []kernel.Location,
) (*Order, error) {
	return RestoreOrder(id, orderedAt, fare, distances, stops, Assigning, 1)
}

// RestoreOrder rebuilds an order read from storage, keeping its status and
// version. It applies the same validation as NewOrder.
func RestoreOrder(
	id string,
	orderedAt time.Time,
	fare kernel.Money,
	distances []int,
	stops []kernel.Location,
	status Status,
	version int64,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderedAt(orderedAt),
		o.setFare(fare),
		o.setRoute(distances, stops),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the caller-supplied identifier.
func (o *Order) ID() string {
	return o.id
}

// OrderedAt returns when the order was placed.
func (o *Order) OrderedAt() time.Time {
	return o.orderedAt
}

// Fare returns the order fare.
func (o *Order) Fare() kernel.Money {
	return o.fare
}

// Distances returns a copy of the per-leg driving distances in meters.
func (o *Order) Distances() []int {
	return slices.Clone(o.distances)
}

// Stops returns a copy of the route stops.
func (o *Order) Stops() []kernel.Location {
	return slices.Clone(o.stops)
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Version returns the transition counter.
func (o *Order) Version() int64 {
	return o.version
}

// Clone returns a deep copy that can be mutated independently.
func (o *Order) Clone() *Order {
	cp := *o
	cp.distances = slices.Clone(o.distances)
	cp.stops = slices.Clone(o.stops)
	return &cp
}

// Placed returns a copy of o as it is first stored: ASSIGNING at version 1,
// whatever status and version o carries.
func (o *Order) Placed() *Order {
	cp := o.Clone()
	cp.status = Assigning
	cp.version = 1
	return cp
}

// Apply performs op. On failure the order is left untouched and the error is
// a *errs.PreconditionViolationError for lifecycle violations.
func (o *Order) Apply(op Operation) error {
	next, err := op.Apply(o.status)
	if err != nil {
		return err
	}

	o.status = next
	o.version++
	return nil
}

// Take marks the order as taken by a driver.
func (o *Order) Take() error {
	return o.Apply(Take)
}

// Complete marks an ongoing order as completed.
func (o *Order) Complete() error {
	return o.Apply(Complete)
}

// Cancel cancels an order that has not reached a terminal status.
func (o *Order) Cancel() error {
	return o.Apply(Cancel)
}

func (o *Order) setID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errs.NewValueIsRequiredError("id")
	}
	if len(id) > MaxIDLength {
		return errs.NewValueIsOutOfRangeError("id length", len(id), 1, MaxIDLength)
	}
	o.id = id
	return nil
}

func (o *Order) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderAt")
	}
	o.orderedAt = orderedAt.UTC()
	return nil
}

func (o *Order) setFare(fare kernel.Money) error {
	if err := fare.Validate(); err != nil {
		return err
	}
	o.fare = fare
	return nil
}

func (o *Order) setRoute(distances []int, stops []kernel.Location) error {
	if len(stops) < 2 {
		return errs.NewValueIsInvalidErrorWithCause("stops", fmt.Errorf("%d stops given, at least 2 required", len(stops)))
	}

	var problems []error
	for i, stop := range stops {
		if err := stop.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("stop %d: %w", i, err))
		}
	}

	if len(distances) != len(stops)-1 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
			"drivingDistancesInMeters",
			fmt.Errorf("%d distances given for %d stops", len(distances), len(stops)),
		))
	}
	for i, d := range distances {
		if d < 0 {
			problems = append(problems, errs.NewValueIsOutOfRangeError(
				fmt.Sprintf("drivingDistancesInMeters[%d]", i), d, 0, "unbounded"))
		}
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}

	o.distances = slices.Clone(distances)
	o.stops = slices.Clone(stops)
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 1 {
		return errs.NewValueIsOutOfRangeError("version", version, 1, "unbounded")
	}
	o.version = version
	return nil
}
