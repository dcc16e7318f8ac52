package commands

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

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// Stop is one raw route point as received from a client.
type Stop struct {
	Lat float64
	Lng float64
}

// PlaceOrderCommand carries a new order from the boundary into the domain.
// Raw request values are converted into kernel value objects exactly once,
// here; the order constructor then checks the cross-field rules.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand("11", orderedAt, "130.00", "HKD",
//	    []int{2300}, []Stop{{22.344674, 114.124651}, {22.375384, 114.182446}})
//	if err != nil {
//	    return fmt.Errorf("invalid order: %w", err)
//	}
//	placed, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   string
	orderedAt time.Time
	fare      kernel.Money
	distances []int
	stops     []kernel.Location

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the raw values. All problems are reported
// together.
func NewPlaceOrderCommand(
	orderID string,
	orderedAt time.Time,
	fareAmount string,
	fareCurrency string,
	distances []int,
	stops []Stop,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderedAt(orderedAt),
		cmd.setFare(fareAmount, fareCurrency),
		cmd.setStops(stops),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	cmd.distances = slices.Clone(distances)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() string {
	return c.orderID
}

func (c PlaceOrderCommand) OrderedAt() time.Time {
	return c.orderedAt
}

func (c PlaceOrderCommand) Fare() kernel.Money {
	return c.fare
}

func (c PlaceOrderCommand) Distances() []int {
	return slices.Clone(c.distances)
}

func (c PlaceOrderCommand) Stops() []kernel.Location {
	return slices.Clone(c.stops)
}

func (c *PlaceOrderCommand) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("id")
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setOrderedAt(orderedAt time.Time) error {
	if orderedAt.IsZero() {
		return errs.NewValueIsRequiredError("orderAt")
	}

	c.orderedAt = orderedAt
	return nil
}

func (c *PlaceOrderCommand) setFare(amount string, currency string) error {
	fare, err := kernel.MoneyFromString(amount, currency)
	if err != nil {
		return fmt.Errorf("fare: %w", err)
	}

	c.fare = fare
	return nil
}

func (c *PlaceOrderCommand) setStops(stops []Stop) error {
	locations := make([]kernel.Location, 0, len(stops))
	var problems []error
	for i, s := range stops {
		loc, err := kernel.NewLocation(s.Lat, s.Lng)
		if err != nil {
			problems = append(problems, fmt.Errorf("stop %d: %w", i, err))
			continue
		}
		locations = append(locations, loc)
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}

	c.stops = locations
	return nil
}
