package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCompleteOrderCommandIsNotConstructed = errors.New(
		"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
	)
)

// CompleteOrderCommand requests the complete operation on one order.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

func NewCompleteOrderCommand(orderID string) (CompleteOrderCommand, error) {
	id, err := validateOrderID(orderID)
	if err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

func (c CompleteOrderCommand) OrderID() string {
	return c.orderID
}
