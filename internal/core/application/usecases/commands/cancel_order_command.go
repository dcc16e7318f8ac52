package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCancelOrderCommandIsNotConstructed = errors.New(
		"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
	)
)

// CancelOrderCommand requests the cancel operation on one order.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

func NewCancelOrderCommand(orderID string) (CancelOrderCommand, error) {
	id, err := validateOrderID(orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}

	return CancelOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) OrderID() string {
	return c.orderID
}
