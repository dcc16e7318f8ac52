package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var (
	ErrTakeOrderCommandIsNotConstructed = errors.New(
		"TakeOrderCommand must be created via NewTakeOrderCommand constructor",
	)
)

// TakeOrderCommand requests the take operation on one order.
type TakeOrderCommand struct { //nolint:recvcheck //using for validation
	orderID string

	guard guard.ConstructorGuard
}

func NewTakeOrderCommand(orderID string) (TakeOrderCommand, error) {
	id, err := validateOrderID(orderID)
	if err != nil {
		return TakeOrderCommand{}, err
	}

	return TakeOrderCommand{orderID: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c TakeOrderCommand) Validate() error {
	return c.guard.Validate(ErrTakeOrderCommandIsNotConstructed)
}

func (c TakeOrderCommand) OrderID() string {
	return c.orderID
}
