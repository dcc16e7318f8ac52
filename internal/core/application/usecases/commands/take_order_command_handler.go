package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

// TakeOrderCommandHandler handles TakeOrderCommand.
type TakeOrderCommandHandler struct {
	transition orderTransition
}

func NewTakeOrderCommandHandler(
	store OrderTransitioner,
	publisher EventPublisher,
	logger *slog.Logger,
) TakeOrderCommandHandler {
	return TakeOrderCommandHandler{
		transition: orderTransition{
			store:     store,
			publisher: publisher,
			logger:    logger.With("component", "TakeOrderCommandHandler"),
			op:        order.Take,
		},
	}
}

// Handle marks an ASSIGNING order as taken by a driver. Of many concurrent
// takes on one order exactly one succeeds; the rest get
// *errs.PreconditionViolationError "Order status is not ASSIGNING".
func (h TakeOrderCommandHandler) Handle(ctx context.Context, cmd TakeOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.apply(ctx, cmd.OrderID())
}
