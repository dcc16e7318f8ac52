package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

// CancelOrderCommandHandler handles CancelOrderCommand.
type CancelOrderCommandHandler struct {
	transition orderTransition
}

func NewCancelOrderCommandHandler(
	store OrderTransitioner,
	publisher EventPublisher,
	logger *slog.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		transition: orderTransition{
			store:     store,
			publisher: publisher,
			logger:    logger.With("component", "CancelOrderCommandHandler"),
			op:        order.Cancel,
		},
	}
}

// Handle calls off an order that is ASSIGNING or ONGOING. Terminal orders
// report which terminal status blocks the cancellation.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.apply(ctx, cmd.OrderID())
}
