package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
)

// CompleteOrderCommandHandler handles CompleteOrderCommand.
type CompleteOrderCommandHandler struct {
	transition orderTransition
}

func NewCompleteOrderCommandHandler(
	store OrderTransitioner,
	publisher EventPublisher,
	logger *slog.Logger,
) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		transition: orderTransition{
			store:     store,
			publisher: publisher,
			logger:    logger.With("component", "CompleteOrderCommandHandler"),
			op:        order.Complete,
		},
	}
}

// Handle finishes an ONGOING order.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transition.apply(ctx, cmd.OrderID())
}
