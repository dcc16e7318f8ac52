package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/observability"
)

// PlaceOrderCommandHandler creates orders in ASSIGNING status and announces
// them with an order.placed event.
type PlaceOrderCommandHandler struct {
	store     OrderCreator
	publisher EventPublisher
	logger    *slog.Logger
}

func NewPlaceOrderCommandHandler(
	store OrderCreator,
	publisher EventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		store:     store,
		publisher: publisher,
		logger:    logger.With("component", "PlaceOrderCommandHandler"),
	}
}

// Handle builds the order and stores it. Whatever status the client had in
// mind, the stored order starts in ASSIGNING.
//
// Errors from the order constructor (invalid route, id too long) and from
// the store (e.g. *errs.ObjectAlreadyExistsError) are returned unchanged.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	o, err := order.NewOrder(cmd.OrderID(), cmd.OrderedAt(), cmd.Fare(), cmd.Distances(), cmd.Stops())
	if err != nil {
		return nil, err
	}

	placed, err := h.store.Create(ctx, o)
	if err != nil {
		return nil, err
	}

	observability.OrdersPlacedTotal.Inc()
	h.logger.InfoContext(ctx, "order placed", "order_id", placed.ID())
	publish(ctx, h.logger, h.publisher, order.NewPlacedEvent(placed))

	return placed, nil
}
