package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// GetOrderQueryHandler reads orders from the store.
type GetOrderQueryHandler struct {
	reader OrderReader
}

func NewGetOrderQueryHandler(reader OrderReader) GetOrderQueryHandler {
	return GetOrderQueryHandler{reader: reader}
}

// Handle returns a snapshot of the order, or *errs.ObjectNotFoundError.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	return h.reader.Get(ctx, query.OrderID())
}
