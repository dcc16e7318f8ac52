package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// GetOrderStatsQueryHandler reports order counts per status. It backs the
// stats endpoint and the stats job.
type GetOrderStatsQueryHandler struct {
	counter StatusCounter
}

func NewGetOrderStatsQueryHandler(counter StatusCounter) GetOrderStatsQueryHandler {
	return GetOrderStatsQueryHandler{counter: counter}
}

func (h GetOrderStatsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatsQuery,
) (GetOrderStatsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	counts, err := h.counter.CountByStatus(ctx)
	if err != nil {
		return GetOrderStatsQueryResponse{}, err
	}

	resp := GetOrderStatsQueryResponse{Counts: make(map[order.Status]int, len(order.Statuses()))}
	for _, status := range order.Statuses() {
		resp.Counts[status] = counts[status]
		resp.Total += counts[status]
	}
	return resp, nil
}
