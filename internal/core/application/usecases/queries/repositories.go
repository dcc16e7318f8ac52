// Package queries contains read-only operations over stored orders.
package queries

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

type (
	// OrderReader returns consistent order snapshots.
	OrderReader interface {
		Get(ctx context.Context, id string) (*order.Order, error)
	}

	// StatusCounter aggregates orders per status.
	StatusCounter interface {
		CountByStatus(ctx context.Context) (map[order.Status]int, error)
	}
)
