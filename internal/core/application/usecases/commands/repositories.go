// Package commands contains business operations that modify order state.
// Every command is validated on construction, handled by exactly one handler
// and either fully succeeds or fully fails. Events go out only after the
// store has committed the change.
package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// Store contracts used by the command handlers. ports.OrderStore satisfies
// all of them.
type (
	// OrderCreator stores freshly placed orders.
	OrderCreator interface {
		Create(ctx context.Context, o *order.Order) (*order.Order, error)
	}

	// OrderTransitioner applies lifecycle operations atomically per order.
	OrderTransitioner interface {
		Transition(ctx context.Context, id string, op order.Operation) (*order.Order, error)
	}

	// EventPublisher delivers committed changes.
	EventPublisher interface {
		Publish(ctx context.Context, event order.Event) error
	}
)
