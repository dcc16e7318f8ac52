package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderEventPublisher delivers committed order changes to other systems.
// Events of a single order must be delivered in Version order.
type OrderEventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
}
