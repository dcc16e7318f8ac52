package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/observability"
)

// publish delivers event after its change is committed. A failure cannot
// undo the change, so it is logged and counted rather than returned. The
// change is committed even if the caller has gone away, so delivery does not
// follow ctx's cancellation; the publisher applies its own timeout.
func publish(ctx context.Context, logger *slog.Logger, publisher EventPublisher, event order.Event) {
	ctx = context.WithoutCancel(ctx)
	if err := publisher.Publish(ctx, event); err != nil {
		observability.EventPublishFailuresTotal.Inc()
		logger.ErrorContext(ctx, "failed to publish order event",
			"order_id", event.OrderID,
			"event_type", string(event.Type),
			"version", event.Version,
			"error", err,
		)
	}
}
