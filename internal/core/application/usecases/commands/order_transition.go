package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/observability"
	"dispatch/internal/pkg/errs"
)

func validateOrderID(orderID string) (string, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return "", errs.NewValueIsRequiredError("id")
	}
	return orderID, nil
}

// orderTransition is the shared body of the take, complete and cancel
// handlers. Lifecycle violations are returned as they are; retrying them
// would only produce the same answer.
type orderTransition struct {
	store     OrderTransitioner
	publisher EventPublisher
	logger    *slog.Logger
	op        order.Operation
}

func (t orderTransition) apply(ctx context.Context, orderID string) (*order.Order, error) {
	o, err := t.store.Transition(ctx, orderID, t.op)
	if err != nil {
		t.record(ctx, orderID, err)
		return nil, err
	}

	observability.OrderTransitionsTotal.WithLabelValues(t.op.String(), observability.ResultOK).Inc()
	t.logger.InfoContext(ctx, "order transitioned",
		"order_id", o.ID(),
		"status", o.Status().String(),
		"version", o.Version(),
	)
	publish(ctx, t.logger, t.publisher, order.NewStatusChangedEvent(o, t.op))

	return o, nil
}

func (t orderTransition) record(ctx context.Context, orderID string, err error) {
	var violation *errs.PreconditionViolationError
	switch {
	case errors.As(err, &violation):
		observability.OrderTransitionsTotal.WithLabelValues(t.op.String(), observability.ResultRejected).Inc()
		t.logger.DebugContext(ctx, "order transition rejected", "order_id", orderID, "reason", violation.Reason)
	case errors.Is(err, errs.ErrObjectNotFound):
		observability.OrderTransitionsTotal.WithLabelValues(t.op.String(), observability.ResultNotFound).Inc()
	default:
		observability.OrderTransitionsTotal.WithLabelValues(t.op.String(), observability.ResultError).Inc()
		t.logger.ErrorContext(ctx, "order transition failed", "order_id", orderID, "error", err)
	}
}
