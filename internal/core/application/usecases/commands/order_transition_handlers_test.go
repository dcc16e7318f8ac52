package commands_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/order/ordertest"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type transitionCase struct {
	name      string
	op        order.Operation
	result    order.Status
	eventType order.EventType
	handle    func(ctx context.Context, store *MockOrderStore, publisher *MockEventPublisher, id string) (*order.Order, error)
}

func transitionCases() []transitionCase {
	return []transitionCase{
		{
			name:      "take",
			op:        order.Take,
			result:    order.Ongoing,
			eventType: order.EventTaken,
			handle: func(ctx context.Context, store *MockOrderStore, publisher *MockEventPublisher, id string) (*order.Order, error) {
				cmd, err := commands.NewTakeOrderCommand(id)
				if err != nil {
					return nil, err
				}
				return commands.NewTakeOrderCommandHandler(store, publisher, logging.Discard()).Handle(ctx, cmd)
			},
		},
		{
			name:      "complete",
			op:        order.Complete,
			result:    order.Completed,
			eventType: order.EventCompleted,
			handle: func(ctx context.Context, store *MockOrderStore, publisher *MockEventPublisher, id string) (*order.Order, error) {
				cmd, err := commands.NewCompleteOrderCommand(id)
				if err != nil {
					return nil, err
				}
				return commands.NewCompleteOrderCommandHandler(store, publisher, logging.Discard()).Handle(ctx, cmd)
			},
		},
		{
			name:      "cancel",
			op:        order.Cancel,
			result:    order.Cancelled,
			eventType: order.EventCancelled,
			handle: func(ctx context.Context, store *MockOrderStore, publisher *MockEventPublisher, id string) (*order.Order, error) {
				cmd, err := commands.NewCancelOrderCommand(id)
				if err != nil {
					return nil, err
				}
				return commands.NewCancelOrderCommandHandler(store, publisher, logging.Discard()).Handle(ctx, cmd)
			},
		},
	}
}

func TestTransitionHandlers_Success_PublishesEvent(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			store := new(MockOrderStore)
			publisher := new(MockEventPublisher)
			result := ordertest.RestoreOrder(t, "11", tc.result, 2)
			mock.InOrder(
				store.On("Transition", ctx, "11", tc.op).Return(result, nil).Once(),
				publisher.On("Publish", liveContext, eventOfType(tc.eventType, "11", 2)).Return(nil).Once(),
			)

			got, err := tc.handle(ctx, store, publisher, "11")

			require.NoError(t, err)
			assert.Equal(t, tc.result, got.Status())
			store.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestTransitionHandlers_PreconditionViolation_PassedThrough(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			store := new(MockOrderStore)
			publisher := new(MockEventPublisher)
			violation := errs.NewPreconditionViolationError("Order status is COMPLETED already")
			store.On("Transition", ctx, "11", tc.op).Return(nil, violation).Once()

			_, err := tc.handle(ctx, store, publisher, "11")

			var got *errs.PreconditionViolationError
			require.ErrorAs(t, err, &got)
			assert.Equal(t, violation.Reason, got.Reason)
			store.AssertNumberOfCalls(t, "Transition", 1)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestTransitionHandlers_NotFound_PassedThrough(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			store := new(MockOrderStore)
			publisher := new(MockEventPublisher)
			store.On("Transition", ctx, "999", tc.op).Return(nil, errs.NewObjectNotFoundError("order", "999")).Once()

			_, err := tc.handle(ctx, store, publisher, "999")

			require.ErrorIs(t, err, errs.ErrObjectNotFound)
			publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
		})
	}
}

func TestTransitionHandlers_StoreError(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			store := new(MockOrderStore)
			boom := errors.New("connection reset")
			store.On("Transition", ctx, "11", tc.op).Return(nil, boom).Once()

			_, err := tc.handle(ctx, store, new(MockEventPublisher), "11")

			require.ErrorIs(t, err, boom)
		})
	}
}

func TestTransitionHandlers_PublishFailureIsNotReturned(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			store := new(MockOrderStore)
			publisher := new(MockEventPublisher)
			store.On("Transition", ctx, "11", tc.op).Return(ordertest.RestoreOrder(t, "11", tc.result, 2), nil).Once()
			publisher.On("Publish", liveContext, mock.Anything).Return(errors.New("broker down")).Once()

			got, err := tc.handle(ctx, store, publisher, "11")

			require.NoError(t, err)
			assert.Equal(t, tc.result, got.Status())
		})
	}
}

func TestTransitionHandlers_NotConstructed(t *testing.T) {
	store := new(MockOrderStore)
	publisher := new(MockEventPublisher)

	_, err := commands.NewTakeOrderCommandHandler(store, publisher, logging.Discard()).
		Handle(t.Context(), commands.TakeOrderCommand{})
	require.ErrorIs(t, err, commands.ErrTakeOrderCommandIsNotConstructed)

	_, err = commands.NewCompleteOrderCommandHandler(store, publisher, logging.Discard()).
		Handle(t.Context(), commands.CompleteOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCompleteOrderCommandIsNotConstructed)

	_, err = commands.NewCancelOrderCommandHandler(store, publisher, logging.Discard()).
		Handle(t.Context(), commands.CancelOrderCommand{})
	require.ErrorIs(t, err, commands.ErrCancelOrderCommandIsNotConstructed)

	store.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionHandlers_CallerGone_EventStillPublished(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithCancel(t.Context())
			cancel()
			store := new(MockOrderStore)
			publisher := new(MockEventPublisher)
			store.On("Transition", ctx, "11", tc.op).Return(ordertest.RestoreOrder(t, "11", tc.result, 2), nil).Once()
			publisher.On("Publish", liveContext, eventOfType(tc.eventType, "11", 2)).Return(nil).Once()

			_, err := tc.handle(ctx, store, publisher, "11")

			require.NoError(t, err)
			publisher.AssertExpectations(t)
		})
	}
}
