package commands_test

import (
	"context"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	args := m.Called(ctx, o)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) Transition(ctx context.Context, id string, op order.Operation) (*order.Order, error) {
	args := m.Called(ctx, id, op)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) Publish(ctx context.Context, event order.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func eventOfType(t order.EventType, orderID string, version int64) any {
	return mock.MatchedBy(func(e order.Event) bool {
		return e.Type == t && e.OrderID == orderID && e.Version == version
	})
}

// liveContext matches a context that is not cancelled, as events are
// published after the change is committed regardless of the caller.
var liveContext = mock.MatchedBy(func(ctx context.Context) bool {
	return ctx.Err() == nil
})
