package queries_test

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/order/ordertest"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderStore) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.(map[order.Status]int), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestNewGetOrderQuery(t *testing.T) {
	q, err := queries.NewGetOrderQuery(" 11 ")
	require.NoError(t, err)
	assert.Equal(t, "11", q.OrderID())
	require.NoError(t, q.Validate())

	_, err = queries.NewGetOrderQuery("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	require.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestGetOrderQueryHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	store := new(MockOrderStore)
	store.On("Get", ctx, "11").Return(ordertest.NewOrder(t, "11"), nil).Once()
	q, err := queries.NewGetOrderQuery("11")
	require.NoError(t, err)

	o, err := queries.NewGetOrderQueryHandler(store).Handle(ctx, q)

	require.NoError(t, err)
	assert.Equal(t, "11", o.ID())
	store.AssertExpectations(t)
}

func TestGetOrderQueryHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	store := new(MockOrderStore)
	store.On("Get", ctx, "999").Return(nil, errs.NewObjectNotFoundError("order", "999")).Once()
	q, err := queries.NewGetOrderQuery("999")
	require.NoError(t, err)

	_, err = queries.NewGetOrderQueryHandler(store).Handle(ctx, q)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGetOrderQueryHandler_Handle_NotConstructed(t *testing.T) {
	store := new(MockOrderStore)

	_, err := queries.NewGetOrderQueryHandler(store).Handle(t.Context(), queries.GetOrderQuery{})

	require.ErrorIs(t, err, queries.ErrGetOrderQueryIsNotConstructed)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetOrderStatsQueryHandler_Handle_FillsEveryStatus(t *testing.T) {
	ctx := t.Context()
	store := new(MockOrderStore)
	store.On("CountByStatus", ctx).Return(map[order.Status]int{
		order.Assigning: 3,
		order.Cancelled: 1,
	}, nil).Once()

	resp, err := queries.NewGetOrderStatsQueryHandler(store).Handle(ctx, queries.NewGetOrderStatsQuery())

	require.NoError(t, err)
	assert.Equal(t, map[order.Status]int{
		order.Assigning: 3,
		order.Ongoing:   0,
		order.Completed: 0,
		order.Cancelled: 1,
	}, resp.Counts)
	assert.Equal(t, 4, resp.Total)
}

func TestGetOrderStatsQueryHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	store := new(MockOrderStore)
	boom := errors.New("redis: connection refused")
	store.On("CountByStatus", ctx).Return(nil, boom).Once()

	_, err := queries.NewGetOrderStatsQueryHandler(store).Handle(ctx, queries.NewGetOrderStatsQuery())

	require.ErrorIs(t, err, boom)
}

func TestGetOrderStatsQueryHandler_Handle_NotConstructed(t *testing.T) {
	_, err := queries.NewGetOrderStatsQueryHandler(new(MockOrderStore)).
		Handle(t.Context(), queries.GetOrderStatsQuery{})

	require.ErrorIs(t, err, queries.ErrGetOrderStatsQueryIsNotConstructed)
}
