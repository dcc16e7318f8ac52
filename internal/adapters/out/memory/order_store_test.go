package memory

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/order/ordertest"
	"dispatch/internal/core/ports"
	"dispatch/internal/core/ports/portstest"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestOrderStore_Contract(t *testing.T) {
	suite.Run(t, &portstest.OrderStoreSuite{
		NewStore: func(policy ports.CreatePolicy) ports.OrderStore {
			return NewOrderStore(policy)
		},
	})
}

func TestOrderStore_Create_RejectsUnconstructedOrder(t *testing.T) {
	store := NewOrderStore(ports.CreatePolicyOverwrite)

	_, err := store.Create(t.Context(), &order.Order{})

	require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	counts, err := store.CountByStatus(t.Context())
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestOrderStore_Transition_RejectsUnknownOperation(t *testing.T) {
	store := NewOrderStore(ports.CreatePolicyOverwrite)
	_, err := store.Create(t.Context(), ordertest.NewOrder(t, "11"))
	require.NoError(t, err)

	_, err = store.Transition(t.Context(), "11", order.OperationUnknown)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	got, err := store.Get(t.Context(), "11")
	require.NoError(t, err)
	assert.Equal(t, order.Assigning, got.Status())
}

func TestOrderStore_Create_CallerKeepsOwnCopy(t *testing.T) {
	store := NewOrderStore(ports.CreatePolicyOverwrite)
	o := ordertest.NewOrder(t, "11")

	_, err := store.Create(t.Context(), o)
	require.NoError(t, err)
	require.NoError(t, o.Take())

	got, err := store.Get(t.Context(), "11")
	require.NoError(t, err)
	assert.Equal(t, order.Assigning, got.Status())
}
