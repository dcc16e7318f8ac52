// Package ordertest builds valid orders for tests of the packages that store,
// publish or serve them.
package ordertest

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// OrderedAt is the placement time used by every fixture.
var OrderedAt = time.Date(2019, 9, 3, 13, 0, 0, 0, time.UTC)

// Fare returns 130.00 HKD.
func Fare(t testing.TB) kernel.Money {
	t.Helper()
	fare, err := kernel.MoneyFromString("130.00", "HKD")
	require.NoError(t, err)
	return fare
}

// Stops returns a three-stop route in Hong Kong.
func Stops(t testing.TB) []kernel.Location {
	t.Helper()
	coords := [][2]float64{
		{22.344674, 114.124651},
		{22.375384, 114.182446},
		{22.385669, 114.186962},
	}
	stops := make([]kernel.Location, 0, len(coords))
	for _, c := range coords {
		loc, err := kernel.NewLocation(c[0], c[1])
		require.NoError(t, err)
		stops = append(stops, loc)
	}
	return stops
}

// Distances matches Stops.
func Distances() []int {
	return []int{2300, 1640}
}

// NewOrder returns a fresh ASSIGNING order with the given id.
func NewOrder(t testing.TB, id string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, OrderedAt, Fare(t), Distances(), Stops(t))
	require.NoError(t, err)
	return o
}

// RestoreOrder returns an order with the given id in status at version.
func RestoreOrder(t testing.TB, id string, status order.Status, version int64) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(id, OrderedAt, Fare(t), Distances(), Stops(t), status, version)
	require.NoError(t, err)
	return o
}
