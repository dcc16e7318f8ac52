package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderedAt = time.Date(2019, 9, 3, 13, 0, 0, 0, time.UTC)

func validStops() []commands.Stop {
	return []commands.Stop{
		{Lat: 22.344674, Lng: 114.124651},
		{Lat: 22.375384, Lng: 114.182446},
		{Lat: 22.385669, Lng: 114.186962},
	}
}

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	cmd, err := commands.NewPlaceOrderCommand(" 11 ", orderedAt, "130", "HKD", []int{2300, 1640}, validStops())

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "11", cmd.OrderID())
	assert.Equal(t, orderedAt, cmd.OrderedAt())
	assert.Equal(t, "130.00 HKD", cmd.Fare().String())
	assert.Equal(t, []int{2300, 1640}, cmd.Distances())
	require.Len(t, cmd.Stops(), 3)
	assert.InDelta(t, 22.375384, cmd.Stops()[1].Lat(), 1e-9)
}

func TestNewPlaceOrderCommand_ReportsEveryProblem(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand("", time.Time{}, "abc", "hkd",
		[]int{1}, []commands.Stop{{Lat: 91, Lng: 0}, {Lat: 0, Lng: 0}})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Contains(t, err.Error(), "orderAt")
	assert.Contains(t, err.Error(), "stop 0")
}

func TestNewPlaceOrderCommand_NegativeFare(t *testing.T) {
	_, err := commands.NewPlaceOrderCommand("11", orderedAt, "-1", "HKD", []int{2300, 1640}, validStops())

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestPlaceOrderCommand_Validate_WhenNotConstructed(t *testing.T) {
	err := commands.PlaceOrderCommand{}.Validate()

	require.ErrorIs(t, err, commands.ErrPlaceOrderCommandIsNotConstructed)
}

func TestTransitionCommands_RequireOrderID(t *testing.T) {
	_, err := commands.NewTakeOrderCommand("  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCompleteOrderCommand("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCancelOrderCommand("")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestTransitionCommands_TrimOrderID(t *testing.T) {
	take, err := commands.NewTakeOrderCommand(" 11 ")
	require.NoError(t, err)
	assert.Equal(t, "11", take.OrderID())
	require.NoError(t, take.Validate())

	complete, err := commands.NewCompleteOrderCommand("11")
	require.NoError(t, err)
	require.NoError(t, complete.Validate())

	cancel, err := commands.NewCancelOrderCommand("11")
	require.NoError(t, err)
	require.NoError(t, cancel.Validate())
}

func TestTransitionCommands_Validate_WhenNotConstructed(t *testing.T) {
	require.ErrorIs(t, commands.TakeOrderCommand{}.Validate(), commands.ErrTakeOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.CompleteOrderCommand{}.Validate(), commands.ErrCompleteOrderCommandIsNotConstructed)
	require.ErrorIs(t, commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed)
}
