// Package portstest holds contract tests every ports.OrderStore
// implementation must pass.
package portstest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/model/order/ordertest"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// Racers is the number of goroutines used by the concurrency checks.
const Racers = 32

// OrderStoreSuite runs the lifecycle contract against a store built by
// NewStore. Implementations embed it and reset their backend in SetupTest.
type OrderStoreSuite struct {
	suite.Suite

	// NewStore returns an empty store using policy.
	NewStore func(policy ports.CreatePolicy) ports.OrderStore

	store ports.OrderStore
}

func (s *OrderStoreSuite) SetupTest() {
	s.store = s.NewStore(ports.CreatePolicyOverwrite)
}

func (s *OrderStoreSuite) create(id string) *order.Order {
	created, err := s.store.Create(context.Background(), ordertest.NewOrder(s.T(), id))
	s.Require().NoError(err)
	return created
}

func (s *OrderStoreSuite) requireViolation(err error, reason string) {
	var violation *errs.PreconditionViolationError
	s.Require().ErrorAs(err, &violation)
	s.Equal(reason, violation.Reason)
}

func (s *OrderStoreSuite) TestCreateThenGet_ReturnsAssigning() {
	created := s.create("11")
	s.Equal(order.Assigning, created.Status())

	got, err := s.store.Get(context.Background(), "11")

	s.Require().NoError(err)
	s.Equal("11", got.ID())
	s.Equal(order.Assigning, got.Status())
	s.Equal(int64(1), got.Version())
	s.True(ordertest.OrderedAt.Equal(got.OrderedAt()))
	s.Equal("130.00", got.Fare().AmountString())
	s.Equal("HKD", got.Fare().Currency())
	s.Equal(ordertest.Distances(), got.Distances())
	s.Require().Len(got.Stops(), 3)
	s.InDelta(22.344674, got.Stops()[0].Lat(), 1e-9)
	s.InDelta(114.186962, got.Stops()[2].Lng(), 1e-9)
}

func (s *OrderStoreSuite) TestGet_UnknownID() {
	_, err := s.store.Get(context.Background(), "999")

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *OrderStoreSuite) TestTransition_UnknownID() {
	for _, op := range []order.Operation{order.Take, order.Complete, order.Cancel} {
		_, err := s.store.Transition(context.Background(), "999", op)
		s.Require().ErrorIs(err, errs.ErrObjectNotFound, op.String())
	}
}

func (s *OrderStoreSuite) TestTake_SucceedsOnce() {
	s.create("11")

	taken, err := s.store.Transition(context.Background(), "11", order.Take)
	s.Require().NoError(err)
	s.Equal(order.Ongoing, taken.Status())
	s.Equal(int64(2), taken.Version())

	_, err = s.store.Transition(context.Background(), "11", order.Take)
	s.requireViolation(err, order.ReasonNotAssigning)

	got, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Equal(order.Ongoing, got.Status())
	s.Equal(int64(2), got.Version())
}

func (s *OrderStoreSuite) TestComplete_SucceedsOnce() {
	s.create("11")

	_, err := s.store.Transition(context.Background(), "11", order.Complete)
	s.requireViolation(err, order.ReasonNotOngoing)

	_, err = s.store.Transition(context.Background(), "11", order.Take)
	s.Require().NoError(err)

	completed, err := s.store.Transition(context.Background(), "11", order.Complete)
	s.Require().NoError(err)
	s.Equal(order.Completed, completed.Status())

	_, err = s.store.Transition(context.Background(), "11", order.Complete)
	s.requireViolation(err, order.ReasonNotOngoing)
}

func (s *OrderStoreSuite) TestCancel_FromAssigningAndOngoing() {
	s.create("assigning")
	s.create("ongoing")
	_, err := s.store.Transition(context.Background(), "ongoing", order.Take)
	s.Require().NoError(err)

	for _, id := range []string{"assigning", "ongoing"} {
		cancelled, cancelErr := s.store.Transition(context.Background(), id, order.Cancel)
		s.Require().NoError(cancelErr, id)
		s.Equal(order.Cancelled, cancelled.Status(), id)
	}

	_, err = s.store.Transition(context.Background(), "assigning", order.Cancel)
	s.requireViolation(err, order.ReasonCancelledAlready)
}

func (s *OrderStoreSuite) TestCancel_CompletedIsRejected() {
	s.create("11")
	_, err := s.store.Transition(context.Background(), "11", order.Take)
	s.Require().NoError(err)
	_, err = s.store.Transition(context.Background(), "11", order.Complete)
	s.Require().NoError(err)

	_, err = s.store.Transition(context.Background(), "11", order.Cancel)

	s.requireViolation(err, order.ReasonCompletedAlready)
	got, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Equal(order.Completed, got.Status())
}

func (s *OrderStoreSuite) TestCreate_OverwriteResetsOrder() {
	s.create("11")
	_, err := s.store.Transition(context.Background(), "11", order.Take)
	s.Require().NoError(err)

	recreated := s.create("11")

	s.Equal(order.Assigning, recreated.Status())
	got, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Equal(order.Assigning, got.Status())
	s.Equal(int64(1), got.Version())
}

func (s *OrderStoreSuite) TestCreate_StoresAsAssigningAtVersionOne() {
	ctx := context.Background()

	created, err := s.store.Create(ctx, ordertest.RestoreOrder(s.T(), "11", order.Completed, 7))

	s.Require().NoError(err)
	s.Equal(order.Assigning, created.Status())
	s.Equal(int64(1), created.Version())
	got, err := s.store.Get(ctx, "11")
	s.Require().NoError(err)
	s.Equal(order.Assigning, got.Status())
	s.Equal(int64(1), got.Version())

	taken, err := s.store.Transition(ctx, "11", order.Take)
	s.Require().NoError(err)
	s.Equal(int64(2), taken.Version())
}

func (s *OrderStoreSuite) TestCreate_OverwriteWithTerminalOrderStaysAssigning() {
	ctx := context.Background()
	s.create("11")

	_, err := s.store.Create(ctx, ordertest.RestoreOrder(s.T(), "11", order.Cancelled, 3))

	s.Require().NoError(err)
	got, err := s.store.Get(ctx, "11")
	s.Require().NoError(err)
	s.Equal(order.Assigning, got.Status())
	s.Equal(int64(1), got.Version())

	counts, err := s.store.CountByStatus(ctx)
	s.Require().NoError(err)
	s.Equal(1, counts[order.Assigning])
	s.Zero(counts[order.Cancelled])
}

func (s *OrderStoreSuite) TestCreate_FareRoundTripsExactly() {
	ctx := context.Background()
	fare, err := kernel.MoneyFromString("999999999999.99", "HKD")
	s.Require().NoError(err)
	o, err := order.NewOrder("11", ordertest.OrderedAt, fare, ordertest.Distances(), ordertest.Stops(s.T()))
	s.Require().NoError(err)

	_, err = s.store.Create(ctx, o)
	s.Require().NoError(err)

	got, err := s.store.Get(ctx, "11")
	s.Require().NoError(err)
	s.True(fare.IsEqual(got.Fare()), "stored %s, read %s", fare, got.Fare())
	s.Equal("999999999999.99", got.Fare().AmountString())
}

func (s *OrderStoreSuite) TestCreate_RejectKeepsOrder() {
	s.store = s.NewStore(ports.CreatePolicyReject)
	s.create("11")
	_, err := s.store.Transition(context.Background(), "11", order.Take)
	s.Require().NoError(err)

	_, err = s.store.Create(context.Background(), ordertest.NewOrder(s.T(), "11"))

	s.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
	got, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Equal(order.Ongoing, got.Status())
}

func (s *OrderStoreSuite) TestReturnedOrdersAreCopies() {
	s.create("11")

	got, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Require().NoError(got.Take())

	again, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Equal(order.Assigning, again.Status())
}

func (s *OrderStoreSuite) TestCountByStatus() {
	s.create("a")
	s.create("b")
	s.create("c")
	_, err := s.store.Transition(context.Background(), "b", order.Take)
	s.Require().NoError(err)
	_, err = s.store.Transition(context.Background(), "c", order.Cancel)
	s.Require().NoError(err)

	counts, err := s.store.CountByStatus(context.Background())

	s.Require().NoError(err)
	s.Equal(1, counts[order.Assigning])
	s.Equal(1, counts[order.Ongoing])
	s.Equal(1, counts[order.Cancelled])
	s.Equal(0, counts[order.Completed])
}

// Exactly one of many concurrent takes on the same ASSIGNING order wins.
func (s *OrderStoreSuite) TestConcurrentTake_ExactlyOneWins() {
	s.create("11")

	var (
		wins       atomic.Int32
		violations atomic.Int32
		unexpected atomic.Int32
		start      = make(chan struct{})
		wg         sync.WaitGroup
	)

	for range Racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.store.Transition(context.Background(), "11", order.Take)
			switch {
			case err == nil:
				wins.Add(1)
			case isViolation(err, order.ReasonNotAssigning):
				violations.Add(1)
			default:
				unexpected.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(Racers-1), violations.Load())
	s.Equal(int32(0), unexpected.Load())

	got, err := s.store.Get(context.Background(), "11")
	s.Require().NoError(err)
	s.Equal(order.Ongoing, got.Status())
	s.Equal(int64(2), got.Version())
}

// Readers racing with a take only ever observe ASSIGNING or ONGOING.
func (s *OrderStoreSuite) TestConcurrentReads_SeeConsistentSnapshots() {
	s.create("11")

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		bad   atomic.Int32
	)

	for range Racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			for range 20 {
				got, err := s.store.Get(context.Background(), "11")
				if err != nil {
					bad.Add(1)
					continue
				}
				status, version := got.Status(), got.Version()
				valid := (status == order.Assigning && version == 1) || (status == order.Ongoing && version == 2)
				if !valid || len(got.Stops()) != 3 {
					bad.Add(1)
				}
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-start
		_, _ = s.store.Transition(context.Background(), "11", order.Take)
	}()

	close(start)
	wg.Wait()

	s.Equal(int32(0), bad.Load())
}

// Transitions on different ids do not interfere.
func (s *OrderStoreSuite) TestConcurrentTransitions_DifferentIDs() {
	ids := make([]string, 0, Racers)
	for i := range Racers {
		id := fmt.Sprintf("order-%d", i)
		s.create(id)
		ids = append(ids, id)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(ids)*2)
	for _, id := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.store.Transition(context.Background(), id, order.Take); err != nil {
				errCh <- err
				return
			}
			if _, err := s.store.Transition(context.Background(), id, order.Complete); err != nil {
				errCh <- err
			}
		}()
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		s.Fail("unexpected transition error", err.Error())
	}

	counts, err := s.store.CountByStatus(context.Background())
	s.Require().NoError(err)
	s.Equal(Racers, counts[order.Completed])
}

func isViolation(err error, reason string) bool {
	var violation *errs.PreconditionViolationError
	return errors.As(err, &violation) && violation.Reason == reason
}
