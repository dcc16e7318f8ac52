package postgres

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// OrderStore implements ports.OrderStore on top of a UnitOfWorkFactory.
type OrderStore struct {
	uowFactory ports.UnitOfWorkFactory
	policy     ports.CreatePolicy
}

var _ ports.OrderStore = (*OrderStore)(nil)

// NewOrderStore returns a store that opens one unit of work per call.
func NewOrderStore(uowFactory ports.UnitOfWorkFactory, policy ports.CreatePolicy) *OrderStore {
	return &OrderStore{uowFactory: uowFactory, policy: policy}
}

// Create inserts o as placed, in ASSIGNING at version 1. Under
// CreatePolicyOverwrite an existing row is replaced by an upsert.
func (s *OrderStore) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	placed := o.Placed()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.OrderRepository()
	var err error
	if s.policy == ports.CreatePolicyReject {
		err = repo.Add(ctx, placed)
	} else {
		err = repo.Save(ctx, placed)
	}
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return placed, nil
}

// Get reads the committed row outside of any transaction.
func (s *OrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.uowFactory.Create().OrderRepository().Get(ctx, id)
}

// Transition locks the row, applies op and writes it back in one
// transaction. A failed precondition rolls back without writing.
func (s *OrderStore) Transition(ctx context.Context, id string, op order.Operation) (*order.Order, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	expectedVersion := o.Version()
	if err := o.Apply(op); err != nil {
		return nil, err
	}

	if err := repo.Update(ctx, o, expectedVersion); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// CountByStatus runs a single GROUP BY query.
func (s *OrderStore) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	return s.uowFactory.Create().OrderRepository().CountByStatus(ctx)
}
