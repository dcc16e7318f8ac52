package ports

import (
	"context"

	"dispatch/internal/core/domain/model/order"
)

// OrderRepository is the row-level persistence contract used inside a
// UnitOfWork by transactional OrderStore implementations.
type OrderRepository interface {
	// Add inserts a new order. A duplicate id fails with
	// *errs.ObjectAlreadyExistsError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Save inserts or fully replaces an order.
	Save(ctx context.Context, aggregate *order.Order) error

	// Update writes a transitioned order if the stored version still equals
	// expectedVersion; otherwise it fails with *errs.VersionIsInvalidError.
	Update(ctx context.Context, aggregate *order.Order, expectedVersion int64) error

	// Get reads an order without locking it.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetForUpdate reads an order and locks it until the transaction ends.
	GetForUpdate(ctx context.Context, id string) (*order.Order, error)

	// CountByStatus aggregates orders per status.
	CountByStatus(ctx context.Context) (map[order.Status]int, error)
}

// UnitOfWorkFactory creates new UnitOfWork instances for each store call.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// OrderRepository returns an OrderRepository bound to the current transaction.
	OrderRepository() OrderRepository
}
