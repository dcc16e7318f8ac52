// Package memory keeps orders in process memory. It is the default store and
// the reference implementation of ports.OrderStore's atomicity contract.
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// slot holds one order id. mu serializes every write to that id; current is
// swapped wholesale so readers never need mu and never see a partial order.
// Snapshots stored in current are never mutated after being published.
type slot struct {
	mu      sync.Mutex
	current atomic.Pointer[order.Order]
}

// OrderStore is a concurrency-safe ports.OrderStore backed by a map.
//
// The map lock is held only to find or insert a slot; the per-slot mutex is
// what orders transitions, so callers on different ids never wait on each
// other beyond a map lookup. Slots are never removed since orders are never
// deleted.
type OrderStore struct {
	mu     sync.RWMutex
	slots  map[string]*slot
	policy ports.CreatePolicy
}

var _ ports.OrderStore = (*OrderStore)(nil)

// NewOrderStore returns an empty store using policy for duplicate ids.
func NewOrderStore(policy ports.CreatePolicy) *OrderStore {
	return &OrderStore{
		slots:  make(map[string]*slot),
		policy: policy,
	}
}

// Create stores o as placed, in ASSIGNING at version 1. Under
// CreatePolicyOverwrite an existing order with the same id is replaced;
// under CreatePolicyReject it is kept and
// *errs.ObjectAlreadyExistsError is returned.
func (s *OrderStore) Create(_ context.Context, o *order.Order) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	placed := o.Placed()
	sl := s.slotFor(placed.ID())

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.current.Load() != nil && s.policy == ports.CreatePolicyReject {
		return nil, errs.NewObjectAlreadyExistsError("order", placed.ID())
	}

	sl.current.Store(placed)
	return placed.Clone(), nil
}

// Get returns a copy of the latest committed snapshot.
func (s *OrderStore) Get(_ context.Context, id string) (*order.Order, error) {
	sl := s.lookup(id)
	if sl == nil {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	snapshot := sl.current.Load()
	if snapshot == nil {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	return snapshot.Clone(), nil
}

// Transition applies op under the slot's mutex. The new state is built on a
// copy and published only when the transition table accepts it.
func (s *OrderStore) Transition(_ context.Context, id string, op order.Operation) (*order.Order, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	sl := s.lookup(id)
	if sl == nil {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	current := sl.current.Load()
	if current == nil {
		return nil, errs.NewObjectNotFoundError("order", id)
	}

	next := current.Clone()
	if err := next.Apply(op); err != nil {
		return nil, err
	}

	sl.current.Store(next)
	return next.Clone(), nil
}

// CountByStatus walks all snapshots. Counts of different ids are not taken at
// a single instant, which is fine for monitoring.
func (s *OrderStore) CountByStatus(_ context.Context) (map[order.Status]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[order.Status]int)
	for _, sl := range s.slots {
		if snapshot := sl.current.Load(); snapshot != nil {
			counts[snapshot.Status()]++
		}
	}
	return counts, nil
}

func (s *OrderStore) lookup(id string) *slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slots[id]
}

func (s *OrderStore) slotFor(id string) *slot {
	if sl := s.lookup(id); sl != nil {
		return sl
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another writer may have inserted it between the two locks.
	if sl, ok := s.slots[id]; ok {
		return sl
	}
	sl := &slot{}
	s.slots[id] = sl
	return sl
}
