// Package redis stores orders in Redis. Each order is a JSON string; a hash
// keeps per-status counters that are updated in the same MULTI as the order.
//
// Writes use optimistic locking: the order key is WATCHed, the transition is
// evaluated client side and the EXEC fails if another client wrote the key
// in between, in which case the whole read-decide-write cycle is retried.
package redis

import (
	"context"
	"errors"
	"strconv"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// DefaultMaxRetries bounds how many times a write is retried after losing a
// WATCH race.
const DefaultMaxRetries = 100

// OrderStore implements ports.OrderStore on a Redis client.
type OrderStore struct {
	client     *redis.Client
	prefix     string
	policy     ports.CreatePolicy
	maxRetries int
}

var _ ports.OrderStore = (*OrderStore)(nil)

// NewOrderStore returns a store whose keys all start with prefix.
func NewOrderStore(client *redis.Client, prefix string, policy ports.CreatePolicy) *OrderStore {
	return &OrderStore{
		client:     client,
		prefix:     prefix,
		policy:     policy,
		maxRetries: DefaultMaxRetries,
	}
}

func (s *OrderStore) orderKey(id string) string {
	return s.prefix + "order:" + id
}

func (s *OrderStore) countersKey() string {
	return s.prefix + "orders:by_status"
}

// Create writes o as placed, in ASSIGNING at version 1. Under
// CreatePolicyOverwrite the previous order's counter moves to ASSIGNING.
func (s *OrderStore) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	o = o.Placed()
	data, err := encodeOrder(o)
	if err != nil {
		return nil, err
	}

	key := s.orderKey(o.ID())
	err = s.watch(ctx, o.ID(), func(tx *redis.Tx) error {
		previous, getErr := s.read(ctx, tx, o.ID())
		switch {
		case getErr == nil && s.policy == ports.CreatePolicyReject:
			return errs.NewObjectAlreadyExistsError("order", o.ID())
		case getErr != nil && !errors.Is(getErr, errs.ErrObjectNotFound):
			return getErr
		}

		_, pipeErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			if previous != nil {
				pipe.HIncrBy(ctx, s.countersKey(), previous.Status().String(), -1)
			}
			pipe.HIncrBy(ctx, s.countersKey(), o.Status().String(), 1)
			return nil
		})
		return pipeErr
	}, key)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// Get reads and decodes the order key.
func (s *OrderStore) Get(ctx context.Context, id string) (*order.Order, error) {
	return s.read(ctx, s.client, id)
}

// Transition applies op inside a WATCH/MULTI cycle.
func (s *OrderStore) Transition(ctx context.Context, id string, op order.Operation) (*order.Order, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}

	key := s.orderKey(id)
	var result *order.Order
	err := s.watch(ctx, id, func(tx *redis.Tx) error {
		o, getErr := s.read(ctx, tx, id)
		if getErr != nil {
			return getErr
		}

		from := o.Status()
		if applyErr := o.Apply(op); applyErr != nil {
			return applyErr
		}

		data, encErr := encodeOrder(o)
		if encErr != nil {
			return encErr
		}

		_, pipeErr := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.HIncrBy(ctx, s.countersKey(), from.String(), -1)
			pipe.HIncrBy(ctx, s.countersKey(), o.Status().String(), 1)
			return nil
		})
		if pipeErr != nil {
			return pipeErr
		}

		result = o
		return nil
	}, key)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CountByStatus reads the counters hash.
func (s *OrderStore) CountByStatus(ctx context.Context) (map[order.Status]int, error) {
	raw, err := s.client.HGetAll(ctx, s.countersKey()).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[order.Status]int, len(raw))
	for _, status := range order.Statuses() {
		v, ok := raw[status.String()]
		if !ok {
			continue
		}
		n, convErr := strconv.Atoi(v)
		if convErr != nil {
			return nil, convErr
		}
		if n > 0 {
			counts[status] = n
		}
	}
	return counts, nil
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// watch runs fn under WATCH keys and retries when EXEC is aborted.
func (s *OrderStore) watch(ctx context.Context, id string, fn func(*redis.Tx) error, keys ...string) error {
	for range s.maxRetries {
		err := s.client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return errs.NewVersionIsInvalidErrorWithCause("order "+id, redis.TxFailedErr)
}

func (s *OrderStore) read(ctx context.Context, c getter, id string) (*order.Order, error) {
	data, err := c.Get(ctx, s.orderKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, err
	}
	return decodeOrder(data)
}
