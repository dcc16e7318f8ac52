package redis_test

import (
	"context"
	"testing"

	redis_adapter "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/ports"
	"dispatch/internal/core/ports/portstest"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// OrderStoreIntegrationTestSuite runs the OrderStore contract against a
// Redis container.
type OrderStoreIntegrationTestSuite struct {
	portstest.OrderStoreSuite
	container *tcredis.RedisContainer
	client    *redis.Client
}

func (s *OrderStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	uri, err := container.ConnectionString(ctx)
	s.Require().NoError(err)
	opts, err := redis.ParseURL(uri)
	s.Require().NoError(err)
	opts.PoolSize = portstest.Racers * 2
	s.client = redis.NewClient(opts)
	s.Require().NoError(s.client.Ping(ctx).Err())

	s.NewStore = func(policy ports.CreatePolicy) ports.OrderStore {
		return redis_adapter.NewOrderStore(s.client, "test:", policy)
	}
}

func (s *OrderStoreIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
	s.OrderStoreSuite.SetupTest()
}

func (s *OrderStoreIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *OrderStoreIntegrationTestSuite) TestGet_CorruptedRecord_ReturnsError() {
	ctx := context.Background()
	s.Require().NoError(s.client.Set(ctx, "test:order:11", `{"id":"11","status":"LOST"}`, 0).Err())

	_, err := s.NewStore(ports.CreatePolicyOverwrite).Get(ctx, "11")

	s.Require().Error(err)
	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
}

func (s *OrderStoreIntegrationTestSuite) TestKeysUsePrefix() {
	ctx := context.Background()
	store := s.NewStore(ports.CreatePolicyOverwrite)
	_, err := store.Get(ctx, "11")
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)

	s.Require().NoError(s.client.Set(ctx, "order:11", "garbage", 0).Err())

	_, err = store.Get(ctx, "11")
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestOrderStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderStoreIntegrationTestSuite))
}
