package postgres_test

import (
	"context"
	"testing"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/pgtest"
	"dispatch/internal/core/ports"
	"dispatch/internal/core/ports/portstest"

	"github.com/stretchr/testify/suite"
)

// OrderStoreIntegrationTestSuite runs the OrderStore contract against
// PostgreSQL, row locks included.
type OrderStoreIntegrationTestSuite struct {
	portstest.OrderStoreSuite
	database *pgtest.Database
}

func (s *OrderStoreIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	s.Require().NoError(err)
	s.database = database

	factory := postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
	s.NewStore = func(policy ports.CreatePolicy) ports.OrderStore {
		return postgres_adapter.NewOrderStore(factory, policy)
	}
}

func (s *OrderStoreIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.database.Truncate())
	s.OrderStoreSuite.SetupTest()
}

func (s *OrderStoreIntegrationTestSuite) TearDownSuite() {
	if s.database != nil {
		s.Require().NoError(s.database.Stop(context.Background()))
	}
}

func TestOrderStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(OrderStoreIntegrationTestSuite))
}
