package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	httpadapter "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/kafka"
	"dispatch/internal/adapters/out/memory"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	redisstore "dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"github.com/redis/go-redis/v9"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CompositionRoot owns the long-lived dependencies of the service and
// builds handlers on top of them.
type CompositionRoot struct {
	cfg       Config
	logger    *slog.Logger
	store     ports.OrderStore
	publisher ports.OrderEventPublisher
	closers   []func() error
}

// NewCompositionRoot connects the configured backends. Connections opened
// before a failure are closed again.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (_ *CompositionRoot, err error) {
	c := &CompositionRoot{cfg: cfg, logger: logger}
	defer func() {
		if err != nil {
			_ = c.Close()
		}
	}()

	if c.store, err = c.openStore(ctx); err != nil {
		return nil, err
	}

	if brokers := cfg.KafkaBrokers(); len(brokers) > 0 {
		publisher := kafka.NewOrderEventPublisher(brokers, cfg.KafkaOrderChangedTopic)
		c.publisher = publisher
		c.closers = append(c.closers, publisher.Close)
		logger.InfoContext(ctx, "Publishing order events", "brokers", brokers, "topic", cfg.KafkaOrderChangedTopic)
	} else {
		c.publisher = kafka.NopOrderEventPublisher{}
		logger.InfoContext(ctx, "KAFKA_HOST is empty, order events are not published")
	}

	return c, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) (ports.OrderStore, error) {
	policy := c.cfg.OrderCreatePolicy

	switch c.cfg.OrderStore {
	case StoreMemory:
		c.logger.InfoContext(ctx, "Using in-memory order store", "create_policy", policy.String())
		return memory.NewOrderStore(policy), nil

	case StorePostgres:
		db, err := gorm.Open(gorm_postgres.Open(c.cfg.PostgresDSN()), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, sqlDB.Close)
		if err := sqlDB.PingContext(ctx); err != nil {
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		if err := db.WithContext(ctx).AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
			return nil, fmt.Errorf("migrate orders table: %w", err)
		}
		c.logger.InfoContext(ctx, "Using postgres order store", "host", c.cfg.DBHost, "create_policy", policy.String())
		return postgres.NewOrderStore(postgres.NewGormUnitOfWorkFactory(db), policy), nil

	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		c.closers = append(c.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		c.logger.InfoContext(ctx, "Using redis order store", "addr", c.cfg.RedisAddr, "create_policy", policy.String())
		return redisstore.NewOrderStore(client, c.cfg.RedisKeyPrefix, policy), nil

	default:
		return nil, fmt.Errorf("unknown order store %q", c.cfg.OrderStore)
	}
}

// Close releases the backend connections in reverse order of opening.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.store, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateTakeOrderCommandHandler() commands.TakeOrderCommandHandler {
	return commands.NewTakeOrderCommandHandler(c.store, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.store, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.store, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.store)
}

func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateTakeOrderCommandHandler(),
		c.CreateCompleteOrderCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderStatsQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateGetOrderStatsQueryHandler(), c.cfg.StatsJobSchedule, c.logger)
}
