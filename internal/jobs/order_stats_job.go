package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/observability"

	"github.com/robfig/cron/v3"
)

// DefaultOrderStatsSchedule runs the stats job every 15 seconds.
const DefaultOrderStatsSchedule = "*/15 * * * * *"

// OrderStatsJob periodically counts stored orders per status and exports
// the counts as the orders_by_status gauge.
type OrderStatsJob struct {
	handler  queries.GetOrderStatsQueryHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOrderStatsJob creates the job. schedule is a cron expression with a
// seconds field; an empty schedule falls back to DefaultOrderStatsSchedule.
func NewOrderStatsJob(handler queries.GetOrderStatsQueryHandler, schedule string, logger *slog.Logger) *OrderStatsJob {
	if schedule == "" {
		schedule = DefaultOrderStatsSchedule
	}
	return &OrderStatsJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "order_stats_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order stats job failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started", "schedule", j.schedule)
	return nil
}

// Run refreshes the gauge once.
func (j *OrderStatsJob) Run(ctx context.Context) error {
	stats, err := j.handler.Handle(ctx, queries.NewGetOrderStatsQuery())
	if err != nil {
		return err
	}

	for status, count := range stats.Counts {
		observability.OrdersByStatus.WithLabelValues(status.String()).Set(float64(count))
	}
	j.logger.DebugContext(ctx, "Order stats refreshed", "total", stats.Total)
	return nil
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *OrderStatsJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}
