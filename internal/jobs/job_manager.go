package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/queries"
)

// Job is a scheduled background task.
type Job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  Job
}

// NewJobManager creates a job manager with every job of the service.
func NewJobManager(
	orderStatsHandler queries.GetOrderStatsQueryHandler,
	orderStatsSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		jobs: []namedJob{
			{name: "order stats", job: NewOrderStatsJob(orderStatsHandler, orderStatsSchedule, logger)},
		},
	}
}

// StartAll starts all scheduled jobs. If one fails to start, the jobs
// already started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
