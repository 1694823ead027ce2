package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/venuebooks/venuebooks-backend/internal/plans"
	"github.com/venuebooks/venuebooks-backend/pkg/metrics"
)

// AccrualJob advances every active recurring plan once per cycle.
type AccrualJob struct {
	plans   plans.Service
	metrics *metrics.JobMetrics
	now     func() time.Time
}

// NewAccrualJob builds the accrual job.
func NewAccrualJob(svc plans.Service, jobMetrics *metrics.JobMetrics) (*AccrualJob, error) {
	if svc == nil {
		return nil, fmt.Errorf("plans service required")
	}
	return &AccrualJob{plans: svc, metrics: jobMetrics, now: time.Now}, nil
}

// Name identifies the job in logs and metrics.
func (j *AccrualJob) Name() string { return "plan_accrual" }

// Run accrues all active plans up to the current time.
func (j *AccrualJob) Run(ctx context.Context) error {
	result, err := j.plans.Run(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("accruing plans: %w", err)
	}
	j.metrics.AddEntries(j.Name(), result.EntriesPosted)
	return nil
}
