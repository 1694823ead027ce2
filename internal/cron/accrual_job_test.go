package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/venuebooks/venuebooks-backend/internal/plans"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/metrics"
)

type fakePlansService struct {
	runFn func(ctx context.Context, asOf time.Time) (plans.RunResult, error)
}

func (f *fakePlansService) CreatePlan(ctx context.Context, input plans.CreatePlanInput) (*models.SavingPlan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlansService) ListPlans(ctx context.Context) ([]models.SavingPlan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlansService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.SavingPlan, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePlansService) Run(ctx context.Context, asOf time.Time) (plans.RunResult, error) {
	return f.runFn(ctx, asOf)
}

func TestAccrualJob_RunsPlans(t *testing.T) {
	var gotAsOf time.Time
	svc := &fakePlansService{
		runFn: func(ctx context.Context, asOf time.Time) (plans.RunResult, error) {
			gotAsOf = asOf
			return plans.RunResult{EntriesPosted: 2, PlansAdvanced: 2}, nil
		},
	}
	job, err := NewAccrualJob(svc, metrics.NewJobMetrics(nil))
	if err != nil {
		t.Fatalf("building job: %v", err)
	}
	fixed := time.Date(2026, 3, 13, 4, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !gotAsOf.Equal(fixed) {
		t.Fatalf("asOf: got %s, want %s", gotAsOf, fixed)
	}
}

func TestAccrualJob_PropagatesError(t *testing.T) {
	svc := &fakePlansService{
		runFn: func(ctx context.Context, asOf time.Time) (plans.RunResult, error) {
			return plans.RunResult{}, errors.New("db down")
		},
	}
	job, err := NewAccrualJob(svc, metrics.NewJobMetrics(nil))
	if err != nil {
		t.Fatalf("building job: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error to propagate")
	}
}
