package cron

import (
	"context"
	"fmt"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
)

// IntegrityJob sweeps the ledger for balance anomalies. It only reports;
// findings surface through the ledger service's own warning logs.
type IntegrityJob struct {
	ledger ledger.Service
}

// NewIntegrityJob builds the integrity sweep job.
func NewIntegrityJob(svc ledger.Service) (*IntegrityJob, error) {
	if svc == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	return &IntegrityJob{ledger: svc}, nil
}

// Name identifies the job in logs and metrics.
func (j *IntegrityJob) Name() string { return "ledger_integrity" }

// Run checks ledger invariants.
func (j *IntegrityJob) Run(ctx context.Context) error {
	if _, err := j.ledger.Integrity(ctx); err != nil {
		return fmt.Errorf("checking ledger integrity: %w", err)
	}
	return nil
}
