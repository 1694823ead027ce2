package snapshot

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/partners"
	"github.com/venuebooks/venuebooks-backend/pkg/db"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// RecordSource supplies closed session records for period aggregation.
type RecordSource interface {
	ListClosedRecords(ctx context.Context) ([]models.SessionRecord, error)
}

// CloseInput describes the period being closed.
type CloseInput struct {
	PeriodStart     string
	PeriodEnd       string
	ElectricityCost decimal.Decimal
	Notes           *string
}

// Service closes settlement periods and serves historical snapshots.
type Service interface {
	Close(ctx context.Context, input CloseInput) (*models.InventorySnapshot, error)
	Preview(ctx context.Context, input CloseInput) (*models.InventorySnapshot, error)
	Get(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error)
	List(ctx context.Context) ([]models.InventorySnapshot, error)
}

// ServiceParams wires a snapshot service.
type ServiceParams struct {
	Repo       Repository
	LedgerRepo ledger.Repository
	Records    RecordSource
	Roster     *partners.Roster
	Pricing    types.Pricing
	Tx         TxRunner
	Logger     *logger.Logger
}

type service struct {
	repo       Repository
	ledgerRepo ledger.Repository
	records    RecordSource
	roster     *partners.Roster
	pricing    types.Pricing
	tx         TxRunner
	logg       *logger.Logger
}

// NewService validates dependencies and returns a snapshot service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("snapshot repository required")
	}
	if params.LedgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if params.Records == nil {
		return nil, fmt.Errorf("record source required")
	}
	if params.Roster == nil {
		return nil, fmt.Errorf("partner roster required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:       params.Repo,
		ledgerRepo: params.LedgerRepo,
		records:    params.Records,
		roster:     params.Roster,
		pricing:    params.Pricing,
		tx:         params.Tx,
		logg:       params.Logger,
	}, nil
}

func (s *service) validate(ctx context.Context, input CloseInput) error {
	if _, err := types.ParseDateKey(input.PeriodStart); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period start")
	}
	if _, err := types.ParseDateKey(input.PeriodEnd); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid period end")
	}
	if input.PeriodEnd < input.PeriodStart {
		return pkgerrors.New(pkgerrors.CodeValidation, "period end precedes period start")
	}
	if input.ElectricityCost.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "electricity cost cannot be negative")
	}

	lock, err := s.ledgerRepo.LatestLock(ctx)
	if err != nil {
		return err
	}
	// A start inside the locked range is enough to reject: days up to
	// LockedUntil are already captured by an earlier snapshot, so a period
	// straddling the boundary would aggregate them twice.
	if lock != nil && input.PeriodStart <= lock.LockedUntil {
		return pkgerrors.New(pkgerrors.CodePeriodLocked,
			fmt.Sprintf("period starting %s overlaps a closed period (locked through %s)", input.PeriodStart, lock.LockedUntil))
	}
	return nil
}

func (s *service) build(ctx context.Context, input CloseInput) (*models.InventorySnapshot, error) {
	entries, err := s.ledgerRepo.ListByDateRange(ctx, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListClosedRecords(ctx)
	if err != nil {
		return nil, err
	}
	snap := Build(BuildInput{
		Entries:         entries,
		Records:         records,
		PeriodStart:     input.PeriodStart,
		PeriodEnd:       input.PeriodEnd,
		ElectricityCost: input.ElectricityCost,
		Pricing:         s.pricing,
		Roster:          s.roster,
	})
	snap.Notes = input.Notes
	return snap, nil
}

func (s *service) Preview(ctx context.Context, input CloseInput) (*models.InventorySnapshot, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	return s.build(ctx, input)
}

func (s *service) Close(ctx context.Context, input CloseInput) (*models.InventorySnapshot, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	snap, err := s.build(ctx, input)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, snap); err != nil {
			return err
		}
		lock := &models.PeriodLock{
			ID:          uuid.New(),
			LockedUntil: input.PeriodEnd,
			SnapshotID:  &snap.ID,
		}
		return s.ledgerRepo.WithTx(tx).CreateLock(ctx, lock)
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"snapshot_id":  snap.ID.String(),
		"period_start": snap.PeriodStart,
		"period_end":   snap.PeriodEnd,
		"net_profit":   snap.NetProfitPaid.String(),
	}), "settlement period closed")

	return snap, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	snap, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, db.NotFoundOr(err, "snapshot")
	}
	return snap, nil
}

func (s *service) List(ctx context.Context) ([]models.InventorySnapshot, error) {
	return s.repo.List(ctx)
}
