package plans

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreatePlanInput describes a new recurring accrual.
type CreatePlanInput struct {
	Name          string
	Type          enums.PlanType
	Category      enums.PlanCategory
	Amount        decimal.Decimal
	Channel       enums.Channel
	BankAccountID *uuid.UUID
	StartAt       time.Time
	Notes         *string
}

// RunResult summarizes one accrual run.
type RunResult struct {
	EntriesPosted int
	PlansAdvanced int
}

// Service manages recurring plans and runs their accruals.
type Service interface {
	CreatePlan(ctx context.Context, input CreatePlanInput) (*models.SavingPlan, error)
	ListPlans(ctx context.Context) ([]models.SavingPlan, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.SavingPlan, error)
	Run(ctx context.Context, asOf time.Time) (RunResult, error)
}

// ServiceParams wires a plans service.
type ServiceParams struct {
	Repo       Repository
	LedgerRepo ledger.Repository
	Tx         TxRunner
	Logger     *logger.Logger
}

type service struct {
	repo       Repository
	ledgerRepo ledger.Repository
	tx         TxRunner
	logg       *logger.Logger
}

// NewService validates dependencies and returns a plans service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("plans repository required")
	}
	if params.LedgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
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
		tx:         params.Tx,
		logg:       params.Logger,
	}, nil
}

func (s *service) CreatePlan(ctx context.Context, input CreatePlanInput) (*models.SavingPlan, error) {
	if input.Name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan name is required")
	}
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid plan type %q", input.Type))
	}
	if input.Category == "" {
		input.Category = enums.PlanCategorySaving
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid plan category %q", input.Category))
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "plan amount must be positive")
	}
	if input.Channel == "" {
		input.Channel = enums.ChannelCash
	}
	if !input.Channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid channel %q", input.Channel))
	}
	if input.BankAccountID != nil && input.Channel != enums.ChannelBank {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bank account requires the bank channel")
	}
	if input.StartAt.IsZero() {
		input.StartAt = time.Now().UTC()
	}

	plan := &models.SavingPlan{
		ID:            uuid.New(),
		Name:          input.Name,
		Type:          input.Type,
		Category:      input.Category,
		Amount:        input.Amount,
		Channel:       input.Channel,
		BankAccountID: input.BankAccountID,
		IsActive:      true,
		StartedAt:     input.StartAt,
		LastAppliedAt: input.StartAt,
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *service) ListPlans(ctx context.Context) ([]models.SavingPlan, error) {
	return s.repo.List(ctx)
}

func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.SavingPlan, error) {
	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if plan.IsActive == active {
		return plan, nil
	}
	plan.IsActive = active
	// reactivating resets the cursor so the dormant stretch is not billed
	if active {
		plan.LastAppliedAt = time.Now().UTC()
	}
	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Run accrues every active plan up to asOf. Entries and cursor updates commit
// together so a crash cannot double-post an accrual.
func (s *service) Run(ctx context.Context, asOf time.Time) (RunResult, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return RunResult{}, err
	}

	accrued := Accrue(active, asOf)
	if len(accrued.Entries) == 0 {
		return RunResult{}, nil
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledgerRepo.WithTx(tx).CreateBatch(ctx, accrued.Entries); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		for i := range accrued.Plans {
			if err := repo.Update(ctx, &accrued.Plans[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return RunResult{}, err
	}

	result := RunResult{EntriesPosted: len(accrued.Entries), PlansAdvanced: len(accrued.Plans)}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"entries": result.EntriesPosted,
		"plans":   result.PlansAdvanced,
	}), "plan accruals posted")
	return result, nil
}
