package settlement

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

// Service nets payment events against customer balances and owns customer
// records.
type Service interface {
	CreateCustomer(ctx context.Context, name string, phone *string) (*models.Customer, error)
	GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	Settle(ctx context.Context, customerID uuid.UUID, totalDue, paidAmount decimal.Decimal) (Resolution, error)
	SettleTx(ctx context.Context, tx *gorm.DB, customer *models.Customer, totalDue, paidAmount decimal.Decimal) (Resolution, error)
}

// ServiceParams wires a settlement service.
type ServiceParams struct {
	Repo   Repository
	Logger *logger.Logger
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService validates dependencies and returns a settlement service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("settlement repository required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: params.Repo, logg: params.Logger}, nil
}

func (s *service) CreateCustomer(ctx context.Context, name string, phone *string) (*models.Customer, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	customer := &models.Customer{
		ID:            uuid.New(),
		Name:          name,
		Phone:         phone,
		CreditBalance: decimal.Zero,
		DebtBalance:   decimal.Zero,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *service) GetCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.repo.List(ctx)
}

func validateSettleInputs(totalDue, paidAmount decimal.Decimal) error {
	if totalDue.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "total due must be non-negative")
	}
	if paidAmount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "paid amount must be non-negative")
	}
	return nil
}

func (s *service) Settle(ctx context.Context, customerID uuid.UUID, totalDue, paidAmount decimal.Decimal) (Resolution, error) {
	if err := validateSettleInputs(totalDue, paidAmount); err != nil {
		return Resolution{}, err
	}
	customer, err := s.repo.GetByID(ctx, customerID)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolve(totalDue, paidAmount, customer.CreditBalance, customer.DebtBalance)
	if err := s.repo.UpdateBalances(ctx, customer.ID, res.FinalCredit, res.FinalDebt); err != nil {
		return Resolution{}, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"customer_id":  customer.ID.String(),
		"final_credit": res.FinalCredit.StringFixed(2),
		"final_debt":   res.FinalDebt.StringFixed(2),
	}), "customer settlement applied")
	return res, nil
}

// SettleTx runs the settlement inside an existing transaction so callers can
// atomically pair the balance update with their own writes.
func (s *service) SettleTx(ctx context.Context, tx *gorm.DB, customer *models.Customer, totalDue, paidAmount decimal.Decimal) (Resolution, error) {
	if err := validateSettleInputs(totalDue, paidAmount); err != nil {
		return Resolution{}, err
	}
	res := Resolve(totalDue, paidAmount, customer.CreditBalance, customer.DebtBalance)
	if err := s.repo.WithTx(tx).UpdateBalances(ctx, customer.ID, res.FinalCredit, res.FinalDebt); err != nil {
		return Resolution{}, err
	}
	return res, nil
}
