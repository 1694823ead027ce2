package loans

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/pkg/db"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// CreateLoanInput describes a new loan taken by the venue.
type CreateLoanInput struct {
	LenderType       enums.LenderType
	LenderID         *string
	LenderName       string
	Principal        decimal.Decimal
	Channel          enums.Channel
	ScheduleType     enums.ScheduleType
	InstallmentCount int
	StartAt          time.Time
	Notes            *string
}

// LoanView pairs a loan with its derived repayment stats.
type LoanView struct {
	Loan  *models.PlaceLoan `json:"loan"`
	Stats LoanStats         `json:"stats"`
}

// Service manages venue loans end to end: receipt, schedule, repayment.
type Service interface {
	CreateLoan(ctx context.Context, input CreateLoanInput) (*models.PlaceLoan, error)
	GetLoan(ctx context.Context, id uuid.UUID) (LoanView, error)
	ListLoans(ctx context.Context) ([]LoanView, error)
	PayInstallment(ctx context.Context, loanID, installmentID uuid.UUID) (LoanView, error)
}

// ServiceParams wires a loans service.
type ServiceParams struct {
	Repo   Repository
	Ledger ledger.Service
	Tx     TxRunner
	Logger *logger.Logger
}

type service struct {
	repo      Repository
	ledgerSvc ledger.Service
	tx        TxRunner
	logg      *logger.Logger
}

// NewService validates dependencies and returns a loans service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("loans repository required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:      params.Repo,
		ledgerSvc: params.Ledger,
		tx:        params.Tx,
		logg:      params.Logger,
	}, nil
}

func (s *service) CreateLoan(ctx context.Context, input CreateLoanInput) (*models.PlaceLoan, error) {
	if !input.LenderType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid lender type %q", input.LenderType))
	}
	if input.LenderName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lender name is required")
	}
	if !input.Principal.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "loan principal must be positive")
	}
	if input.Channel == "" {
		input.Channel = enums.ChannelCash
	}
	if !input.Channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid channel %q", input.Channel))
	}
	if !input.ScheduleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid schedule type %q", input.ScheduleType))
	}
	if input.InstallmentCount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "installment count must be positive")
	}
	if input.StartAt.IsZero() {
		input.StartAt = time.Now().UTC()
	}

	loan := &models.PlaceLoan{
		ID:           uuid.New(),
		LenderType:   input.LenderType,
		LenderID:     input.LenderID,
		LenderName:   input.LenderName,
		Principal:    input.Principal,
		Channel:      input.Channel,
		ScheduleType: input.ScheduleType,
		Status:       enums.LoanStatusActive,
		StartedAt:    input.StartAt,
		Notes:        input.Notes,
	}
	loan.Installments = GenerateInstallments(loan.ID, input.Principal, input.InstallmentCount, input.StartAt, input.ScheduleType)

	// The receipt enters the ledger first so the loan never exists without
	// its money.
	name := input.LenderName
	entry, err := s.ledgerSvc.Append(ctx, ledger.EntryInput{
		Type:            enums.TransactionTypeLoanReceipt,
		Amount:          input.Principal,
		Direction:       enums.DirectionIn,
		Channel:         input.Channel,
		Description:     fmt.Sprintf("loan received from %s", input.LenderName),
		PartnerID:       partnerRef(input),
		PerformedByName: &name,
		Timestamp:       input.StartAt,
		ReferenceID:     refID(loan.ID),
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, loan); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"loan_id":      loan.ID.String(),
		"entry_id":     entry.ID.String(),
		"principal":    input.Principal.String(),
		"installments": input.InstallmentCount,
	}), "loan registered")
	return loan, nil
}

func partnerRef(input CreateLoanInput) *string {
	if input.LenderType == enums.LenderTypePartner {
		return input.LenderID
	}
	return nil
}

func refID(id uuid.UUID) *uuid.UUID {
	ref := id
	return &ref
}

func (s *service) GetLoan(ctx context.Context, id uuid.UUID) (LoanView, error) {
	loan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return LoanView{}, db.NotFoundOr(err, "loan")
	}
	return LoanView{Loan: loan, Stats: Stats(loan)}, nil
}

func (s *service) ListLoans(ctx context.Context) ([]LoanView, error) {
	loans, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]LoanView, 0, len(loans))
	for i := range loans {
		views = append(views, LoanView{Loan: &loans[i], Stats: Stats(&loans[i])})
	}
	return views, nil
}

// PayInstallment repays the given installment. Installments must be paid in
// sequence; the repayment draws real money, so the ledger's balance and
// period-lock checks apply before anything is recorded.
func (s *service) PayInstallment(ctx context.Context, loanID, installmentID uuid.UUID) (LoanView, error) {
	loan, err := s.repo.GetByID(ctx, loanID)
	if err != nil {
		return LoanView{}, db.NotFoundOr(err, "loan")
	}
	if loan.Status == enums.LoanStatusClosed {
		return LoanView{}, pkgerrors.New(pkgerrors.CodeStateConflict, "loan is already closed")
	}

	var target *models.LoanInstallment
	for i := range loan.Installments {
		inst := &loan.Installments[i]
		if inst.ID == installmentID {
			target = inst
			continue
		}
		if target == nil && inst.Status == enums.InstallmentStatusPending {
			return LoanView{}, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("installment %d must be paid first", inst.Sequence))
		}
	}
	if target == nil {
		return LoanView{}, pkgerrors.New(pkgerrors.CodeNotFound, "installment not found")
	}
	if target.Status == enums.InstallmentStatusPaid {
		return LoanView{}, pkgerrors.New(pkgerrors.CodeStateConflict, "installment is already paid")
	}

	now := time.Now().UTC()
	entry, err := s.ledgerSvc.Append(ctx, ledger.EntryInput{
		Type:        enums.TransactionTypeLoanRepayment,
		Amount:      target.Amount,
		Direction:   enums.DirectionOut,
		Channel:     loan.Channel,
		Description: fmt.Sprintf("loan repayment to %s (installment %d)", loan.LenderName, target.Sequence),
		Timestamp:   now,
		ReferenceID: refID(loan.ID),
	})
	if err != nil {
		return LoanView{}, err
	}

	newStatus := StatusAfterPayment(loan, target.Amount)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		entryID := entry.ID
		if err := repo.CreatePayment(ctx, &models.LoanPayment{
			ID:      uuid.New(),
			LoanID:  loan.ID,
			Amount:  target.Amount,
			Channel: loan.Channel,
			EntryID: &entryID,
			PaidAt:  now,
		}); err != nil {
			return err
		}

		target.Status = enums.InstallmentStatusPaid
		target.PaidAt = &now
		if err := repo.UpdateInstallment(ctx, target); err != nil {
			return err
		}

		if newStatus != loan.Status {
			loan.Status = newStatus
			if newStatus == enums.LoanStatusClosed {
				loan.ClosedAt = &now
			}
			return repo.Update(ctx, loan)
		}
		return nil
	})
	if err != nil {
		return LoanView{}, err
	}

	loan.Payments = append(loan.Payments, models.LoanPayment{
		ID: uuid.New(), LoanID: loan.ID, Amount: target.Amount, Channel: loan.Channel, PaidAt: now,
	})

	if loan.Status == enums.LoanStatusClosed {
		s.logg.Info(s.logg.WithFields(ctx, map[string]any{"loan_id": loan.ID.String()}), "loan fully repaid")
	}
	return LoanView{Loan: loan, Stats: Stats(loan)}, nil
}
