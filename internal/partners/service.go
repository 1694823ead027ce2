package partners

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// SnapshotSource supplies closed period snapshots to the projector.
type SnapshotSource interface {
	ListSnapshots(ctx context.Context) ([]models.InventorySnapshot, error)
}

// PlanSource supplies recurring plans to the expense overview.
type PlanSource interface {
	List(ctx context.Context) ([]models.SavingPlan, error)
}

// FeedEntry is a ledger entry annotated with who performed it.
type FeedEntry struct {
	models.LedgerEntry
	Actor string `json:"actor"`
}

// DebtSummary aggregates one partner's outstanding debt.
type DebtSummary struct {
	TotalDebt decimal.Decimal   `json:"total_debt"`
	PlaceDebt decimal.Decimal   `json:"place_debt"`
	Items     []models.DebtItem `json:"items"`
}

// RecordPurchaseInput registers goods bought for the venue.
type RecordPurchaseInput struct {
	Description   string
	Amount        decimal.Decimal
	FundingSource enums.FundingSource
	BuyerID       *string
	PaymentMethod enums.Channel
	Date          time.Time
}

// RecordWithdrawalInput registers a partner drawing money from the till.
type RecordWithdrawalInput struct {
	PartnerID string
	Amount    decimal.Decimal
	Channel   enums.Channel
	Note      *string
	Date      time.Time
}

// Service exposes the partner roster, projections, and partner money events.
type Service interface {
	List(ctx context.Context) []Partner
	Ledger(ctx context.Context, partnerID string) ([]LedgerItem, error)
	DebtSummaryFor(ctx context.Context, partnerID string) (DebtSummary, error)
	RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*models.Purchase, error)
	RecordWithdrawal(ctx context.Context, input RecordWithdrawalInput) (*models.DebtItem, error)
	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	ActivityFeed(ctx context.Context, start, end string) ([]FeedEntry, error)
	ExpenseOverviewFor(ctx context.Context, monthKey string) (ledger.ExpenseOverview, error)
}

// ServiceParams wires a partners service.
type ServiceParams struct {
	Roster    *Roster
	Repo      Repository
	Ledger    ledger.Service
	Snapshots SnapshotSource
	Plans     PlanSource
	Logger    *logger.Logger
}

type service struct {
	roster    *Roster
	repo      Repository
	ledgerSvc ledger.Service
	snapshots SnapshotSource
	plans     PlanSource
	logg      *logger.Logger
}

// NewService validates dependencies and returns a partners service.
func NewService(params ServiceParams) (Service, error) {
	if params.Roster == nil {
		return nil, fmt.Errorf("partner roster required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("partners repository required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service required")
	}
	if params.Snapshots == nil {
		return nil, fmt.Errorf("snapshot source required")
	}
	if params.Plans == nil {
		return nil, fmt.Errorf("plan source required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		roster:    params.Roster,
		repo:      params.Repo,
		ledgerSvc: params.Ledger,
		snapshots: params.Snapshots,
		plans:     params.Plans,
		logg:      params.Logger,
	}, nil
}

func (s *service) List(ctx context.Context) []Partner {
	return s.roster.All()
}

func (s *service) requirePartner(partnerID string) (Partner, error) {
	partner, ok := s.roster.Find(partnerID)
	if !ok {
		return Partner{}, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("unknown partner %q", partnerID))
	}
	return partner, nil
}

func (s *service) Ledger(ctx context.Context, partnerID string) ([]LedgerItem, error) {
	if _, err := s.requirePartner(partnerID); err != nil {
		return nil, err
	}
	snapshots, err := s.snapshots.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	purchases, err := s.repo.ListPurchases(ctx)
	if err != nil {
		return nil, err
	}
	debts, err := s.repo.ListDebtsByPartner(ctx, partnerID)
	if err != nil {
		return nil, err
	}
	return Project(partnerID, snapshots, purchases, debts), nil
}

func (s *service) DebtSummaryFor(ctx context.Context, partnerID string) (DebtSummary, error) {
	if _, err := s.requirePartner(partnerID); err != nil {
		return DebtSummary{}, err
	}
	items, err := s.repo.ListDebtsByPartner(ctx, partnerID)
	if err != nil {
		return DebtSummary{}, err
	}
	summary := DebtSummary{Items: items, TotalDebt: decimal.Zero, PlaceDebt: decimal.Zero}
	for _, d := range items {
		summary.TotalDebt = summary.TotalDebt.Add(d.Amount)
		if d.Source == enums.DebtSourcePlace {
			summary.PlaceDebt = summary.PlaceDebt.Add(d.Amount)
		}
	}
	return summary, nil
}

func (s *service) RecordPurchase(ctx context.Context, input RecordPurchaseInput) (*models.Purchase, error) {
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase description is required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "purchase amount must be positive")
	}
	if !input.FundingSource.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid funding source %q", input.FundingSource))
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = enums.ChannelCash
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}

	var buyer *Partner
	if input.FundingSource == enums.FundingSourcePartner {
		if input.BuyerID == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "partner-funded purchase requires a buyer")
		}
		p, err := s.requirePartner(*input.BuyerID)
		if err != nil {
			return nil, err
		}
		buyer = &p
	}

	dateKey := types.DateKey(input.Date)
	purchase := &models.Purchase{
		ID:            uuid.New(),
		Description:   input.Description,
		Amount:        input.Amount,
		FundingSource: input.FundingSource,
		BuyerID:       input.BuyerID,
		PaymentMethod: input.PaymentMethod,
		DateKey:       dateKey,
	}

	// A place-funded purchase spends till money. A partner-funded one is a
	// deposit and an expense in the same breath: the goods marker keeps the
	// deposit out of the cash balance.
	var inputs []ledger.EntryInput
	if input.FundingSource == enums.FundingSourcePartner {
		inputs = append(inputs, ledger.EntryInput{
			Type:        enums.TransactionTypePartnerDeposit,
			Amount:      input.Amount,
			Direction:   enums.DirectionIn,
			Channel:     input.PaymentMethod,
			Description: fmt.Sprintf("goods purchase funded by partner: %s", input.Description),
			PartnerID:   input.BuyerID,
			Timestamp:   input.Date,
			DateKey:     dateKey,
		})
		if buyer != nil {
			name := buyer.Name
			inputs[0].PerformedByName = &name
		}
	}
	inputs = append(inputs, ledger.EntryInput{
		Type:        enums.TransactionTypeExpensePurchase,
		Amount:      input.Amount,
		Direction:   enums.DirectionOut,
		Channel:     input.PaymentMethod,
		Description: fmt.Sprintf("purchase: %s", input.Description),
		PartnerID:   input.BuyerID,
		Timestamp:   input.Date,
		DateKey:     dateKey,
	})

	created, err := s.ledgerSvc.AppendBatch(ctx, inputs)
	if err != nil {
		return nil, err
	}
	entryID := created[len(created)-1].ID
	purchase.EntryID = &entryID

	if err := s.repo.CreatePurchase(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *service) RecordWithdrawal(ctx context.Context, input RecordWithdrawalInput) (*models.DebtItem, error) {
	partner, err := s.requirePartner(input.PartnerID)
	if err != nil {
		return nil, err
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "withdrawal amount must be positive")
	}
	if input.Channel == "" {
		input.Channel = enums.ChannelCash
	}
	if input.Date.IsZero() {
		input.Date = time.Now().UTC()
	}
	dateKey := types.DateKey(input.Date)

	name := partner.Name
	entry, err := s.ledgerSvc.Append(ctx, ledger.EntryInput{
		Type:            enums.TransactionTypePartnerWithdrawal,
		Amount:          input.Amount,
		Direction:       enums.DirectionOut,
		Channel:         input.Channel,
		Description:     fmt.Sprintf("partner withdrawal: %s", partner.Name),
		PartnerID:       &input.PartnerID,
		PerformedByName: &name,
		Timestamp:       input.Date,
		DateKey:         dateKey,
	})
	if err != nil {
		return nil, err
	}

	debt := &models.DebtItem{
		ID:         uuid.New(),
		PartnerID:  input.PartnerID,
		Source:     enums.DebtSourcePlace,
		Channel:    input.Channel,
		Amount:     input.Amount,
		PaidAmount: decimal.Zero,
		DateKey:    dateKey,
		Notes:      input.Note,
	}
	entryID := entry.ID
	debt.EntryID = &entryID
	if err := s.repo.CreateDebt(ctx, debt); err != nil {
		return nil, err
	}
	return debt, nil
}

func (s *service) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	return s.repo.ListPurchases(ctx)
}

func (s *service) ActivityFeed(ctx context.Context, start, end string) ([]FeedEntry, error) {
	entries, err := s.ledgerSvc.ListEntries(ctx, start, end)
	if err != nil {
		return nil, err
	}
	feed := make([]FeedEntry, 0, len(entries))
	for _, entry := range entries {
		feed = append(feed, FeedEntry{LedgerEntry: entry, Actor: s.roster.ActorName(entry)})
	}
	return feed, nil
}

func (s *service) ExpenseOverviewFor(ctx context.Context, monthKey string) (ledger.ExpenseOverview, error) {
	purchases, err := s.repo.ListPurchases(ctx)
	if err != nil {
		return ledger.ExpenseOverview{}, err
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return ledger.ExpenseOverview{}, err
	}
	overview, err := ledger.ExpenseStats(purchases, plans, monthKey)
	if err != nil {
		return ledger.ExpenseOverview{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid month key")
	}
	return overview, nil
}
