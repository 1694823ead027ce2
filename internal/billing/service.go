package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/settlement"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// TxRunner executes a function inside one database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// OpenSessionInput starts a new billable session.
type OpenSessionInput struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	InitialDevice enums.DeviceType
	StartedAt     time.Time
}

// CloseSessionInput finalizes a session into an invoice and a settlement.
type CloseSessionInput struct {
	SessionID      uuid.UUID
	EndedAt        time.Time
	PaidAmount     decimal.Decimal
	PaymentChannel enums.Channel
	AccountID      *uuid.UUID
	Orders         types.OrderItems
	Discount       *types.Discount
	Notes          *string
}

// CloseSessionResult is everything a close produced.
type CloseSessionResult struct {
	Record     *models.SessionRecord
	Invoice    Invoice
	Resolution settlement.Resolution
	Entries    []*models.LedgerEntry
}

// Service owns the session lifecycle from open to invoiced close.
type Service interface {
	OpenSession(ctx context.Context, input OpenSessionInput) (*models.SessionRecord, error)
	SwitchDevice(ctx context.Context, sessionID uuid.UUID, to enums.DeviceType, at time.Time) (*models.SessionRecord, error)
	AddOrder(ctx context.Context, sessionID uuid.UUID, item types.OrderItem) (*models.SessionRecord, error)
	CloseSession(ctx context.Context, input CloseSessionInput) (*CloseSessionResult, error)
	GetSession(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error)
	ListOpenSessions(ctx context.Context) ([]models.SessionRecord, error)
	ListClosedRecords(ctx context.Context) ([]models.SessionRecord, error)
}

// ServiceParams wires a billing service.
type ServiceParams struct {
	Repo       Repository
	LedgerRepo ledger.Repository
	Settlement settlement.Service
	Tx         TxRunner
	Pricing    types.Pricing
	Logger     *logger.Logger
}

type service struct {
	repo       Repository
	ledgerRepo ledger.Repository
	settle     settlement.Service
	tx         TxRunner
	pricing    types.Pricing
	logg       *logger.Logger
}

// NewService validates dependencies and returns a billing service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("billing repository required")
	}
	if params.LedgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if params.Settlement == nil {
		return nil, fmt.Errorf("settlement service required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:       params.Repo,
		ledgerRepo: params.LedgerRepo,
		settle:     params.Settlement,
		tx:         params.Tx,
		pricing:    params.Pricing,
		logg:       params.Logger,
	}, nil
}

func (s *service) OpenSession(ctx context.Context, input OpenSessionInput) (*models.SessionRecord, error) {
	device := input.InitialDevice
	if device == "" {
		device = enums.DeviceTypeLaptop
	}
	if !device.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid device type %q", device))
	}
	started := input.StartedAt
	if started.IsZero() {
		started = time.Now().UTC()
	}

	record := &models.SessionRecord{
		ID:              uuid.New(),
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		StartedAt:       started,
		DateKey:         types.DateKey(started),
		InitialDevice:   device,
		LaptopRate:      s.pricing.LaptopRate,
		MobileRate:      s.pricing.MobileRate,
		LaptopPlaceCost: s.pricing.LaptopPlaceCost,
		MobilePlaceCost: s.pricing.MobilePlaceCost,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) loadOpen(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.IsClosed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "session is already closed")
	}
	return record, nil
}

func (s *service) SwitchDevice(ctx context.Context, sessionID uuid.UUID, to enums.DeviceType, at time.Time) (*models.SessionRecord, error) {
	if !to.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid device type %q", to))
	}
	record, err := s.loadOpen(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}

	from := record.InitialDevice
	if n := len(record.Events); n > 0 {
		from = record.Events[n-1].ToDevice
	}
	record.Events = append(record.Events, types.SessionEvent{At: at, FromDevice: from, ToDevice: to})
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) AddOrder(ctx context.Context, sessionID uuid.UUID, item types.OrderItem) (*models.SessionRecord, error) {
	item = item.Normalize()
	if !item.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order type %q", item.Type))
	}
	if item.UnitPrice.IsNegative() || item.UnitCost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order price and cost must be non-negative")
	}
	record, err := s.loadOpen(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	record.Orders = append(record.Orders, item)
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *service) CloseSession(ctx context.Context, input CloseSessionInput) (*CloseSessionResult, error) {
	if input.PaidAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid amount must be non-negative")
	}
	if input.PaymentChannel == "" {
		input.PaymentChannel = enums.ChannelCash
	}
	if !input.PaymentChannel.IsValid() || input.PaymentChannel == enums.ChannelReceivable {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment channel %q", input.PaymentChannel))
	}

	record, err := s.loadOpen(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	ended := input.EndedAt
	if ended.IsZero() {
		ended = time.Now().UTC()
	}

	lock, err := s.ledgerRepo.LatestLock(ctx)
	if err != nil {
		return nil, err
	}
	if err := ledger.ValidateOperation(types.DateKey(ended), lock); err != nil {
		return nil, err
	}

	orders := record.Orders
	if input.Orders != nil {
		orders = input.Orders
	}
	discount := input.Discount
	if discount == nil {
		discount = record.Discount
	}

	invoice, err := Compute(record.StartedAt, ended, record.InitialDevice, record.Events, orders, discount, s.pricing)
	if err != nil {
		return nil, err
	}

	result := &CloseSessionResult{Invoice: invoice}
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		var res settlement.Resolution
		if record.CustomerID != nil {
			customer, err := s.settle.GetCustomer(ctx, *record.CustomerID)
			if err != nil {
				return err
			}
			res, err = s.settle.SettleTx(ctx, tx, customer, invoice.TotalInvoice, input.PaidAmount)
			if err != nil {
				return err
			}
		} else {
			res = settlement.Resolve(invoice.TotalInvoice, input.PaidAmount, decimal.Zero, decimal.Zero)
		}
		result.Resolution = res

		entries := s.buildCloseEntries(record, invoice, res, input, ended)
		if err := s.ledgerRepo.WithTx(tx).CreateBatch(ctx, entries); err != nil {
			return err
		}
		result.Entries = entries

		record.EndedAt = &ended
		record.DateKey = types.DateKey(ended)
		record.Orders = orders
		record.Discount = invoice.Discount
		record.Segments = invoice.Segments
		record.SessionCost = invoice.SessionCost
		record.OrdersTotal = invoice.DrinksInvoice.Add(invoice.CardsInvoice)
		record.DiscountAmount = invoice.DiscountAmount
		record.TotalInvoice = invoice.TotalInvoice
		record.PlaceCost = invoice.PlaceCost
		record.DrinksCost = invoice.DrinksCost
		record.CardsCost = invoice.CardsCost
		record.NetProfit = invoice.NetProfit
		record.DevCut = invoice.DevCut
		record.PaidAmount = input.PaidAmount
		record.PaymentChannel = &input.PaymentChannel
		record.IsClosed = true
		if input.Notes != nil {
			record.Notes = input.Notes
		}
		return s.repo.WithTx(tx).Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	result.Record = record
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"session_id": record.ID.String(),
		"invoice":    invoice.TotalInvoice.StringFixed(2),
		"paid":       input.PaidAmount.StringFixed(2),
	}), "session closed")
	return result, nil
}

// buildCloseEntries turns one close into its ledger facts: paid money lands
// on the payment channel, split product-first between product and session
// income; unpaid invoice becomes a receivable debt entry.
func (s *service) buildCloseEntries(record *models.SessionRecord, invoice Invoice, res settlement.Resolution, input CloseSessionInput, ended time.Time) []*models.LedgerEntry {
	entityID := record.ID
	dateKey := types.DateKey(ended)
	entries := make([]*models.LedgerEntry, 0, 3)

	ordersTotal := invoice.DrinksInvoice.Add(invoice.CardsInvoice)
	productPaid := decimal.Min(input.PaidAmount, ordersTotal)
	sessionPaid := input.PaidAmount.Sub(productPaid)

	if productPaid.IsPositive() {
		entries = append(entries, ledger.NewEntry(ledger.EntryInput{
			Type:        enums.TransactionTypeIncomeProduct,
			Amount:      productPaid,
			Direction:   enums.DirectionIn,
			Channel:     input.PaymentChannel,
			AccountID:   input.AccountID,
			Description: fmt.Sprintf("products: %s", record.CustomerName),
			EntityID:    &entityID,
			Timestamp:   ended,
			DateKey:     dateKey,
		}))
	}
	if sessionPaid.IsPositive() {
		entries = append(entries, ledger.NewEntry(ledger.EntryInput{
			Type:        enums.TransactionTypeIncomeSession,
			Amount:      sessionPaid,
			Direction:   enums.DirectionIn,
			Channel:     input.PaymentChannel,
			AccountID:   input.AccountID,
			Description: fmt.Sprintf("session: %s", record.CustomerName),
			EntityID:    &entityID,
			Timestamp:   ended,
			DateKey:     dateKey,
		}))
	}
	if res.CreatedDebt.IsPositive() {
		entries = append(entries, ledger.NewEntry(ledger.EntryInput{
			Type:        enums.TransactionTypeDebtCreate,
			Amount:      res.CreatedDebt,
			Direction:   enums.DirectionIn,
			Channel:     enums.ChannelReceivable,
			Description: fmt.Sprintf("debt: %s", record.CustomerName),
			EntityID:    &entityID,
			Timestamp:   ended,
			DateKey:     dateKey,
		}))
	}
	return entries
}

func (s *service) GetSession(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOpenSessions(ctx context.Context) ([]models.SessionRecord, error) {
	return s.repo.ListOpen(ctx)
}

func (s *service) ListClosedRecords(ctx context.Context) ([]models.SessionRecord, error) {
	return s.repo.ListClosed(ctx)
}
