package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// RecordSource supplies closed session records to period aggregations. The
// billing package owns record persistence; the ledger only reads.
type RecordSource interface {
	ListClosedRecords(ctx context.Context) ([]models.SessionRecord, error)
}

// Service exposes the append and query surface of the money ledger.
type Service interface {
	Append(ctx context.Context, input EntryInput) (*models.LedgerEntry, error)
	AppendBatch(ctx context.Context, inputs []EntryInput) ([]*models.LedgerEntry, error)
	ListEntries(ctx context.Context, start, end string) ([]models.LedgerEntry, error)
	Treasury(ctx context.Context) (TreasuryView, error)
	Stats(ctx context.Context, start, end string) (PeriodStats, error)
	TotalsFor(ctx context.Context, window TotalsWindow, dateRef string) (PeriodStats, error)
	CostAnalysisMonth(ctx context.Context, monthKey string) ([]DayCost, error)
	PreviewCycle(ctx context.Context, cycleStart time.Time) (DayCyclePreview, error)
	PartnerActivityFor(ctx context.Context, partnerID string) (PartnerActivity, error)
	Integrity(ctx context.Context) ([]string, error)
	CurrentLock(ctx context.Context) (*models.PeriodLock, error)
	CreateBankAccount(ctx context.Context, name string, holder *string) (*models.BankAccount, error)
}

// ServiceParams wires a ledger service.
type ServiceParams struct {
	Repo    Repository
	Records RecordSource
	Logger  *logger.Logger
}

type service struct {
	repo    Repository
	records RecordSource
	logg    *logger.Logger
}

// NewService validates dependencies and returns a ledger service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if params.Records == nil {
		return nil, fmt.Errorf("record source required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: params.Repo, records: params.Records, logg: params.Logger}, nil
}

func (s *service) validateInput(input EntryInput) error {
	if !input.Type.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid transaction type %q", input.Type))
	}
	if !input.Direction.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid direction %q", input.Direction))
	}
	if !input.Channel.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid channel %q", input.Channel))
	}
	if input.Amount.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "amount must be non-negative")
	}
	return nil
}

// guard runs the period lock and balance checks for one intended entry
// against the supplied ledger state.
func (s *service) guard(input EntryInput, entries []models.LedgerEntry, lock *models.PeriodLock) error {
	dateKey := input.DateKey
	if dateKey == "" {
		ts := input.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		dateKey = types.DateKey(ts)
	}
	if err := ValidateOperation(dateKey, lock); err != nil {
		return err
	}
	if input.Direction == enums.DirectionOut {
		return ValidateTransaction(entries, input.Amount, input.Channel, input.AccountID)
	}
	return nil
}

func (s *service) Append(ctx context.Context, input EntryInput) (*models.LedgerEntry, error) {
	created, err := s.AppendBatch(ctx, []EntryInput{input})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *service) AppendBatch(ctx context.Context, inputs []EntryInput) ([]*models.LedgerEntry, error) {
	if len(inputs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one entry is required")
	}
	for _, input := range inputs {
		if err := s.validateInput(input); err != nil {
			return nil, err
		}
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	lock, err := s.repo.LatestLock(ctx)
	if err != nil {
		return nil, err
	}

	created := make([]*models.LedgerEntry, 0, len(inputs))
	for _, input := range inputs {
		if err := s.guard(input, entries, lock); err != nil {
			return nil, err
		}
		entry := NewEntry(input)
		created = append(created, entry)
		// later inputs in the batch see the effect of earlier ones
		entries = append(entries, *entry)
	}

	if err := s.repo.CreateBatch(ctx, created); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"count": len(created)}), "ledger entries appended")
	return created, nil
}

func (s *service) ListEntries(ctx context.Context, start, end string) ([]models.LedgerEntry, error) {
	if start == "" || end == "" {
		return s.repo.List(ctx)
	}
	return s.repo.ListByDateRange(ctx, start, end)
}

func (s *service) Treasury(ctx context.Context) (TreasuryView, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return TreasuryView{}, err
	}
	accounts, err := s.repo.ListBankAccounts(ctx)
	if err != nil {
		return TreasuryView{}, err
	}
	return TreasuryStats(entries, accounts), nil
}

func (s *service) Stats(ctx context.Context, start, end string) (PeriodStats, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return PeriodStats{}, err
	}
	return StatsForPeriod(entries, start, end), nil
}

func (s *service) TotalsFor(ctx context.Context, window TotalsWindow, dateRef string) (PeriodStats, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return PeriodStats{}, err
	}
	return Totals(entries, window, dateRef)
}

func (s *service) CostAnalysisMonth(ctx context.Context, monthKey string) ([]DayCost, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.records.ListClosedRecords(ctx)
	if err != nil {
		return nil, err
	}
	return CostAnalysis(entries, records, monthKey)
}

func (s *service) PreviewCycle(ctx context.Context, cycleStart time.Time) (DayCyclePreview, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return DayCyclePreview{}, err
	}
	return PreviewDayCycle(entries, cycleStart, time.Now().UTC()), nil
}

func (s *service) PartnerActivityFor(ctx context.Context, partnerID string) (PartnerActivity, error) {
	entries, err := s.repo.ListByPartner(ctx, partnerID)
	if err != nil {
		return PartnerActivity{}, err
	}
	return PartnerStats(entries, partnerID), nil
}

func (s *service) Integrity(ctx context.Context) ([]string, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	warnings := CheckIntegrity(entries)
	for _, warning := range warnings {
		s.logg.Warn(ctx, warning)
	}
	return warnings, nil
}

func (s *service) CurrentLock(ctx context.Context) (*models.PeriodLock, error) {
	return s.repo.LatestLock(ctx)
}

func (s *service) CreateBankAccount(ctx context.Context, name string, holder *string) (*models.BankAccount, error) {
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "account name is required")
	}
	account := &models.BankAccount{ID: uuid.New(), Name: name, Holder: holder}
	if err := s.repo.CreateBankAccount(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}
