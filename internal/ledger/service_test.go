package ledger

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

type fakeRepository struct {
	entries  []models.LedgerEntry
	accounts []models.BankAccount
	lock     *models.PeriodLock
	created  []*models.LedgerEntry
	createFn func(ctx context.Context, entries []*models.LedgerEntry) error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, e *models.LedgerEntry) error {
	return f.CreateBatch(ctx, []*models.LedgerEntry{e})
}

func (f *fakeRepository) CreateBatch(ctx context.Context, entries []*models.LedgerEntry) error {
	if f.createFn != nil {
		return f.createFn(ctx, entries)
	}
	f.created = append(f.created, entries...)
	for _, e := range entries {
		f.entries = append(f.entries, *e)
	}
	return nil
}

func (f *fakeRepository) List(ctx context.Context) ([]models.LedgerEntry, error) {
	return f.entries, nil
}

func (f *fakeRepository) ListByDateRange(ctx context.Context, start, end string) ([]models.LedgerEntry, error) {
	return filterByPeriod(f.entries, start, end), nil
}

func (f *fakeRepository) ListByPartner(ctx context.Context, partnerID string) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for _, e := range f.entries {
		if e.PartnerID != nil && *e.PartnerID == partnerID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.LedgerEntry, error) {
	for i := range f.entries {
		if f.entries[i].ID == id {
			return &f.entries[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return f.accounts, nil
}

func (f *fakeRepository) CreateBankAccount(ctx context.Context, account *models.BankAccount) error {
	f.accounts = append(f.accounts, *account)
	return nil
}

func (f *fakeRepository) LatestLock(ctx context.Context) (*models.PeriodLock, error) {
	return f.lock, nil
}

func (f *fakeRepository) CreateLock(ctx context.Context, lock *models.PeriodLock) error {
	f.lock = lock
	return nil
}

type fakeRecordSource struct {
	records []models.SessionRecord
}

func (f *fakeRecordSource) ListClosedRecords(ctx context.Context) ([]models.SessionRecord, error) {
	return f.records, nil
}

func newTestService(t *testing.T, repo *fakeRepository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:    repo,
		Records: &fakeRecordSource{},
		Logger:  logger.New(logger.Options{Level: zerolog.ErrorLevel}),
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_AppendCreatesEntry(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	got, err := svc.Append(context.Background(), EntryInput{
		Type:        enums.TransactionTypeIncomeSession,
		Amount:      decimal.RequireFromString("42"),
		Direction:   enums.DirectionIn,
		Channel:     enums.ChannelCash,
		Description: "session income",
	})
	if err != nil {
		t.Fatalf("Append error: %v", err)
	}
	if got.ID == uuid.Nil {
		t.Fatal("expected generated id")
	}
	if got.DateKey == "" {
		t.Fatal("expected date key to default")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted entry, got %d", len(repo.created))
	}
}

func TestService_AppendRejectsInvalidInput(t *testing.T) {
	svc := newTestService(t, &fakeRepository{})

	cases := []struct {
		name  string
		input EntryInput
	}{
		{
			name: "bad type",
			input: EntryInput{
				Type: enums.TransactionType("nonsense"), Amount: decimal.NewFromInt(1),
				Direction: enums.DirectionIn, Channel: enums.ChannelCash,
			},
		},
		{
			name: "bad direction",
			input: EntryInput{
				Type: enums.TransactionTypeIncomeSession, Amount: decimal.NewFromInt(1),
				Direction: enums.Direction("sideways"), Channel: enums.ChannelCash,
			},
		},
		{
			name: "bad channel",
			input: EntryInput{
				Type: enums.TransactionTypeIncomeSession, Amount: decimal.NewFromInt(1),
				Direction: enums.DirectionIn, Channel: enums.Channel("crypto"),
			},
		},
		{
			name: "negative amount",
			input: EntryInput{
				Type: enums.TransactionTypeIncomeSession, Amount: decimal.NewFromInt(-1),
				Direction: enums.DirectionIn, Channel: enums.ChannelCash,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Append(context.Background(), tc.input); err == nil {
				t.Fatalf("expected validation error for %s", tc.name)
			}
		})
	}
}

func TestService_AppendEnforcesBalance(t *testing.T) {
	repo := &fakeRepository{
		entries: []models.LedgerEntry{
			entry(enums.TransactionTypeIncomeSession, "20", enums.DirectionIn, enums.ChannelCash, "session"),
		},
	}
	svc := newTestService(t, repo)

	_, err := svc.Append(context.Background(), EntryInput{
		Type:        enums.TransactionTypeExpenseOperational,
		Amount:      decimal.RequireFromString("100"),
		Direction:   enums.DirectionOut,
		Channel:     enums.ChannelCash,
		Description: "rent",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientFunds {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatal("rejected entry must not be persisted")
	}
}

func TestService_AppendEnforcesPeriodLock(t *testing.T) {
	repo := &fakeRepository{lock: &models.PeriodLock{LockedUntil: "2099-12-31"}}
	svc := newTestService(t, repo)

	_, err := svc.Append(context.Background(), EntryInput{
		Type:        enums.TransactionTypeIncomeSession,
		Amount:      decimal.RequireFromString("10"),
		Direction:   enums.DirectionIn,
		Channel:     enums.ChannelCash,
		Description: "session",
	})
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodePeriodLocked {
		t.Fatalf("expected PERIOD_LOCKED, got %v", err)
	}
}

func TestService_AppendBatchSeesEarlierEntries(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo)

	// the second input spends what the first brings in
	_, err := svc.AppendBatch(context.Background(), []EntryInput{
		{
			Type: enums.TransactionTypeIncomeSession, Amount: decimal.RequireFromString("100"),
			Direction: enums.DirectionIn, Channel: enums.ChannelCash, Description: "session",
		},
		{
			Type: enums.TransactionTypeExpenseOperational, Amount: decimal.RequireFromString("80"),
			Direction: enums.DirectionOut, Channel: enums.ChannelCash, Description: "rent",
		},
	})
	if err != nil {
		t.Fatalf("batch should pass once earlier inflow is counted: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected both entries persisted, got %d", len(repo.created))
	}
}

func TestService_Treasury(t *testing.T) {
	accID := uuid.New()
	confirmed := enums.TransferStatusConfirmed

	bankIn := entry(enums.TransactionTypeIncomeSession, "300", enums.DirectionIn, enums.ChannelBank, "transfer")
	bankIn.AccountID = &accID
	bankIn.TransferStatus = &confirmed

	repo := &fakeRepository{
		entries: []models.LedgerEntry{
			entry(enums.TransactionTypeIncomeSession, "100", enums.DirectionIn, enums.ChannelCash, "session"),
			bankIn,
		},
		accounts: []models.BankAccount{{ID: accID, Name: "main"}},
	}
	svc := newTestService(t, repo)

	view, err := svc.Treasury(context.Background())
	if err != nil {
		t.Fatalf("Treasury error: %v", err)
	}
	if !view.CashBalance.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("cash balance mismatch: %s", view.CashBalance)
	}
	if !view.TotalBankBalance.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("bank balance mismatch: %s", view.TotalBankBalance)
	}
	if len(view.Accounts) != 1 || !view.Accounts[0].Balance.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("account breakdown mismatch: %+v", view.Accounts)
	}
}
