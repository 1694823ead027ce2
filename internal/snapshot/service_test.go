package snapshot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/logger"
)

type fakeSnapshotRepo struct {
	snaps   []models.InventorySnapshot
	created []*models.InventorySnapshot
}

func (f *fakeSnapshotRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeSnapshotRepo) Create(ctx context.Context, snap *models.InventorySnapshot) error {
	f.created = append(f.created, snap)
	f.snaps = append(f.snaps, *snap)
	return nil
}

func (f *fakeSnapshotRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	for i := range f.snaps {
		if f.snaps[i].ID == id {
			return &f.snaps[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSnapshotRepo) List(ctx context.Context) ([]models.InventorySnapshot, error) {
	return f.snaps, nil
}

func (f *fakeSnapshotRepo) ListSnapshots(ctx context.Context) ([]models.InventorySnapshot, error) {
	return f.snaps, nil
}

func (f *fakeSnapshotRepo) Latest(ctx context.Context) (*models.InventorySnapshot, error) {
	if len(f.snaps) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &f.snaps[len(f.snaps)-1], nil
}

type fakeLedgerRepo struct {
	entries []models.LedgerEntry
	lock    *models.PeriodLock
}

func (f *fakeLedgerRepo) WithTx(tx *gorm.DB) ledger.Repository { return f }

func (f *fakeLedgerRepo) Create(ctx context.Context, e *models.LedgerEntry) error {
	f.entries = append(f.entries, *e)
	return nil
}

func (f *fakeLedgerRepo) CreateBatch(ctx context.Context, entries []*models.LedgerEntry) error {
	for _, e := range entries {
		f.entries = append(f.entries, *e)
	}
	return nil
}

func (f *fakeLedgerRepo) List(ctx context.Context) ([]models.LedgerEntry, error) {
	return f.entries, nil
}

func (f *fakeLedgerRepo) ListByDateRange(ctx context.Context, start, end string) ([]models.LedgerEntry, error) {
	var out []models.LedgerEntry
	for _, e := range f.entries {
		if e.DateKey >= start && e.DateKey <= end {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByPartner(ctx context.Context, partnerID string) ([]models.LedgerEntry, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.LedgerEntry, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLedgerRepo) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	return nil, nil
}

func (f *fakeLedgerRepo) CreateBankAccount(ctx context.Context, account *models.BankAccount) error {
	return nil
}

func (f *fakeLedgerRepo) LatestLock(ctx context.Context) (*models.PeriodLock, error) {
	return f.lock, nil
}

func (f *fakeLedgerRepo) CreateLock(ctx context.Context, lock *models.PeriodLock) error {
	f.lock = lock
	return nil
}

type fakeRecordSource struct {
	records []models.SessionRecord
}

func (f *fakeRecordSource) ListClosedRecords(ctx context.Context) ([]models.SessionRecord, error) {
	return f.records, nil
}

type fakeTx struct{}

func (f *fakeTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *fakeSnapshotRepo, ledgerRepo *fakeLedgerRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Repo:       repo,
		LedgerRepo: ledgerRepo,
		Records:    &fakeRecordSource{},
		Roster:     testRoster(t),
		Pricing:    testTariff(),
		Tx:         &fakeTx{},
		Logger:     logger.New(logger.Options{Level: zerolog.ErrorLevel}),
	})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func TestService_CloseRejectsLockedPeriods(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"period inside the locked range", "2026-03-01", "2026-03-31"},
		{"period straddling the lock boundary", "2026-03-15", "2026-04-15"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeSnapshotRepo{}
			ledgerRepo := &fakeLedgerRepo{lock: &models.PeriodLock{LockedUntil: "2026-03-31"}}
			svc := newTestService(t, repo, ledgerRepo)

			_, err := svc.Close(context.Background(), CloseInput{
				PeriodStart: tc.start,
				PeriodEnd:   tc.end,
			})
			if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodePeriodLocked {
				t.Fatalf("expected PERIOD_LOCKED, got %v", err)
			}
			if len(repo.created) != 0 {
				t.Fatal("rejected close must not persist a snapshot")
			}
		})
	}
}

func TestService_ClosePastLockSucceeds(t *testing.T) {
	repo := &fakeSnapshotRepo{}
	ledgerRepo := &fakeLedgerRepo{lock: &models.PeriodLock{LockedUntil: "2026-03-31"}}
	svc := newTestService(t, repo, ledgerRepo)

	snap, err := svc.Close(context.Background(), CloseInput{
		PeriodStart: "2026-04-01",
		PeriodEnd:   "2026-04-30",
	})
	if err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one persisted snapshot, got %d", len(repo.created))
	}
	if ledgerRepo.lock == nil || ledgerRepo.lock.LockedUntil != "2026-04-30" {
		t.Fatalf("lock must advance to the period end, got %+v", ledgerRepo.lock)
	}
	if ledgerRepo.lock.SnapshotID == nil || *ledgerRepo.lock.SnapshotID != snap.ID {
		t.Fatal("lock must reference the snapshot that closed the period")
	}
}
