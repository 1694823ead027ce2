package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.LedgerEntry{},
		&models.BankAccount{},
		&models.PeriodLock{},
	))
	return db
}

func seedEntry(t *testing.T, repo Repository, dateKey, partnerID string, amount string, at time.Time) *models.LedgerEntry {
	t.Helper()

	entry := &models.LedgerEntry{
		ID:        uuid.New(),
		Timestamp: at,
		DateKey:   dateKey,
		Type:      enums.TransactionTypeIncomeSession,
		Amount:    decimal.RequireFromString(amount),
		Direction: enums.DirectionIn,
		Channel:   enums.ChannelCash,
	}
	if partnerID != "" {
		entry.PartnerID = &partnerID
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	return entry
}

func TestRepositoryListByDateRange_boundsAndOrder(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	seedEntry(t, repo, "2026-03-09", "", "10", base.Add(-24*time.Hour))
	late := seedEntry(t, repo, "2026-03-11", "", "30", base.Add(24*time.Hour))
	early := seedEntry(t, repo, "2026-03-10", "", "20", base)
	seedEntry(t, repo, "2026-03-12", "", "40", base.Add(48*time.Hour))

	entries, err := repo.ListByDateRange(context.Background(), "2026-03-10", "2026-03-11")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, early.ID, entries[0].ID)
	assert.Equal(t, late.ID, entries[1].ID)
}

func TestRepositoryListByPartner(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	mine := seedEntry(t, repo, "2026-04-01", "partner_list_a", "50", at)
	seedEntry(t, repo, "2026-04-01", "partner_list_b", "60", at)

	entries, err := repo.ListByPartner(context.Background(), "partner_list_a")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, mine.ID, entries[0].ID)
	require.NotNil(t, entries[0].PartnerID)
	assert.Equal(t, "partner_list_a", *entries[0].PartnerID)
}

func TestRepositoryLatestLock(t *testing.T) {
	db := setupLedgerTestDB(t)
	repo := NewRepository(db)

	lock, err := repo.LatestLock(context.Background())
	require.NoError(t, err)
	assert.Nil(t, lock)

	older := &models.PeriodLock{ID: uuid.New(), LockedUntil: "2026-01-31"}
	newer := &models.PeriodLock{ID: uuid.New(), LockedUntil: "2026-02-28"}
	require.NoError(t, repo.CreateLock(context.Background(), older))
	require.NoError(t, repo.CreateLock(context.Background(), newer))

	lock, err = repo.LatestLock(context.Background())
	require.NoError(t, err)
	require.NotNil(t, lock)
	assert.Equal(t, "2026-02-28", lock.LockedUntil)
}
