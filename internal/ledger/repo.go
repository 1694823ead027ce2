package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
)

// Repository manages persistence for ledger entries, bank accounts, and
// period locks. Entries are append-only: there is no update or delete.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, entry *models.LedgerEntry) error
	CreateBatch(ctx context.Context, entries []*models.LedgerEntry) error
	List(ctx context.Context) ([]models.LedgerEntry, error)
	ListByDateRange(ctx context.Context, start, end string) ([]models.LedgerEntry, error)
	ListByPartner(ctx context.Context, partnerID string) ([]models.LedgerEntry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.LedgerEntry, error)

	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	CreateBankAccount(ctx context.Context, account *models.BankAccount) error

	LatestLock(ctx context.Context) (*models.PeriodLock, error)
	CreateLock(ctx context.Context, lock *models.PeriodLock) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a ledger repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, entry *models.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) CreateBatch(ctx context.Context, entries []*models.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

func (r *repository) List(ctx context.Context) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListByDateRange(ctx context.Context, start, end string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("date_key >= ? AND date_key <= ?", start, end).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) ListByPartner(ctx context.Context, partnerID string) ([]models.LedgerEntry, error) {
	var entries []models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("timestamp ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.LedgerEntry, error) {
	var entry models.LedgerEntry
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *repository) ListBankAccounts(ctx context.Context) ([]models.BankAccount, error) {
	var accounts []models.BankAccount
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *repository) CreateBankAccount(ctx context.Context, account *models.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *repository) LatestLock(ctx context.Context) (*models.PeriodLock, error) {
	var lock models.PeriodLock
	err := r.db.WithContext(ctx).
		Order("locked_until DESC").
		First(&lock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lock, nil
}

func (r *repository) CreateLock(ctx context.Context, lock *models.PeriodLock) error {
	return r.db.WithContext(ctx).Create(lock).Error
}
