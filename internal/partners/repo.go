package partners

import (
	"context"

	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
)

// Repository manages purchases and partner debt items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreatePurchase(ctx context.Context, purchase *models.Purchase) error
	ListPurchases(ctx context.Context) ([]models.Purchase, error)
	CreateDebt(ctx context.Context, debt *models.DebtItem) error
	ListDebts(ctx context.Context) ([]models.DebtItem, error)
	ListDebtsByPartner(ctx context.Context, partnerID string) ([]models.DebtItem, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a partners repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreatePurchase(ctx context.Context, purchase *models.Purchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *repository) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Order("date_key DESC").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

func (r *repository) CreateDebt(ctx context.Context, debt *models.DebtItem) error {
	return r.db.WithContext(ctx).Create(debt).Error
}

func (r *repository) ListDebts(ctx context.Context) ([]models.DebtItem, error) {
	var debts []models.DebtItem
	if err := r.db.WithContext(ctx).
		Order("date_key DESC").
		Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}

func (r *repository) ListDebtsByPartner(ctx context.Context, partnerID string) ([]models.DebtItem, error) {
	var debts []models.DebtItem
	if err := r.db.WithContext(ctx).
		Where("partner_id = ?", partnerID).
		Order("date_key DESC").
		Find(&debts).Error; err != nil {
		return nil, err
	}
	return debts, nil
}
