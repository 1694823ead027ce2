package plans

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
)

// Repository manages recurring plan persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, plan *models.SavingPlan) error
	Update(ctx context.Context, plan *models.SavingPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavingPlan, error)
	List(ctx context.Context) ([]models.SavingPlan, error)
	ListActive(ctx context.Context) ([]models.SavingPlan, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a plans repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, plan *models.SavingPlan) error {
	return r.db.WithContext(ctx).Create(plan).Error
}

func (r *repository) Update(ctx context.Context, plan *models.SavingPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavingPlan, error) {
	var plan models.SavingPlan
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *repository) List(ctx context.Context) ([]models.SavingPlan, error) {
	var plans []models.SavingPlan
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *repository) ListActive(ctx context.Context) ([]models.SavingPlan, error) {
	var plans []models.SavingPlan
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
