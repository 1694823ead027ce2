package loans

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
)

// Repository manages loans, their installment schedules, and payments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, loan *models.PlaceLoan) error
	Update(ctx context.Context, loan *models.PlaceLoan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PlaceLoan, error)
	List(ctx context.Context) ([]models.PlaceLoan, error)
	UpdateInstallment(ctx context.Context, installment *models.LoanInstallment) error
	CreatePayment(ctx context.Context, payment *models.LoanPayment) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a loans repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, loan *models.PlaceLoan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

func (r *repository) Update(ctx context.Context, loan *models.PlaceLoan) error {
	return r.db.WithContext(ctx).
		Omit("Installments", "Payments").
		Save(loan).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.PlaceLoan, error) {
	var loan models.PlaceLoan
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") }).
		Where("id = ?", id).
		First(&loan).Error; err != nil {
		return nil, err
	}
	return &loan, nil
}

func (r *repository) List(ctx context.Context) ([]models.PlaceLoan, error) {
	var loans []models.PlaceLoan
	if err := r.db.WithContext(ctx).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("sequence ASC") }).
		Preload("Payments").
		Order("created_at DESC").
		Find(&loans).Error; err != nil {
		return nil, err
	}
	return loans, nil
}

func (r *repository) UpdateInstallment(ctx context.Context, installment *models.LoanInstallment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

func (r *repository) CreatePayment(ctx context.Context, payment *models.LoanPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}
