package billing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
)

// Repository manages session record persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.SessionRecord) error
	Update(ctx context.Context, record *models.SessionRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error)
	ListOpen(ctx context.Context) ([]models.SessionRecord, error)
	ListClosed(ctx context.Context) ([]models.SessionRecord, error)
	ListClosedByDateRange(ctx context.Context, start, end string) ([]models.SessionRecord, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a session record repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.SessionRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *repository) Update(ctx context.Context, record *models.SessionRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.SessionRecord, error) {
	var record models.SessionRecord
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListOpen(ctx context.Context) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	if err := r.db.WithContext(ctx).
		Where("is_closed = ?", false).
		Order("started_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListClosed(ctx context.Context) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	if err := r.db.WithContext(ctx).
		Where("is_closed = ?", true).
		Order("ended_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) ListClosedByDateRange(ctx context.Context, start, end string) ([]models.SessionRecord, error) {
	var records []models.SessionRecord
	if err := r.db.WithContext(ctx).
		Where("is_closed = ? AND date_key >= ? AND date_key <= ?", true, start, end).
		Order("ended_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
