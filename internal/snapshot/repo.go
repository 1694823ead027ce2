package snapshot

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
)

// Repository persists closed period snapshots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, snap *models.InventorySnapshot) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error)
	List(ctx context.Context) ([]models.InventorySnapshot, error)
	ListSnapshots(ctx context.Context) ([]models.InventorySnapshot, error)
	Latest(ctx context.Context) (*models.InventorySnapshot, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a snapshot repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, snap *models.InventorySnapshot) error {
	return r.db.WithContext(ctx).Create(snap).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*models.InventorySnapshot, error) {
	var snap models.InventorySnapshot
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&snap).Error; err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *repository) List(ctx context.Context) ([]models.InventorySnapshot, error) {
	var snaps []models.InventorySnapshot
	if err := r.db.WithContext(ctx).
		Order("period_end DESC").
		Find(&snaps).Error; err != nil {
		return nil, err
	}
	return snaps, nil
}

// ListSnapshots satisfies partners.SnapshotSource.
func (r *repository) ListSnapshots(ctx context.Context) ([]models.InventorySnapshot, error) {
	return r.List(ctx)
}

func (r *repository) Latest(ctx context.Context) (*models.InventorySnapshot, error) {
	var snap models.InventorySnapshot
	err := r.db.WithContext(ctx).
		Order("period_end DESC").
		First(&snap).Error
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
