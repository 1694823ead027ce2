package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// SavingPlan is a recurring accrual: a fixed amount moved automatically per
// day or prorated per month. LastAppliedAt is the accrual cursor; it only
// advances when an accrual actually posts, so missed runs catch up.
type SavingPlan struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name          string             `gorm:"column:name;type:text;not null"`
	Type          enums.PlanType     `gorm:"column:type;type:text;not null"`
	Category      enums.PlanCategory `gorm:"column:category;type:text;not null;default:'saving'"`
	Amount        decimal.Decimal    `gorm:"column:amount;type:numeric(14,2);not null"`
	Channel       enums.Channel      `gorm:"column:channel;type:text;not null;default:'cash'"`
	BankAccountID *uuid.UUID         `gorm:"column:bank_account_id;type:uuid"`
	IsActive      bool               `gorm:"column:is_active;not null;default:true;index"`
	StartedAt     time.Time          `gorm:"column:started_at;not null"`
	LastAppliedAt time.Time          `gorm:"column:last_applied_at;not null"`
	Notes         *string            `gorm:"column:notes;type:text"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
