package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer tracks a venue customer and their running credit and debt
// balances. The two balances are mutually exclusive: settlement never leaves
// both positive.
type Customer struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Name          string          `gorm:"column:name;type:text;not null"`
	Phone         *string         `gorm:"column:phone;type:text"`
	CreditBalance decimal.Decimal `gorm:"column:credit_balance;type:numeric(14,2);not null;default:0"`
	DebtBalance   decimal.Decimal `gorm:"column:debt_balance;type:numeric(14,2);not null;default:0"`
	Notes         *string         `gorm:"column:notes;type:text"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
