package models

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount is a destination for bank-channel entries. Balances are never
// stored; they are always folded from the ledger.
type BankAccount struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;type:text;not null"`
	Holder    *string   `gorm:"column:holder;type:text"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
