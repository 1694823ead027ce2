package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// DebtItem is money a partner owes, either drawn from the till (place
// sourced) or borrowed externally on the venue's behalf.
type DebtItem struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	PartnerID  string           `gorm:"column:partner_id;type:text;not null;index"`
	Source     enums.DebtSource `gorm:"column:source;type:text;not null"`
	Channel    enums.Channel    `gorm:"column:channel;type:text;not null;default:'cash'"`
	Amount     decimal.Decimal  `gorm:"column:amount;type:numeric(14,2);not null"`
	PaidAmount decimal.Decimal  `gorm:"column:paid_amount;type:numeric(14,2);not null;default:0"`
	DateKey    string           `gorm:"column:date_key;type:text;not null;index"`
	IsSettled  bool             `gorm:"column:is_settled;not null;default:false"`
	Notes      *string          `gorm:"column:notes;type:text"`
	EntryID    *uuid.UUID       `gorm:"column:entry_id;type:uuid"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
