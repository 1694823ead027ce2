package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// Purchase records goods bought for the venue and who fronted the money.
// Partner-funded purchases are reimbursed through the settlement
// distribution instead of leaving the till.
type Purchase struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Description   string              `gorm:"column:description;type:text;not null"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null"`
	FundingSource enums.FundingSource `gorm:"column:funding_source;type:text;not null"`
	BuyerID       *string             `gorm:"column:buyer_id;type:text;index"`
	PaymentMethod enums.Channel       `gorm:"column:payment_method;type:text;not null;default:'cash'"`
	DateKey       string              `gorm:"column:date_key;type:text;not null;index"`
	EntryID       *uuid.UUID          `gorm:"column:entry_id;type:uuid"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}
