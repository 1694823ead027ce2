package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// LedgerEntry is one immutable row in the append-only money ledger. Entries
// are never updated or deleted after creation; corrections are made by
// appending compensating entries.
type LedgerEntry struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	Timestamp       time.Time             `gorm:"column:timestamp;not null;index"`
	DateKey         string                `gorm:"column:date_key;type:text;not null;index"`
	Type            enums.TransactionType `gorm:"column:type;type:text;not null;index"`
	Amount          decimal.Decimal       `gorm:"column:amount;type:numeric(14,2);not null"`
	Direction       enums.Direction       `gorm:"column:direction;type:text;not null"`
	Channel         enums.Channel         `gorm:"column:channel;type:text;not null"`
	AccountID       *uuid.UUID            `gorm:"column:account_id;type:uuid"`
	TransferStatus  *enums.TransferStatus `gorm:"column:transfer_status;type:text"`
	Automatic       bool                  `gorm:"column:automatic;not null;default:false"`
	Description     string                `gorm:"column:description;type:text"`
	EntityID        *uuid.UUID            `gorm:"column:entity_id;type:uuid;index"`
	PartnerID       *string               `gorm:"column:partner_id;type:text;index"`
	ReferenceID     *uuid.UUID            `gorm:"column:reference_id;type:uuid"`
	PerformedByID   *string               `gorm:"column:performed_by_id;type:text"`
	PerformedByName *string               `gorm:"column:performed_by_name;type:text"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
}
