package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// InventorySnapshot freezes the financial outcome of a settlement period:
// raw inflows, direct and operating costs, the developer cut, and the full
// per-partner distribution. Snapshots are write-once.
type InventorySnapshot struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	PeriodStart        string              `gorm:"column:period_start;type:text;not null;index"`
	PeriodEnd          string              `gorm:"column:period_end;type:text;not null;index"`
	CashIn             decimal.Decimal     `gorm:"column:cash_in;type:numeric(14,2);not null;default:0"`
	BankIn             decimal.Decimal     `gorm:"column:bank_in;type:numeric(14,2);not null;default:0"`
	CashOut            decimal.Decimal     `gorm:"column:cash_out;type:numeric(14,2);not null;default:0"`
	BankOut            decimal.Decimal     `gorm:"column:bank_out;type:numeric(14,2);not null;default:0"`
	TotalInvoice       decimal.Decimal     `gorm:"column:total_invoice;type:numeric(14,2);not null;default:0"`
	DirectCosts        decimal.Decimal     `gorm:"column:direct_costs;type:numeric(14,2);not null;default:0"`
	OperatingExpenses  decimal.Decimal     `gorm:"column:operating_expenses;type:numeric(14,2);not null;default:0"`
	ElectricityCost    decimal.Decimal     `gorm:"column:electricity_cost;type:numeric(14,2);not null;default:0"`
	GrossProfit        decimal.Decimal     `gorm:"column:gross_profit;type:numeric(14,2);not null;default:0"`
	DevCut             decimal.Decimal     `gorm:"column:dev_cut;type:numeric(14,2);not null;default:0"`
	DevPercentSnapshot decimal.Decimal     `gorm:"column:dev_percent_snapshot;type:numeric(14,2);not null;default:0"`
	NetProfitPaid      decimal.Decimal     `gorm:"column:net_profit_paid;type:numeric(14,2);not null;default:0"`
	Partners           types.PartnerShares `gorm:"column:partners;type:jsonb;serializer:json"`
	ArchiveID          *uuid.UUID          `gorm:"column:archive_id;type:uuid"`
	Notes              *string             `gorm:"column:notes;type:text"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
}
