package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// SessionRecord is a venue visit: the timeline of device switches, any
// product orders, and the financial outcome computed when the session is
// closed. Rate columns snapshot the tariff the session was billed with.
type SessionRecord struct {
	ID              uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	CustomerID      *uuid.UUID            `gorm:"column:customer_id;type:uuid;index"`
	CustomerName    string                `gorm:"column:customer_name;type:text"`
	StartedAt       time.Time             `gorm:"column:started_at;not null"`
	EndedAt         *time.Time            `gorm:"column:ended_at"`
	DateKey         string                `gorm:"column:date_key;type:text;not null;index"`
	InitialDevice   enums.DeviceType      `gorm:"column:initial_device;type:text;not null;default:'laptop'"`
	Events          types.SessionEvents   `gorm:"column:events;type:jsonb;serializer:json"`
	Orders          types.OrderItems      `gorm:"column:orders;type:jsonb;serializer:json"`
	Discount        *types.Discount       `gorm:"column:discount;type:jsonb;serializer:json"`
	Segments        types.SessionSegments `gorm:"column:segments;type:jsonb;serializer:json"`
	LaptopRate      decimal.Decimal       `gorm:"column:laptop_rate;type:numeric(14,2);not null"`
	MobileRate      decimal.Decimal       `gorm:"column:mobile_rate;type:numeric(14,2);not null"`
	LaptopPlaceCost decimal.Decimal       `gorm:"column:laptop_place_cost;type:numeric(14,2);not null"`
	MobilePlaceCost decimal.Decimal       `gorm:"column:mobile_place_cost;type:numeric(14,2);not null"`
	SessionCost     decimal.Decimal       `gorm:"column:session_cost;type:numeric(14,2);not null;default:0"`
	OrdersTotal     decimal.Decimal       `gorm:"column:orders_total;type:numeric(14,2);not null;default:0"`
	DiscountAmount  decimal.Decimal       `gorm:"column:discount_amount;type:numeric(14,2);not null;default:0"`
	TotalInvoice    decimal.Decimal       `gorm:"column:total_invoice;type:numeric(14,2);not null;default:0"`
	PlaceCost       decimal.Decimal       `gorm:"column:place_cost;type:numeric(14,2);not null;default:0"`
	DrinksCost      decimal.Decimal       `gorm:"column:drinks_cost;type:numeric(14,2);not null;default:0"`
	CardsCost       decimal.Decimal       `gorm:"column:cards_cost;type:numeric(14,2);not null;default:0"`
	NetProfit       decimal.Decimal       `gorm:"column:net_profit;type:numeric(14,2);not null;default:0"`
	DevCut          decimal.Decimal       `gorm:"column:dev_cut;type:numeric(14,2);not null;default:0"`
	PaidAmount      decimal.Decimal       `gorm:"column:paid_amount;type:numeric(14,2);not null;default:0"`
	PaymentChannel  *enums.Channel        `gorm:"column:payment_channel;type:text"`
	IsClosed        bool                  `gorm:"column:is_closed;not null;default:false"`
	Notes           *string               `gorm:"column:notes;type:text"`
	CreatedAt       time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
