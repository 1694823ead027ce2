package types

import (
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// OrderItem is a sold product attached to a session.
type OrderItem struct {
	Name      string          `json:"name"`
	Type      enums.OrderType `json:"type"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// OrderItems is stored as a JSON column on the session record.
type OrderItems []OrderItem

// Normalize applies boundary defaults: items without a type were drinks in
// the imported history.
func (o OrderItem) Normalize() OrderItem {
	if o.Type == "" {
		o.Type = enums.OrderTypeDrink
	}
	if o.Quantity <= 0 {
		o.Quantity = 1
	}
	return o
}

// SalePrice is quantity times unit price.
func (o OrderItem) SalePrice() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(o.Quantity))
}

// CostBasis is quantity times unit cost.
func (o OrderItem) CostBasis() decimal.Decimal {
	return o.UnitCost.Mul(decimal.NewFromInt(o.Quantity))
}
