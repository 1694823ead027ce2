package types

import (
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// Discount is the single optional reduction applied to a session invoice.
// Amount and Locked are written by the billing calculator at close time; a
// locked discount can never be applied again.
type Discount struct {
	Type   enums.DiscountType `json:"type"`
	Value  decimal.Decimal    `json:"value"`
	Amount decimal.Decimal    `json:"amount"`
	Locked bool               `json:"locked"`
}
