package types

import (
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// Pricing carries the per-hour tariffs and internal place costs for each
// device class, plus the developer profit cut. Values are loaded from config
// and snapshotted onto closed records.
type Pricing struct {
	LaptopRate      decimal.Decimal
	MobileRate      decimal.Decimal
	LaptopPlaceCost decimal.Decimal
	MobilePlaceCost decimal.Decimal
	DevPercent      decimal.Decimal
}

// HourlyRate returns the customer-facing tariff for a device class.
func (p Pricing) HourlyRate(device enums.DeviceType) decimal.Decimal {
	if device == enums.DeviceTypeMobile {
		return p.MobileRate
	}
	return p.LaptopRate
}

// PlaceCostRate returns the internal hourly cost for a device class.
func (p Pricing) PlaceCostRate(device enums.DeviceType) decimal.Decimal {
	if device == enums.DeviceTypeMobile {
		return p.MobilePlaceCost
	}
	return p.LaptopPlaceCost
}
