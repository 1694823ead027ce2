package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

var (
	sixty   = decimal.NewFromInt(60)
	hundred = decimal.NewFromInt(100)
)

// Invoice is the complete financial outcome of closing a session. Rate
// snapshots and billed segments ride along so the invoice stays reproducible
// after tariff changes.
type Invoice struct {
	DurationMinutes int64
	SessionCost     decimal.Decimal
	DrinksInvoice   decimal.Decimal
	CardsInvoice    decimal.Decimal
	RawTotal        decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalInvoice    decimal.Decimal
	PlaceCost       decimal.Decimal
	DrinksCost      decimal.Decimal
	CardsCost       decimal.Decimal
	GrossProfit     decimal.Decimal
	DevCut          decimal.Decimal
	NetProfit       decimal.Decimal
	Discount        *types.Discount
	Segments        types.SessionSegments
	Pricing         types.Pricing
}

// ComputeSegments partitions [start, end] into contiguous billing slices
// bounded by device switches. Each slice is billed at its device's tariff.
// Negative or zero durations clamp to zero cost rather than failing.
func ComputeSegments(start, end time.Time, initialDevice enums.DeviceType, events types.SessionEvents, pricing types.Pricing) types.SessionSegments {
	segments := make(types.SessionSegments, 0, len(events)+1)

	device := initialDevice
	if device == "" {
		device = enums.DeviceTypeLaptop
	}
	cursor := start

	appendSegment := func(segEnd time.Time) {
		minutes := decimal.NewFromFloat(segEnd.Sub(cursor).Minutes())
		if minutes.IsNegative() {
			minutes = decimal.Zero
		}
		hours := minutes.Div(sixty)
		segments = append(segments, types.SessionSegment{
			Device:          device,
			Start:           cursor,
			End:             segEnd,
			DurationMinutes: minutes,
			Cost:            hours.Mul(pricing.HourlyRate(device)),
			PlaceCost:       hours.Mul(pricing.PlaceCostRate(device)),
		})
	}

	for _, event := range events {
		at := event.At
		if at.Before(cursor) {
			at = cursor
		}
		if at.After(end) {
			at = end
		}
		appendSegment(at)
		cursor = at
		device = event.ToDevice
	}
	appendSegment(end)

	return segments
}

// Compute turns a session timeline plus orders into a final invoice.
// Applying a discount that is already locked is rejected; the caller must
// never re-bill a settled record.
func Compute(start, end time.Time, initialDevice enums.DeviceType, events types.SessionEvents, orders types.OrderItems, discount *types.Discount, pricing types.Pricing) (Invoice, error) {
	segments := ComputeSegments(start, end, initialDevice, events, pricing)

	sessionCost, placeCost := decimal.Zero, decimal.Zero
	totalMinutes := decimal.Zero
	for _, seg := range segments {
		sessionCost = sessionCost.Add(seg.Cost)
		placeCost = placeCost.Add(seg.PlaceCost)
		totalMinutes = totalMinutes.Add(seg.DurationMinutes)
	}

	drinksInvoice, cardsInvoice := decimal.Zero, decimal.Zero
	drinksCost, cardsCost := decimal.Zero, decimal.Zero
	for _, raw := range orders {
		order := raw.Normalize()
		switch order.Type {
		case enums.OrderTypeInternetCard:
			cardsInvoice = cardsInvoice.Add(order.SalePrice())
			cardsCost = cardsCost.Add(order.CostBasis())
		default:
			drinksInvoice = drinksInvoice.Add(order.SalePrice())
			drinksCost = drinksCost.Add(order.CostBasis())
		}
	}

	rawTotal := sessionCost.Add(drinksInvoice).Add(cardsInvoice)

	discountAmount := decimal.Zero
	var frozen *types.Discount
	if discount != nil {
		if discount.Locked {
			return Invoice{}, pkgerrors.New(pkgerrors.CodeStateConflict, "discount is already locked")
		}
		if discount.Type == enums.DiscountTypeFixed {
			discountAmount = discount.Value
		} else {
			discountAmount = rawTotal.Mul(discount.Value).Div(hundred)
		}
		discountAmount = decimal.Min(discountAmount, rawTotal)
		frozen = &types.Discount{
			Type:   discount.Type,
			Value:  discount.Value,
			Amount: discountAmount,
			Locked: true,
		}
	}

	// round half up to the nearest currency unit
	totalInvoice := rawTotal.Sub(discountAmount).Round(0)
	directCost := placeCost.Add(drinksCost).Add(cardsCost)
	grossProfit := totalInvoice.Sub(directCost)

	devCut := decimal.Zero
	if grossProfit.IsPositive() {
		devCut = grossProfit.Mul(pricing.DevPercent).Div(hundred)
	}

	return Invoice{
		DurationMinutes: totalMinutes.IntPart(),
		SessionCost:     sessionCost,
		DrinksInvoice:   drinksInvoice,
		CardsInvoice:    cardsInvoice,
		RawTotal:        rawTotal,
		DiscountAmount:  discountAmount,
		TotalInvoice:    totalInvoice,
		PlaceCost:       placeCost,
		DrinksCost:      drinksCost,
		CardsCost:       cardsCost,
		GrossProfit:     grossProfit,
		DevCut:          devCut,
		NetProfit:       grossProfit.Sub(devCut),
		Discount:        frozen,
		Segments:        segments,
		Pricing:         pricing,
	}, nil
}
