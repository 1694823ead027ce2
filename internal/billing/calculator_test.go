package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

func testPricing() types.Pricing {
	return types.Pricing{
		LaptopRate:      decimal.NewFromInt(10),
		MobileRate:      decimal.NewFromInt(7),
		LaptopPlaceCost: decimal.NewFromInt(2),
		MobilePlaceCost: decimal.RequireFromString("1.5"),
		DevPercent:      decimal.NewFromInt(10),
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestCompute_SimpleLaptopSession(t *testing.T) {
	// 10:00 to 12:30 on a laptop at 10/h
	inv, err := Compute(at(10, 0), at(12, 30), enums.DeviceTypeLaptop, nil, nil, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if inv.DurationMinutes != 150 {
		t.Fatalf("expected 150 minutes, got %d", inv.DurationMinutes)
	}
	if !inv.SessionCost.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected session cost 25, got %s", inv.SessionCost)
	}
	if !inv.TotalInvoice.Equal(decimal.NewFromInt(25)) {
		t.Fatalf("expected total invoice 25, got %s", inv.TotalInvoice)
	}
}

func TestCompute_DeviceSwitchSplitsSegments(t *testing.T) {
	events := types.SessionEvents{
		{At: at(11, 0), FromDevice: enums.DeviceTypeLaptop, ToDevice: enums.DeviceTypeMobile},
	}
	inv, err := Compute(at(10, 0), at(12, 0), enums.DeviceTypeLaptop, events, nil, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if len(inv.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(inv.Segments))
	}
	// 1h laptop (10) + 1h mobile (7)
	if !inv.SessionCost.Equal(decimal.NewFromInt(17)) {
		t.Fatalf("expected session cost 17, got %s", inv.SessionCost)
	}
	// 1h*2 + 1h*1.5 place cost
	if !inv.PlaceCost.Equal(decimal.RequireFromString("3.5")) {
		t.Fatalf("expected place cost 3.5, got %s", inv.PlaceCost)
	}
}

func TestCompute_ZeroAndNegativeDurationClamp(t *testing.T) {
	inv, err := Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, nil, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !inv.SessionCost.IsZero() {
		t.Fatalf("zero duration must cost zero, got %s", inv.SessionCost)
	}

	inv, err = Compute(at(12, 0), at(10, 0), enums.DeviceTypeLaptop, nil, nil, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if inv.SessionCost.IsNegative() || inv.TotalInvoice.IsNegative() {
		t.Fatalf("negative duration must clamp, got cost %s invoice %s", inv.SessionCost, inv.TotalInvoice)
	}
}

func TestCompute_OrdersPartitionAndDefaults(t *testing.T) {
	orders := types.OrderItems{
		{Name: "cola", Quantity: 2, UnitPrice: decimal.NewFromInt(3), UnitCost: decimal.NewFromInt(1)},
		{Name: "card", Type: enums.OrderTypeInternetCard, Quantity: 1, UnitPrice: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(4)},
	}
	inv, err := Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, orders, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	// untyped order defaults to drink
	if !inv.DrinksInvoice.Equal(decimal.NewFromInt(6)) || !inv.DrinksCost.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("drinks mismatch: inv %s cost %s", inv.DrinksInvoice, inv.DrinksCost)
	}
	if !inv.CardsInvoice.Equal(decimal.NewFromInt(5)) || !inv.CardsCost.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("cards mismatch: inv %s cost %s", inv.CardsInvoice, inv.CardsCost)
	}
	if !inv.TotalInvoice.Equal(decimal.NewFromInt(11)) {
		t.Fatalf("expected total 11, got %s", inv.TotalInvoice)
	}
}

func TestCompute_DiscountClampAndLock(t *testing.T) {
	orders := types.OrderItems{
		{Name: "cola", Quantity: 1, UnitPrice: decimal.NewFromInt(100), UnitCost: decimal.NewFromInt(10)},
	}
	discount := &types.Discount{Type: enums.DiscountTypeFixed, Value: decimal.NewFromInt(150)}

	inv, err := Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, orders, discount, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !inv.DiscountAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("discount must clamp to raw total, got %s", inv.DiscountAmount)
	}
	if !inv.TotalInvoice.IsZero() {
		t.Fatalf("invoice must never go negative, got %s", inv.TotalInvoice)
	}
	if inv.Discount == nil || !inv.Discount.Locked {
		t.Fatal("applied discount must be locked")
	}

	if _, err := Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, orders, inv.Discount, testPricing()); err == nil {
		t.Fatal("re-applying a locked discount must fail")
	}
}

func TestCompute_PercentDiscount(t *testing.T) {
	orders := types.OrderItems{
		{Name: "cola", Quantity: 1, UnitPrice: decimal.NewFromInt(200), UnitCost: decimal.Zero},
	}
	discount := &types.Discount{Type: enums.DiscountTypePercent, Value: decimal.NewFromInt(25)}
	inv, err := Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, orders, discount, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !inv.DiscountAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected percent discount 50, got %s", inv.DiscountAmount)
	}
	if !inv.TotalInvoice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected total 150, got %s", inv.TotalInvoice)
	}
}

func TestCompute_RoundHalfUpOnFinalInvoice(t *testing.T) {
	// 33 minutes of laptop time at 10/h is 5.5; rounds half up to 6
	inv, err := Compute(at(10, 0), at(10, 33), enums.DeviceTypeLaptop, nil, nil, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !inv.TotalInvoice.Equal(decimal.NewFromInt(6)) {
		t.Fatalf("expected rounded invoice 6, got %s", inv.TotalInvoice)
	}
}

func TestCompute_DevCutOnlyOnPositiveProfit(t *testing.T) {
	// costly orders push profit negative
	orders := types.OrderItems{
		{Name: "cola", Quantity: 1, UnitPrice: decimal.NewFromInt(5), UnitCost: decimal.NewFromInt(50)},
	}
	inv, err := Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, orders, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !inv.GrossProfit.IsNegative() {
		t.Fatalf("expected negative gross profit, got %s", inv.GrossProfit)
	}
	if !inv.DevCut.IsZero() {
		t.Fatalf("dev cut must be zero on losses, got %s", inv.DevCut)
	}

	profitable := types.OrderItems{
		{Name: "cola", Quantity: 1, UnitPrice: decimal.NewFromInt(100), UnitCost: decimal.Zero},
	}
	inv, err = Compute(at(10, 0), at(10, 0), enums.DeviceTypeLaptop, nil, profitable, nil, testPricing())
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}
	if !inv.DevCut.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected dev cut 10, got %s", inv.DevCut)
	}
	if !inv.NetProfit.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("expected net profit 90, got %s", inv.NetProfit)
	}
}
