package snapshot

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/internal/partners"
	"github.com/venuebooks/venuebooks-backend/pkg/config"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testRoster(t *testing.T) *partners.Roster {
	t.Helper()
	roster, err := partners.NewRoster(config.RosterSpec{
		{ID: "abu_khaled", Name: "Abu Khaled", Percent: dec("34")},
		{ID: "khaled", Name: "Khaled", Percent: dec("33")},
		{ID: "abdullah", Name: "Abdullah", Percent: dec("33")},
	})
	if err != nil {
		t.Fatalf("building roster: %v", err)
	}
	return roster
}

func testTariff() types.Pricing {
	return types.Pricing{
		LaptopRate:      dec("10"),
		MobileRate:      dec("7"),
		LaptopPlaceCost: dec("2"),
		MobilePlaceCost: dec("1.5"),
		DevPercent:      dec("10"),
	}
}

func entry(txType enums.TransactionType, amount string, dir enums.Direction, channel enums.Channel, dateKey string) models.LedgerEntry {
	ts, _ := types.ParseDateKey(dateKey)
	return models.LedgerEntry{
		ID:        uuid.New(),
		Timestamp: ts,
		DateKey:   dateKey,
		Type:      txType,
		Amount:    dec(amount),
		Direction: dir,
		Channel:   channel,
	}
}

func TestBuild_ProfitWaterfall(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "1000", enums.DirectionIn, enums.ChannelCash, "2026-03-10"),
		entry(enums.TransactionTypeIncomeProduct, "500", enums.DirectionIn, enums.ChannelBank, "2026-03-12"),
		entry(enums.TransactionTypeExpenseOperational, "200", enums.DirectionOut, enums.ChannelCash, "2026-03-15"),
	}

	snap := Build(BuildInput{
		Entries:     entries,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Pricing:     testTariff(),
		Roster:      testRoster(t),
	})

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"cash in", snap.CashIn, "1000"},
		{"bank in", snap.BankIn, "500"},
		{"cash out", snap.CashOut, "200"},
		{"total invoice", snap.TotalInvoice, "1500"},
		{"operating expenses", snap.OperatingExpenses, "200"},
		{"gross profit", snap.GrossProfit, "1300"},
		{"dev cut", snap.DevCut, "130"},
		{"net profit paid", snap.NetProfitPaid, "1170"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Errorf("%s: got %s, want %s", c.name, c.got, c.want)
		}
	}

	// the full distribution pays out exactly the net profit
	cash, bank := DistributionTotals(snap)
	if !cash.Add(bank).Equal(snap.NetProfitPaid) {
		t.Fatalf("distribution %s + %s does not sum to net profit %s", cash, bank, snap.NetProfitPaid)
	}

	if len(snap.Partners) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(snap.Partners))
	}
	if !snap.Partners[0].BaseShare.Equal(dec("397.8")) {
		t.Errorf("34%% share of 1170: got %s, want 397.8", snap.Partners[0].BaseShare)
	}
	if snap.Partners[0].PartnerID != "abu_khaled" {
		t.Errorf("share must carry the partner id, got %q", snap.Partners[0].PartnerID)
	}
}

func TestBuild_AutomaticExpensesStayOutOfCashFlow(t *testing.T) {
	auto := entry(enums.TransactionTypeExpenseOperational, "100", enums.DirectionOut, enums.ChannelCash, "2026-03-20")
	auto.Automatic = true

	entries := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "1000", enums.DirectionIn, enums.ChannelCash, "2026-03-10"),
		auto,
	}

	snap := Build(BuildInput{
		Entries:     entries,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Pricing:     testTariff(),
		Roster:      testRoster(t),
	})

	if !snap.CashOut.IsZero() {
		t.Errorf("accrued expense must not count as cash leaving: got %s", snap.CashOut)
	}
	if !snap.OperatingExpenses.Equal(dec("100")) {
		t.Errorf("accrued expense still reduces profit: got %s, want 100", snap.OperatingExpenses)
	}
	if !snap.GrossProfit.Equal(dec("900")) {
		t.Errorf("gross profit: got %s, want 900", snap.GrossProfit)
	}
}

func TestBuild_PendingBankTransfersExcluded(t *testing.T) {
	pending := enums.TransferStatusPending
	confirmed := enums.TransferStatusConfirmed

	unsettled := entry(enums.TransactionTypeIncomeSession, "300", enums.DirectionIn, enums.ChannelBank, "2026-03-05")
	unsettled.TransferStatus = &pending
	landed := entry(enums.TransactionTypeIncomeSession, "200", enums.DirectionIn, enums.ChannelBank, "2026-03-06")
	landed.TransferStatus = &confirmed

	snap := Build(BuildInput{
		Entries:     []models.LedgerEntry{unsettled, landed},
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Pricing:     testTariff(),
		Roster:      testRoster(t),
	})

	if !snap.BankIn.Equal(dec("200")) {
		t.Fatalf("pending transfer must not count: got %s, want 200", snap.BankIn)
	}
}

func TestBuild_PartnerAdjustmentsShiftPayout(t *testing.T) {
	partnerID := "khaled"

	purchase := entry(enums.TransactionTypePartnerDeposit, "80", enums.DirectionIn, enums.ChannelCash, "2026-03-11")
	purchase.PartnerID = &partnerID
	purchase.Description = "goods purchase funded by partner: chairs"
	withdrawal := entry(enums.TransactionTypePartnerWithdrawal, "50", enums.DirectionOut, enums.ChannelCash, "2026-03-12")
	withdrawal.PartnerID = &partnerID

	entries := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "1000", enums.DirectionIn, enums.ChannelCash, "2026-03-10"),
		purchase,
		withdrawal,
	}

	snap := Build(BuildInput{
		Entries:     entries,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Pricing:     testTariff(),
		Roster:      testRoster(t),
	})

	var share types.PartnerShare
	for _, s := range snap.Partners {
		if s.PartnerID == partnerID {
			share = s
		}
	}
	if !share.MyPurchases.Equal(dec("80")) {
		t.Errorf("purchases: got %s, want 80", share.MyPurchases)
	}
	if !share.MyWithdrawals.Equal(dec("50")) {
		t.Errorf("withdrawals: got %s, want 50", share.MyWithdrawals)
	}

	// the split stays adjustment-free; the final payout folds them in
	if !share.CashShareAvailable.Equal(share.BaseShare.Mul(share.CashRatio)) {
		t.Errorf("cash share: got %s, want %s", share.CashShareAvailable, share.BaseShare.Mul(share.CashRatio))
	}
	expected := share.CashShareAvailable.Add(dec("80")).Sub(dec("50"))
	if !share.FinalPayoutCash.Equal(expected) {
		t.Errorf("cash payout: got %s, want %s", share.FinalPayoutCash, expected)
	}
}

func TestBuild_LossPaysNothing(t *testing.T) {
	entries := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "100", enums.DirectionIn, enums.ChannelCash, "2026-03-10"),
		entry(enums.TransactionTypeExpenseOperational, "400", enums.DirectionOut, enums.ChannelCash, "2026-03-15"),
	}

	snap := Build(BuildInput{
		Entries:     entries,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Pricing:     testTariff(),
		Roster:      testRoster(t),
	})

	if !snap.GrossProfit.Equal(dec("-300")) {
		t.Fatalf("gross profit: got %s, want -300", snap.GrossProfit)
	}
	if !snap.DevCut.IsZero() {
		t.Errorf("no dev cut on a loss: got %s", snap.DevCut)
	}
	for _, share := range snap.Partners {
		if !share.BaseShare.IsZero() {
			t.Errorf("partner %s must not receive a base share on a loss: got %s", share.PartnerID, share.BaseShare)
		}
	}
}

func TestBuild_DirectCostsFromClosedRecords(t *testing.T) {
	inPeriod := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	outOfPeriod := time.Date(2026, 4, 2, 22, 0, 0, 0, time.UTC)

	records := []models.SessionRecord{
		{ID: uuid.New(), EndedAt: &inPeriod, DrinksCost: dec("30"), CardsCost: dec("20"), PlaceCost: dec("10")},
		{ID: uuid.New(), EndedAt: &outOfPeriod, DrinksCost: dec("999"), CardsCost: dec("999"), PlaceCost: dec("999")},
		{ID: uuid.New(), DrinksCost: dec("5")},
	}

	snap := Build(BuildInput{
		Records:     records,
		PeriodStart: "2026-03-01",
		PeriodEnd:   "2026-03-31",
		Pricing:     testTariff(),
		Roster:      testRoster(t),
	})

	if !snap.DirectCosts.Equal(dec("60")) {
		t.Fatalf("direct costs: got %s, want 60", snap.DirectCosts)
	}
}
