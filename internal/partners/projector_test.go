package partners

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestProject_MergesAllSources(t *testing.T) {
	partnerID := "khaled"
	other := "abdullah"

	snapshots := []models.InventorySnapshot{
		{
			ID:          uuid.New(),
			PeriodStart: "2026-01-01",
			PeriodEnd:   "2026-01-31",
			Partners: types.PartnerShares{
				{PartnerID: partnerID, CashShareAvailable: dec("300"), BankShareAvailable: dec("100")},
				{PartnerID: other, CashShareAvailable: dec("500")},
			},
		},
	}
	purchases := []models.Purchase{
		{
			ID: uuid.New(), Description: "chairs", Amount: dec("80"),
			FundingSource: enums.FundingSourcePartner, BuyerID: &partnerID,
			PaymentMethod: enums.ChannelCash, DateKey: "2026-02-10",
		},
		{
			ID: uuid.New(), Description: "ice", Amount: dec("20"),
			FundingSource: enums.FundingSourcePlace,
			PaymentMethod: enums.ChannelCash, DateKey: "2026-02-11",
		},
	}
	debts := []models.DebtItem{
		{
			ID: uuid.New(), PartnerID: partnerID, Source: enums.DebtSourcePlace,
			Channel: enums.ChannelCash, Amount: dec("50"), DateKey: "2026-02-15",
		},
		{
			ID: uuid.New(), PartnerID: partnerID, Source: enums.DebtSourceExternal,
			Channel: enums.ChannelCash, Amount: dec("999"), DateKey: "2026-02-16",
		},
	}

	items := Project(partnerID, snapshots, purchases, debts)

	// cash share, bank share, own purchase, place withdrawal
	if len(items) != 4 {
		t.Fatalf("expected 4 items, got %d: %+v", len(items), items)
	}

	var shares, reimbursements, withdrawals int
	for _, item := range items {
		switch item.Type {
		case enums.PartnerLedgerItemTypeProfitShare:
			shares++
		case enums.PartnerLedgerItemTypePurchaseReimbursement:
			reimbursements++
			if !item.Amount.Equal(dec("80")) {
				t.Fatalf("reimbursement amount mismatch: %s", item.Amount)
			}
		case enums.PartnerLedgerItemTypeWithdrawal:
			withdrawals++
			if !item.Amount.Equal(dec("-50")) {
				t.Fatalf("withdrawal must be negated: %s", item.Amount)
			}
		}
	}
	if shares != 2 || reimbursements != 1 || withdrawals != 1 {
		t.Fatalf("unexpected mix: shares=%d reimb=%d withdrawals=%d", shares, reimbursements, withdrawals)
	}
}

func TestProject_AdjustmentsNotDoubleCounted(t *testing.T) {
	partnerID := "khaled"

	// The snapshot already folded the purchase and the withdrawal into the
	// final payout; the history must not apply them a second time.
	snapshots := []models.InventorySnapshot{
		{
			ID:          uuid.New(),
			PeriodStart: "2026-02-01",
			PeriodEnd:   "2026-02-28",
			Partners: types.PartnerShares{
				{
					PartnerID:          partnerID,
					CashShareAvailable: dec("100"),
					MyPurchases:        dec("80"),
					MyWithdrawals:      dec("50"),
					FinalPayoutCash:    dec("130"),
				},
			},
		},
	}
	purchases := []models.Purchase{
		{
			ID: uuid.New(), Description: "fridge", Amount: dec("80"),
			FundingSource: enums.FundingSourcePartner, BuyerID: &partnerID,
			PaymentMethod: enums.ChannelCash, DateKey: "2026-02-10",
		},
	}
	debts := []models.DebtItem{
		{
			ID: uuid.New(), PartnerID: partnerID, Source: enums.DebtSourcePlace,
			Channel: enums.ChannelCash, Amount: dec("50"), DateKey: "2026-02-15",
		},
	}

	items := Project(partnerID, snapshots, purchases, debts)

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Amount)
	}
	if !total.Equal(dec("130")) {
		t.Fatalf("history must net to the final payout 130, got %s", total)
	}
}

func TestProject_SkipsZeroShares(t *testing.T) {
	partnerID := "khaled"
	snapshots := []models.InventorySnapshot{
		{
			ID:        uuid.New(),
			PeriodEnd: "2026-01-31",
			Partners: types.PartnerShares{
				{PartnerID: partnerID, CashShareAvailable: decimal.Zero, BankShareAvailable: decimal.Zero},
			},
		},
	}
	if items := Project(partnerID, snapshots, nil, nil); len(items) != 0 {
		t.Fatalf("zero shares must not project, got %+v", items)
	}
}

func TestProject_DescendingDateOrder(t *testing.T) {
	partnerID := "khaled"
	purchases := []models.Purchase{
		{ID: uuid.New(), Description: "old", Amount: dec("10"), FundingSource: enums.FundingSourcePartner, BuyerID: &partnerID, PaymentMethod: enums.ChannelCash, DateKey: "2026-01-05"},
		{ID: uuid.New(), Description: "new", Amount: dec("10"), FundingSource: enums.FundingSourcePartner, BuyerID: &partnerID, PaymentMethod: enums.ChannelCash, DateKey: "2026-03-05"},
	}
	items := Project(partnerID, nil, purchases, nil)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Date < items[1].Date {
		t.Fatalf("items must sort newest first: %s before %s", items[0].Date, items[1].Date)
	}
}
