package partners

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// LedgerItem is one derived row in a partner's reconstructed history. Rows
// are projections over snapshots, purchases, and debts; nothing here is
// persisted.
type LedgerItem struct {
	ID          uuid.UUID                   `json:"id"`
	Date        string                      `json:"date"`
	Type        enums.PartnerLedgerItemType `json:"type"`
	Channel     enums.Channel               `json:"channel"`
	Amount      decimal.Decimal             `json:"amount"`
	Description string                      `json:"description"`
	RefID       uuid.UUID                   `json:"ref_id"`
}

// Project merges three sources into one partner's history, newest first:
// profit shares from snapshots where the partner's cash or bank share is
// positive, reimbursements for purchases the partner funded, and negated
// withdrawals for debts drawn from the till.
func Project(partnerID string, snapshots []models.InventorySnapshot, purchases []models.Purchase, debts []models.DebtItem) []LedgerItem {
	items := make([]LedgerItem, 0)

	// Profit-share rows carry the pre-adjustment split. Purchase
	// reimbursements and withdrawals get their own rows below, so projecting
	// the final payouts here would count them twice.
	for _, snap := range snapshots {
		for _, share := range snap.Partners {
			if share.PartnerID != partnerID {
				continue
			}
			if share.CashShareAvailable.IsPositive() {
				items = append(items, LedgerItem{
					ID:          uuid.New(),
					Date:        snap.PeriodEnd,
					Type:        enums.PartnerLedgerItemTypeProfitShare,
					Channel:     enums.ChannelCash,
					Amount:      share.CashShareAvailable,
					Description: fmt.Sprintf("cash profit share %s..%s", snap.PeriodStart, snap.PeriodEnd),
					RefID:       snap.ID,
				})
			}
			if share.BankShareAvailable.IsPositive() {
				items = append(items, LedgerItem{
					ID:          uuid.New(),
					Date:        snap.PeriodEnd,
					Type:        enums.PartnerLedgerItemTypeProfitShare,
					Channel:     enums.ChannelBank,
					Amount:      share.BankShareAvailable,
					Description: fmt.Sprintf("bank profit share %s..%s", snap.PeriodStart, snap.PeriodEnd),
					RefID:       snap.ID,
				})
			}
		}
	}

	for _, p := range purchases {
		if p.FundingSource != enums.FundingSourcePartner || p.BuyerID == nil || *p.BuyerID != partnerID {
			continue
		}
		items = append(items, LedgerItem{
			ID:          p.ID,
			Date:        p.DateKey,
			Type:        enums.PartnerLedgerItemTypePurchaseReimbursement,
			Channel:     p.PaymentMethod,
			Amount:      p.Amount,
			Description: fmt.Sprintf("venue purchase: %s", p.Description),
			RefID:       p.ID,
		})
	}

	for _, d := range debts {
		if d.PartnerID != partnerID || d.Source != enums.DebtSourcePlace {
			continue
		}
		items = append(items, LedgerItem{
			ID:          d.ID,
			Date:        d.DateKey,
			Type:        enums.PartnerLedgerItemTypeWithdrawal,
			Channel:     d.Channel,
			Amount:      d.Amount.Abs().Neg(),
			Description: "withdrawal",
			RefID:       d.ID,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Date > items[j].Date
	})
	return items
}
