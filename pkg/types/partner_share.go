package types

import "github.com/shopspring/decimal"

// PartnerShare is one partner's allocation inside a period snapshot. All
// inputs that produced the payout are recorded alongside it so the
// distribution can be audited without replaying the period.
type PartnerShare struct {
	PartnerID     string          `json:"partner_id"`
	PartnerName   string          `json:"partner_name"`
	Percent       decimal.Decimal `json:"percent"`
	BaseShare     decimal.Decimal `json:"base_share"`
	MyPurchases   decimal.Decimal `json:"my_purchases"`
	MyWithdrawals decimal.Decimal `json:"my_withdrawals"`
	OpsNetCash    decimal.Decimal `json:"ops_net_cash"`
	CashRatio     decimal.Decimal `json:"cash_ratio"`

	// CashShareAvailable and BankShareAvailable hold the base share split
	// before purchase reimbursements and withdrawals are applied; the final
	// payouts fold those adjustments in.
	CashShareAvailable decimal.Decimal `json:"cash_share_available"`
	BankShareAvailable decimal.Decimal `json:"bank_share_available"`
	FinalPayoutCash    decimal.Decimal `json:"final_payout_cash"`
	FinalPayoutBank    decimal.Decimal `json:"final_payout_bank"`
}

// PartnerShares is stored as a JSON column on the period snapshot.
type PartnerShares []PartnerShare

// TotalPayout sums cash and bank payouts across all shares.
func (s PartnerShares) TotalPayout() decimal.Decimal {
	total := decimal.Zero
	for _, share := range s {
		total = total.Add(share.FinalPayoutCash).Add(share.FinalPayoutBank)
	}
	return total
}
