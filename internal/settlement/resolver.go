package settlement

import (
	"github.com/shopspring/decimal"
)

// Resolution is the full breakdown of netting one payment event against a
// customer's standing balances. At most one of FinalCredit and FinalDebt is
// non-zero.
type Resolution struct {
	TotalDue      decimal.Decimal `json:"total_due"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	AppliedCredit decimal.Decimal `json:"applied_credit"`
	CreatedDebt   decimal.Decimal `json:"created_debt"`
	CreatedCredit decimal.Decimal `json:"created_credit"`
	SettledDebt   decimal.Decimal `json:"settled_debt"`
	FinalCredit   decimal.Decimal `json:"final_credit"`
	FinalDebt     decimal.Decimal `json:"final_debt"`
	IsFullyPaid   bool            `json:"is_fully_paid"`
}

// Resolve nets a due amount against the customer's standing credit and debt.
// Credit is consumed first; any payment surplus becomes new credit and any
// shortfall becomes new debt; then the two sides are netted so at most one
// survives. Pure and deterministic: the same inputs always produce the same
// breakdown, and no output balance can go negative.
func Resolve(totalDue, paidAmount, creditBalance, debtBalance decimal.Decimal) Resolution {
	appliedCredit := decimal.Min(creditBalance, totalDue)
	dueAfterCredit := totalDue.Sub(appliedCredit)
	delta := paidAmount.Sub(dueAfterCredit)

	createdDebt, createdCredit := decimal.Zero, decimal.Zero
	if delta.IsPositive() {
		createdCredit = delta
	} else if delta.IsNegative() {
		createdDebt = delta.Abs()
	}

	preSettleDebt := debtBalance.Add(createdDebt)
	preSettleCredit := creditBalance.Sub(appliedCredit).Add(createdCredit)
	settled := decimal.Min(preSettleDebt, preSettleCredit)

	finalDebt := preSettleDebt.Sub(settled)
	return Resolution{
		TotalDue:      totalDue,
		PaidAmount:    paidAmount,
		AppliedCredit: appliedCredit,
		CreatedDebt:   createdDebt,
		CreatedCredit: createdCredit,
		SettledDebt:   settled,
		FinalCredit:   preSettleCredit.Sub(settled),
		FinalDebt:     finalDebt,
		IsFullyPaid:   finalDebt.IsZero(),
	}
}
