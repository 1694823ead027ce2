package snapshot

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/internal/ledger"
	"github.com/venuebooks/venuebooks-backend/internal/partners"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// BuildInput carries everything a period close aggregates over.
type BuildInput struct {
	Entries         []models.LedgerEntry
	Records         []models.SessionRecord
	PeriodStart     string
	PeriodEnd       string
	ElectricityCost decimal.Decimal
	Pricing         types.Pricing
	Roster          *partners.Roster
}

// isVirtualExpense identifies accrual-synthesized operational expenses. They
// are bookkeeping markers, not cash that left the till, so period outflow
// excludes them.
func isVirtualExpense(e models.LedgerEntry) bool {
	return e.Type == enums.TransactionTypeExpenseOperational && e.Automatic
}

// Build aggregates one settlement period into an immutable closing snapshot,
// including the per-partner distribution. The result is a historical record:
// it is never recomputed from a changed ledger.
func Build(input BuildInput) *models.InventorySnapshot {
	var period []models.LedgerEntry
	for _, e := range input.Entries {
		if e.DateKey >= input.PeriodStart && e.DateKey <= input.PeriodEnd {
			period = append(period, e)
		}
	}

	cashIn, bankIn := decimal.Zero, decimal.Zero
	cashOut, bankOut := decimal.Zero, decimal.Zero
	for _, e := range period {
		switch {
		case e.Channel == enums.ChannelCash && e.Direction == enums.DirectionIn:
			cashIn = cashIn.Add(e.Amount)
		case e.Channel == enums.ChannelBank && e.Direction == enums.DirectionIn:
			if e.TransferStatus == nil || *e.TransferStatus == enums.TransferStatusConfirmed {
				bankIn = bankIn.Add(e.Amount)
			}
		case e.Channel == enums.ChannelCash && e.Direction == enums.DirectionOut:
			if !isVirtualExpense(e) {
				cashOut = cashOut.Add(e.Amount)
			}
		case e.Channel == enums.ChannelBank && e.Direction == enums.DirectionOut:
			if !isVirtualExpense(e) {
				bankOut = bankOut.Add(e.Amount)
			}
		}
	}

	netCashInPlace := cashIn.Sub(cashOut)
	netBankInPlace := bankIn.Sub(bankOut)

	directCosts := decimal.Zero
	for _, r := range input.Records {
		if r.EndedAt == nil {
			continue
		}
		endKey := types.DateKey(*r.EndedAt)
		if endKey < input.PeriodStart || endKey > input.PeriodEnd {
			continue
		}
		directCosts = directCosts.Add(r.DrinksCost).Add(r.CardsCost).Add(r.PlaceCost)
	}

	opExpenses := input.ElectricityCost
	loanRepayments := decimal.Zero
	totalInvoice := decimal.Zero
	for _, e := range period {
		switch e.Type {
		case enums.TransactionTypeExpenseOperational, enums.TransactionTypeExpensePurchase:
			opExpenses = opExpenses.Add(e.Amount)
		case enums.TransactionTypeLoanRepayment:
			loanRepayments = loanRepayments.Add(e.Amount)
		}
		switch e.Type {
		case enums.TransactionTypeIncomeSession, enums.TransactionTypeIncomeProduct, enums.TransactionTypeDebtCreate:
			totalInvoice = totalInvoice.Add(e.Amount)
		}
	}

	grossProfit := totalInvoice.Sub(opExpenses).Sub(loanRepayments).Sub(directCosts)
	devCut := decimal.Zero
	if grossProfit.IsPositive() {
		devCut = grossProfit.Mul(input.Pricing.DevPercent).Div(hundred)
	}
	netProfitPaid := grossProfit.Sub(devCut)

	shares := make(types.PartnerShares, 0, len(input.Roster.All()))
	for _, partner := range input.Roster.All() {
		baseShare := netProfitPaid.Mul(partner.Percent).Div(hundred)
		if baseShare.IsNegative() {
			baseShare = decimal.Zero
		}

		myPurchases, myWithdrawals := decimal.Zero, decimal.Zero
		for _, e := range period {
			if e.PartnerID == nil || *e.PartnerID != partner.ID {
				continue
			}
			switch {
			case e.Type == enums.TransactionTypePartnerDeposit && ledger.HasPurchaseMarker(e.Description):
				myPurchases = myPurchases.Add(e.Amount)
			case e.Type == enums.TransactionTypePartnerWithdrawal:
				myWithdrawals = myWithdrawals.Add(e.Amount)
			}
		}

		// purchases and withdrawals are assumed cash when splitting the share
		opsNetCash := netCashInPlace.Add(myPurchases).Add(myWithdrawals)
		opsNetBank := netBankInPlace
		totalOpsNet := opsNetCash.Add(opsNetBank)

		cashRatio := half
		if totalOpsNet.IsPositive() {
			cashRatio = decimal.Max(decimal.Zero, opsNetCash).Div(totalOpsNet)
		}
		bankRatio := decimal.NewFromInt(1).Sub(cashRatio)
		cashShare := baseShare.Mul(cashRatio)
		bankShare := baseShare.Mul(bankRatio)

		shares = append(shares, types.PartnerShare{
			PartnerID:          partner.ID,
			PartnerName:        partner.Name,
			Percent:            partner.Percent,
			BaseShare:          baseShare,
			MyPurchases:        myPurchases,
			MyWithdrawals:      myWithdrawals,
			OpsNetCash:         opsNetCash,
			CashRatio:          cashRatio,
			CashShareAvailable: cashShare,
			BankShareAvailable: bankShare,
			FinalPayoutCash:    cashShare.Add(myPurchases).Sub(myWithdrawals),
			FinalPayoutBank:    bankShare,
		})
	}

	return &models.InventorySnapshot{
		ID:                 uuid.New(),
		PeriodStart:        input.PeriodStart,
		PeriodEnd:          input.PeriodEnd,
		CashIn:             cashIn,
		BankIn:             bankIn,
		CashOut:            cashOut,
		BankOut:            bankOut,
		TotalInvoice:       totalInvoice,
		DirectCosts:        directCosts,
		OperatingExpenses:  opExpenses,
		ElectricityCost:    input.ElectricityCost,
		GrossProfit:        grossProfit,
		DevCut:             devCut,
		DevPercentSnapshot: input.Pricing.DevPercent,
		NetProfitPaid:      netProfitPaid,
		Partners:           shares,
		CreatedAt:          time.Now().UTC(),
	}
}

// DistributionTotals sums the cash and bank sides of a snapshot's partner
// distribution.
func DistributionTotals(snap *models.InventorySnapshot) (cash, bank decimal.Decimal) {
	cash, bank = decimal.Zero, decimal.Zero
	for _, share := range snap.Partners {
		cash = cash.Add(share.FinalPayoutCash)
		bank = bank.Add(share.FinalPayoutBank)
	}
	return cash, bank
}
