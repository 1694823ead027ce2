package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// PeriodStats aggregates a date range of the ledger for reporting.
type PeriodStats struct {
	Income        decimal.Decimal `json:"income"`
	SessionIncome decimal.Decimal `json:"session_income"`
	ProductIncome decimal.Decimal `json:"product_income"`
	Expenses      decimal.Decimal `json:"expenses"`
	DebtCreated   decimal.Decimal `json:"debt_created"`
	DebtPaid      decimal.Decimal `json:"debt_paid"`
	TotalNetCash  decimal.Decimal `json:"total_net_cash"`
	TotalNetBank  decimal.Decimal `json:"total_net_bank"`
	NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
}

// StatsForPeriod summarizes income, expenses, and debt movement between two
// date keys inclusive. Running totals fold the entire ledger, not just the
// period.
func StatsForPeriod(entries []models.LedgerEntry, start, end string) PeriodStats {
	period := filterByPeriod(entries, start, end)

	netCashFlow := decimal.Zero
	for _, e := range period {
		if e.Channel != enums.ChannelCash {
			continue
		}
		if e.Type == enums.TransactionTypePartnerDeposit && HasPurchaseMarker(e.Description) {
			continue
		}
		if e.Direction == enums.DirectionIn {
			netCashFlow = netCashFlow.Add(e.Amount)
		} else {
			netCashFlow = netCashFlow.Sub(e.Amount)
		}
	}

	return PeriodStats{
		Income:        sumByTypes(period, enums.TransactionTypeIncomeSession, enums.TransactionTypeIncomeProduct),
		SessionIncome: sumByTypes(period, enums.TransactionTypeIncomeSession),
		ProductIncome: sumByTypes(period, enums.TransactionTypeIncomeProduct),
		Expenses:      sumByTypes(period, enums.TransactionTypeExpenseOperational, enums.TransactionTypeExpensePurchase),
		DebtCreated:   sumByTypes(period, enums.TransactionTypeDebtCreate),
		DebtPaid:      sumByTypes(period, enums.TransactionTypeDebtPayment),
		TotalNetCash:  Balance(entries, enums.ChannelCash, nil),
		TotalNetBank:  Balance(entries, enums.ChannelBank, nil),
		NetCashFlow:   netCashFlow,
	}
}

// TotalsWindow selects the date range for Totals.
type TotalsWindow string

const (
	TotalsWindowToday TotalsWindow = "today"
	TotalsWindowMonth TotalsWindow = "month"
)

// Totals resolves a reporting window around the reference date key and
// summarizes it.
func Totals(entries []models.LedgerEntry, window TotalsWindow, dateRef string) (PeriodStats, error) {
	start, end := dateRef, dateRef
	if window == TotalsWindowMonth {
		ref, err := types.ParseDateKey(dateRef)
		if err != nil {
			return PeriodStats{}, err
		}
		start = dateRef[:7] + "-01"
		end = fmt.Sprintf("%s-%02d", dateRef[:7], types.DaysInMonth(ref))
	}
	return StatsForPeriod(entries, start, end), nil
}

// PartnerActivity summarizes one partner's deposits and withdrawals across
// the whole ledger.
type PartnerActivity struct {
	Withdrawals decimal.Decimal      `json:"withdrawals"`
	Repayments  decimal.Decimal      `json:"repayments"`
	CurrentNet  decimal.Decimal      `json:"current_net"`
	Entries     []models.LedgerEntry `json:"entries"`
}

// PartnerStats folds every entry linked to the partner into a withdrawal
// versus repayment summary.
func PartnerStats(entries []models.LedgerEntry, partnerID string) PartnerActivity {
	var linked []models.LedgerEntry
	for _, e := range entries {
		if e.PartnerID != nil && *e.PartnerID == partnerID {
			linked = append(linked, e)
		}
	}
	withdrawals := sumByTypes(linked, enums.TransactionTypePartnerWithdrawal)
	repayments := sumByTypes(linked, enums.TransactionTypePartnerDeposit, enums.TransactionTypePartnerDebtPayment)
	return PartnerActivity{
		Withdrawals: withdrawals,
		Repayments:  repayments,
		CurrentNet:  withdrawals.Sub(repayments),
		Entries:     linked,
	}
}

// AccountStats is one bank account's folded position.
type AccountStats struct {
	Account  models.BankAccount `json:"account"`
	Balance  decimal.Decimal    `json:"balance"`
	TotalIn  decimal.Decimal    `json:"total_in"`
	TotalOut decimal.Decimal    `json:"total_out"`
}

// TreasuryView is the whole-venue money position.
type TreasuryView struct {
	CashBalance      decimal.Decimal `json:"cash_balance"`
	TotalBankBalance decimal.Decimal `json:"total_bank_balance"`
	SavingsBalance   decimal.Decimal `json:"savings_balance"`
	Accounts         []AccountStats  `json:"accounts"`
}

// TreasuryStats folds cash, bank, and savings positions, plus a per-account
// breakdown. Pending inbound transfers are excluded from account inflow.
func TreasuryStats(entries []models.LedgerEntry, accounts []models.BankAccount) TreasuryView {
	view := TreasuryView{
		CashBalance:      Balance(entries, enums.ChannelCash, nil),
		TotalBankBalance: Balance(entries, enums.ChannelBank, nil),
		SavingsBalance:   SavingsBalance(entries),
		Accounts:         make([]AccountStats, 0, len(accounts)),
	}
	for _, acc := range accounts {
		accID := acc.ID
		stats := AccountStats{
			Account:  acc,
			Balance:  Balance(entries, enums.ChannelBank, &accID),
			TotalIn:  decimal.Zero,
			TotalOut: decimal.Zero,
		}
		for _, e := range entries {
			if e.AccountID == nil || *e.AccountID != accID {
				continue
			}
			switch e.Direction {
			case enums.DirectionIn:
				if e.TransferStatus == nil || *e.TransferStatus == enums.TransferStatusConfirmed {
					stats.TotalIn = stats.TotalIn.Add(e.Amount)
				}
			case enums.DirectionOut:
				stats.TotalOut = stats.TotalOut.Add(e.Amount)
			}
		}
		view.Accounts = append(view.Accounts, stats)
	}
	return view
}

// DayCost is one day's profit and loss inside a cost analysis.
type DayCost struct {
	Date                string          `json:"date"`
	TotalRevenue        decimal.Decimal `json:"total_revenue"`
	TotalExpenses       decimal.Decimal `json:"total_expenses"`
	TotalSavings        decimal.Decimal `json:"total_savings"`
	TotalLoanRepayments decimal.Decimal `json:"total_loan_repayments"`
	TotalDirectCosts    decimal.Decimal `json:"total_direct_costs"`
	NetProfit           decimal.Decimal `json:"net_profit"`
}

// CostAnalysis breaks a calendar month into per-day profit rows. Days with
// no activity at all are dropped.
func CostAnalysis(entries []models.LedgerEntry, records []models.SessionRecord, monthKey string) ([]DayCost, error) {
	days, err := types.DaysOfMonth(monthKey)
	if err != nil {
		return nil, err
	}

	result := make([]DayCost, 0, len(days))
	for _, day := range days {
		dayEntries := filterByPeriod(entries, day, day)

		directCosts := decimal.Zero
		for _, r := range records {
			if r.EndedAt == nil || types.DateKey(*r.EndedAt) != day {
				continue
			}
			directCosts = directCosts.Add(r.DrinksCost).Add(r.CardsCost).Add(r.PlaceCost)
		}

		row := DayCost{
			Date:                day,
			TotalRevenue:        sumByTypes(dayEntries, enums.TransactionTypeIncomeSession, enums.TransactionTypeIncomeProduct),
			TotalExpenses:       sumByTypes(dayEntries, enums.TransactionTypeExpenseOperational, enums.TransactionTypeExpensePurchase),
			TotalSavings:        sumByTypes(dayEntries, enums.TransactionTypeSavingDeposit),
			TotalLoanRepayments: sumByTypes(dayEntries, enums.TransactionTypeLoanRepayment),
			TotalDirectCosts:    directCosts,
		}
		row.NetProfit = row.TotalRevenue.
			Sub(row.TotalExpenses).
			Sub(row.TotalSavings).
			Sub(row.TotalLoanRepayments).
			Sub(row.TotalDirectCosts)

		if row.TotalRevenue.IsZero() && row.TotalExpenses.IsZero() &&
			row.TotalSavings.IsZero() && row.TotalLoanRepayments.IsZero() {
			continue
		}
		result = append(result, row)
	}
	return result, nil
}

// DayCyclePreview is a live, pre-closing look at the current trading cycle.
type DayCyclePreview struct {
	DateKey      string          `json:"date_key"`
	StartTime    time.Time       `json:"start_time"`
	EndTime      time.Time       `json:"end_time"`
	CashRevenue  decimal.Decimal `json:"cash_revenue"`
	BankRevenue  decimal.Decimal `json:"bank_revenue"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalDebt    decimal.Decimal `json:"total_debt"`
	TotalInvoice decimal.Decimal `json:"total_invoice"`
}

// PreviewDayCycle sums revenue and new debt between the cycle start and now,
// without closing anything.
func PreviewDayCycle(entries []models.LedgerEntry, cycleStart, now time.Time) DayCyclePreview {
	preview := DayCyclePreview{
		DateKey:      types.DateKey(cycleStart),
		StartTime:    cycleStart,
		EndTime:      now,
		CashRevenue:  decimal.Zero,
		BankRevenue:  decimal.Zero,
		TotalDebt:    decimal.Zero,
	}
	for _, e := range entries {
		if e.Timestamp.Before(cycleStart) || e.Timestamp.After(now) {
			continue
		}
		if e.Direction == enums.DirectionIn {
			switch e.Channel {
			case enums.ChannelCash:
				preview.CashRevenue = preview.CashRevenue.Add(e.Amount)
			case enums.ChannelBank:
				preview.BankRevenue = preview.BankRevenue.Add(e.Amount)
			}
		}
		if e.Type == enums.TransactionTypeDebtCreate {
			preview.TotalDebt = preview.TotalDebt.Add(e.Amount)
		}
	}
	preview.TotalRevenue = preview.CashRevenue.Add(preview.BankRevenue)
	preview.TotalInvoice = preview.TotalRevenue.Add(preview.TotalDebt)
	return preview
}

// ExpenseOverview summarizes the expense page for one calendar month.
type ExpenseOverview struct {
	TotalDaily        decimal.Decimal `json:"total_daily"`
	TotalFixedMonthly decimal.Decimal `json:"total_fixed_monthly"`
	TotalDailyFixed   decimal.Decimal `json:"total_daily_fixed"`
	FixedCount        int             `json:"fixed_count"`
}

// ExpenseStats combines the month's ad hoc purchases with the daily cost of
// fixed expense plans.
func ExpenseStats(purchases []models.Purchase, plans []models.SavingPlan, monthKey string) (ExpenseOverview, error) {
	overview := ExpenseOverview{
		TotalDaily:        decimal.Zero,
		TotalFixedMonthly: decimal.Zero,
		TotalDailyFixed:   decimal.Zero,
	}
	for _, p := range purchases {
		if len(p.DateKey) >= 7 && p.DateKey[:7] == monthKey {
			overview.TotalDaily = overview.TotalDaily.Add(p.Amount)
		}
	}

	first, err := types.ParseDateKey(monthKey + "-01")
	if err != nil {
		return ExpenseOverview{}, err
	}
	daysInMonth := decimal.NewFromInt(int64(types.DaysInMonth(first)))

	for _, plan := range plans {
		if plan.Category != enums.PlanCategoryExpense {
			continue
		}
		overview.TotalFixedMonthly = overview.TotalFixedMonthly.Add(plan.Amount)
		overview.TotalDailyFixed = overview.TotalDailyFixed.Add(plan.Amount.Div(daysInMonth))
		overview.FixedCount++
	}
	return overview, nil
}
