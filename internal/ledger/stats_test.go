package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

func TestExpenseStats_MonthScopedPurchasesAndFixedPlans(t *testing.T) {
	purchases := []models.Purchase{
		{ID: uuid.New(), Amount: decimal.RequireFromString("40"), DateKey: "2026-04-05"},
		{ID: uuid.New(), Amount: decimal.RequireFromString("60"), DateKey: "2026-04-20"},
		{ID: uuid.New(), Amount: decimal.RequireFromString("999"), DateKey: "2026-03-31"},
	}
	plans := []models.SavingPlan{
		{ID: uuid.New(), Category: enums.PlanCategoryExpense, Amount: decimal.RequireFromString("300")},
		{ID: uuid.New(), Category: enums.PlanCategoryExpense, Amount: decimal.RequireFromString("150")},
		{ID: uuid.New(), Category: enums.PlanCategorySaving, Amount: decimal.RequireFromString("500")},
	}

	overview, err := ExpenseStats(purchases, plans, "2026-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !overview.TotalDaily.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected 100 in-month purchases, got %s", overview.TotalDaily)
	}
	if !overview.TotalFixedMonthly.Equal(decimal.RequireFromString("450")) {
		t.Fatalf("expected 450 fixed monthly, got %s", overview.TotalFixedMonthly)
	}
	// 450 spread over April's 30 days.
	if !overview.TotalDailyFixed.Equal(decimal.RequireFromString("15")) {
		t.Fatalf("expected 15 daily fixed, got %s", overview.TotalDailyFixed)
	}
	if overview.FixedCount != 2 {
		t.Fatalf("expected 2 fixed plans, got %d", overview.FixedCount)
	}
}

func TestExpenseStats_RejectsMalformedMonth(t *testing.T) {
	if _, err := ExpenseStats(nil, nil, "April 2026"); err == nil {
		t.Fatal("expected an error for a malformed month key")
	}
}
