package plans

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dailyPlan(amount string, lastApplied time.Time) models.SavingPlan {
	return models.SavingPlan{
		ID:            uuid.New(),
		Name:          "equipment fund",
		Type:          enums.PlanTypeDailySaving,
		Category:      enums.PlanCategorySaving,
		Amount:        dec(amount),
		Channel:       enums.ChannelCash,
		IsActive:      true,
		StartedAt:     lastApplied,
		LastAppliedAt: lastApplied,
	}
}

func TestAccrue_DailyCatchesUp(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 13, 23, 0, 0, 0, time.UTC)

	result := Accrue([]models.SavingPlan{dailyPlan("5", last)}, asOf)

	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	entry := result.Entries[0]
	if !entry.Amount.Equal(dec("15")) {
		t.Errorf("3 days at 5: got %s, want 15", entry.Amount)
	}
	if entry.Type != enums.TransactionTypeSavingDeposit {
		t.Errorf("saving plans post saving deposits, got %s", entry.Type)
	}
	if entry.Direction != enums.DirectionOut {
		t.Errorf("accruals leave operating money, got %s", entry.Direction)
	}
	if !entry.Automatic {
		t.Error("accrual entries must be flagged automatic")
	}
	if len(result.Plans) != 1 || !result.Plans[0].LastAppliedAt.Equal(asOf.UTC()) {
		t.Fatalf("cursor must advance to asOf, got %+v", result.Plans)
	}
}

func TestAccrue_CarriesPlanBankAccount(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

	accountID := uuid.New()
	plan := dailyPlan("5", last)
	plan.Channel = enums.ChannelBank
	plan.BankAccountID = &accountID

	result := Accrue([]models.SavingPlan{plan}, asOf)
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	entry := result.Entries[0]
	if entry.Channel != enums.ChannelBank {
		t.Errorf("entry must keep the plan channel, got %s", entry.Channel)
	}
	if entry.AccountID == nil || *entry.AccountID != accountID {
		t.Fatalf("entry must carry the plan's bank account, got %v", entry.AccountID)
	}
}

func TestAccrue_SameDayIsNoOp(t *testing.T) {
	last := time.Date(2026, 3, 13, 1, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 13, 23, 59, 0, 0, time.UTC)

	result := Accrue([]models.SavingPlan{dailyPlan("5", last)}, asOf)
	if len(result.Entries) != 0 || len(result.Plans) != 0 {
		t.Fatalf("same calendar day must accrue nothing, got %d entries", len(result.Entries))
	}
}

func TestAccrue_RerunAfterAdvanceIsNoOp(t *testing.T) {
	last := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 13, 9, 0, 0, 0, time.UTC)

	first := Accrue([]models.SavingPlan{dailyPlan("5", last)}, asOf)
	if len(first.Plans) != 1 {
		t.Fatalf("expected an advanced plan, got %d", len(first.Plans))
	}

	second := Accrue(first.Plans, asOf)
	if len(second.Entries) != 0 {
		t.Fatalf("rerun with advanced cursor must post nothing, got %d entries", len(second.Entries))
	}
}

func TestAccrue_MonthlyProrates(t *testing.T) {
	last := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 12, 12, 0, 0, 0, time.UTC)

	plan := dailyPlan("310", last)
	plan.Type = enums.PlanTypeMonthlyPayment
	plan.Category = enums.PlanCategoryExpense

	result := Accrue([]models.SavingPlan{plan}, asOf)
	if len(result.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(result.Entries))
	}
	// March has 31 days: 310/31 = 10 per day, 2 days owed
	if !result.Entries[0].Amount.Equal(dec("20")) {
		t.Errorf("prorated amount: got %s, want 20", result.Entries[0].Amount)
	}
	if result.Entries[0].Type != enums.TransactionTypeExpenseOperational {
		t.Errorf("expense plans post operational expenses, got %s", result.Entries[0].Type)
	}
}

func TestAccrue_InactivePlansUntouched(t *testing.T) {
	last := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	plan := dailyPlan("5", last)
	plan.IsActive = false

	result := Accrue([]models.SavingPlan{plan}, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	if len(result.Entries) != 0 || len(result.Plans) != 0 {
		t.Fatalf("inactive plan must be skipped, got %d entries", len(result.Entries))
	}
}
