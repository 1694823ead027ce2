package loans

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGenerateInstallments_EvenSplit(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	installments := GenerateInstallments(uuid.New(), dec("1000"), 4, start, enums.ScheduleTypeMonthly)

	if len(installments) != 4 {
		t.Fatalf("expected 4 installments, got %d", len(installments))
	}
	total := decimal.Zero
	for i, inst := range installments {
		if inst.Sequence != i+1 {
			t.Errorf("sequence %d out of order", inst.Sequence)
		}
		if !inst.Amount.Equal(dec("250")) {
			t.Errorf("installment %d: got %s, want 250", inst.Sequence, inst.Amount)
		}
		total = total.Add(inst.Amount)
	}
	if !total.Equal(dec("1000")) {
		t.Fatalf("schedule must sum to principal, got %s", total)
	}
	if installments[0].DueDate != "2026-04-01" || installments[3].DueDate != "2026-07-01" {
		t.Errorf("monthly due dates wrong: %s .. %s", installments[0].DueDate, installments[3].DueDate)
	}
}

func TestGenerateInstallments_RemainderOnFinal(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	installments := GenerateInstallments(uuid.New(), dec("100"), 3, start, enums.ScheduleTypeWeekly)

	if !installments[0].Amount.Equal(dec("33.33")) {
		t.Errorf("base installment: got %s, want 33.33", installments[0].Amount)
	}
	if !installments[2].Amount.Equal(dec("33.34")) {
		t.Errorf("final installment carries the remainder: got %s, want 33.34", installments[2].Amount)
	}
	if installments[1].DueDate != "2026-03-15" {
		t.Errorf("weekly due date: got %s, want 2026-03-15", installments[1].DueDate)
	}
}

func loanWithPayments(principal string, payments ...string) *models.PlaceLoan {
	loan := &models.PlaceLoan{
		ID:        uuid.New(),
		Principal: dec(principal),
		Status:    enums.LoanStatusActive,
	}
	for _, p := range payments {
		loan.Payments = append(loan.Payments, models.LoanPayment{ID: uuid.New(), LoanID: loan.ID, Amount: dec(p)})
	}
	return loan
}

func TestStats_PartiallyPaid(t *testing.T) {
	stats := Stats(loanWithPayments("1000", "250", "250", "250"))

	if !stats.Paid.Equal(dec("750")) {
		t.Errorf("paid: got %s, want 750", stats.Paid)
	}
	if !stats.Remaining.Equal(dec("250")) {
		t.Errorf("remaining: got %s, want 250", stats.Remaining)
	}
	if !stats.Progress.Equal(dec("75")) {
		t.Errorf("progress: got %s, want 75", stats.Progress)
	}
	if stats.IsFullyPaid {
		t.Error("750 of 1000 is not fully paid")
	}
}

func TestStats_ToleranceClosesRoundingGap(t *testing.T) {
	// 33.33 * 3 leaves a residue of 0.01, inside tolerance
	stats := Stats(loanWithPayments("100", "33.33", "33.33", "33.33"))
	if !stats.IsFullyPaid {
		t.Fatalf("residue %s is within tolerance and must count as paid", stats.Remaining)
	}
}

func TestStatusAfterPayment(t *testing.T) {
	loan := loanWithPayments("1000", "250", "250", "250")

	if got := StatusAfterPayment(loan, dec("100")); got != enums.LoanStatusActive {
		t.Errorf("850 of 1000: got %s, want active", got)
	}
	if got := StatusAfterPayment(loan, dec("250")); got != enums.LoanStatusClosed {
		t.Errorf("full repayment: got %s, want closed", got)
	}
	if got := StatusAfterPayment(loan, dec("249.99")); got != enums.LoanStatusClosed {
		t.Errorf("within tolerance of principal: got %s, want closed", got)
	}
}
