package loans

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

var hundred = decimal.NewFromInt(100)

// GenerateInstallments splits a principal into count even slices. Rounding
// residue lands on the final installment so the schedule sums to the
// principal exactly.
func GenerateInstallments(loanID uuid.UUID, principal decimal.Decimal, count int, start time.Time, schedule enums.ScheduleType) []models.LoanInstallment {
	if count <= 0 {
		return nil
	}
	base := principal.Div(decimal.NewFromInt(int64(count))).Round(2)
	installments := make([]models.LoanInstallment, 0, count)
	for i := 0; i < count; i++ {
		amount := base
		if i == count-1 {
			amount = principal.Sub(base.Mul(decimal.NewFromInt(int64(count - 1))))
		}
		installments = append(installments, models.LoanInstallment{
			ID:       uuid.New(),
			LoanID:   loanID,
			Sequence: i + 1,
			Amount:   amount,
			DueDate:  types.DateKey(dueDate(start, schedule, i+1)),
			Status:   enums.InstallmentStatusPending,
		})
	}
	return installments
}

func dueDate(start time.Time, schedule enums.ScheduleType, n int) time.Time {
	switch schedule {
	case enums.ScheduleTypeDaily:
		return start.AddDate(0, 0, n)
	case enums.ScheduleTypeWeekly:
		return start.AddDate(0, 0, 7*n)
	default:
		return start.AddDate(0, n, 0)
	}
}

// LoanStats summarizes repayment progress against the principal.
type LoanStats struct {
	Paid        decimal.Decimal `json:"paid"`
	Remaining   decimal.Decimal `json:"remaining"`
	Progress    decimal.Decimal `json:"progress"`
	IsFullyPaid bool            `json:"is_fully_paid"`
}

// Stats derives repayment progress from a loan's recorded payments.
func Stats(loan *models.PlaceLoan) LoanStats {
	paid := decimal.Zero
	for _, p := range loan.Payments {
		paid = paid.Add(p.Amount)
	}
	remaining := loan.Principal.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	progress := hundred
	if loan.Principal.IsPositive() {
		progress = decimal.Min(hundred, paid.Div(loan.Principal).Mul(hundred))
	}
	return LoanStats{
		Paid:        paid,
		Remaining:   remaining,
		Progress:    progress,
		IsFullyPaid: types.ReachesWithinTolerance(paid, loan.Principal),
	}
}

// StatusAfterPayment decides the loan status once an additional payment
// lands. The tolerance absorbs rounding residue from uneven installments.
func StatusAfterPayment(loan *models.PlaceLoan, payment decimal.Decimal) enums.LoanStatus {
	paid := payment
	for _, p := range loan.Payments {
		paid = paid.Add(p.Amount)
	}
	if types.ReachesWithinTolerance(paid, loan.Principal) {
		return enums.LoanStatusClosed
	}
	return enums.LoanStatusActive
}
