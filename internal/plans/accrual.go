package plans

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

const systemActor = "auto accrual"

// AccrualResult pairs the ledger entries an accrual run produced with the
// plans whose cursors advanced.
type AccrualResult struct {
	Entries []*models.LedgerEntry
	Plans   []models.SavingPlan
}

// Accrue walks every plan forward to asOf and materializes the owed amounts
// as ledger entries. It is pure and idempotent per day: the cursor only moves
// when an amount posts, so running twice on the same day accrues nothing the
// second time, while a run skipped for a week catches up in one pass.
func Accrue(plans []models.SavingPlan, asOf time.Time) AccrualResult {
	result := AccrualResult{}
	asOf = asOf.UTC()

	for _, plan := range plans {
		if !plan.IsActive {
			continue
		}
		days := types.WholeDaysBetween(plan.LastAppliedAt, asOf)
		if days <= 0 {
			continue
		}

		amount := accrualAmount(plan, asOf, days)
		if !amount.IsPositive() {
			continue
		}

		actor := systemActor
		result.Entries = append(result.Entries, &models.LedgerEntry{
			ID:              uuid.New(),
			Timestamp:       asOf,
			DateKey:         types.DateKey(asOf),
			Type:            entryType(plan.Category),
			Amount:          amount,
			Direction:       enums.DirectionOut,
			Channel:         plan.Channel,
			AccountID:       plan.BankAccountID,
			Automatic:       true,
			Description:     fmt.Sprintf("auto: %s (%d days)", plan.Name, days),
			ReferenceID:     refID(plan.ID),
			PerformedByName: &actor,
		})

		plan.LastAppliedAt = asOf
		result.Plans = append(result.Plans, plan)
	}
	return result
}

func accrualAmount(plan models.SavingPlan, asOf time.Time, days int) decimal.Decimal {
	daysDec := decimal.NewFromInt(int64(days))
	switch plan.Type {
	case enums.PlanTypeDailySaving:
		return plan.Amount.Mul(daysDec)
	case enums.PlanTypeMonthlyPayment:
		perDay := plan.Amount.Div(decimal.NewFromInt(int64(types.DaysInMonth(asOf))))
		return perDay.Mul(daysDec)
	default:
		return decimal.Zero
	}
}

func entryType(category enums.PlanCategory) enums.TransactionType {
	if category == enums.PlanCategoryExpense {
		return enums.TransactionTypeExpenseOperational
	}
	return enums.TransactionTypeSavingDeposit
}

func refID(id uuid.UUID) *uuid.UUID {
	ref := id
	return &ref
}
