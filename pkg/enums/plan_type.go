package enums

import "fmt"

// PlanType is the accrual cadence of a recurring plan.
type PlanType string

const (
	PlanTypeDailySaving    PlanType = "daily_saving"
	PlanTypeMonthlyPayment PlanType = "monthly_payment"
)

var validPlanTypes = []PlanType{PlanTypeDailySaving, PlanTypeMonthlyPayment}

// IsValid reports whether the value matches the canonical plan type enum.
func (p PlanType) IsValid() bool {
	for _, candidate := range validPlanTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanType converts raw input into PlanType.
func ParsePlanType(value string) (PlanType, error) {
	for _, candidate := range validPlanTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan type %q", value)
}
