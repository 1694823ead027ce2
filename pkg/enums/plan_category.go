package enums

import "fmt"

// PlanCategory decides which ledger entry an accrual materializes into:
// savings become saving deposits, expenses become operational expenses.
type PlanCategory string

const (
	PlanCategorySaving  PlanCategory = "saving"
	PlanCategoryExpense PlanCategory = "expense"
)

var validPlanCategories = []PlanCategory{PlanCategorySaving, PlanCategoryExpense}

// IsValid reports whether the value matches the canonical plan category enum.
func (p PlanCategory) IsValid() bool {
	for _, candidate := range validPlanCategories {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePlanCategory converts raw input into PlanCategory.
func ParsePlanCategory(value string) (PlanCategory, error) {
	for _, candidate := range validPlanCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid plan category %q", value)
}
