package enums

import "fmt"

// DebtSource distinguishes withdrawals against the place's own funds from
// debts created by an external loan. A missing source defaults to place at
// the boundary.
type DebtSource string

const (
	DebtSourcePlace    DebtSource = "place"
	DebtSourceExternal DebtSource = "external"
)

var validDebtSources = []DebtSource{DebtSourcePlace, DebtSourceExternal}

// IsValid reports whether the value matches the canonical debt source enum.
func (d DebtSource) IsValid() bool {
	for _, candidate := range validDebtSources {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDebtSource converts raw input into DebtSource.
func ParseDebtSource(value string) (DebtSource, error) {
	for _, candidate := range validDebtSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid debt source %q", value)
}
