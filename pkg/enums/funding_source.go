package enums

import "fmt"

// FundingSource records whose money paid for a purchase. Partner-funded
// purchases are reimbursed in full at period close.
type FundingSource string

const (
	FundingSourcePlace   FundingSource = "place"
	FundingSourcePartner FundingSource = "partner"
)

var validFundingSources = []FundingSource{FundingSourcePlace, FundingSourcePartner}

// IsValid reports whether the value matches the canonical funding source enum.
func (f FundingSource) IsValid() bool {
	for _, candidate := range validFundingSources {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFundingSource converts raw input into FundingSource.
func ParseFundingSource(value string) (FundingSource, error) {
	for _, candidate := range validFundingSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid funding source %q", value)
}
