package enums

import "fmt"

// LenderType distinguishes loans fronted by a roster partner from external
// creditors.
type LenderType string

const (
	LenderTypePartner  LenderType = "partner"
	LenderTypeExternal LenderType = "external"
)

var validLenderTypes = []LenderType{LenderTypePartner, LenderTypeExternal}

// IsValid reports whether the value matches the canonical lender type enum.
func (l LenderType) IsValid() bool {
	for _, candidate := range validLenderTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLenderType converts raw input into LenderType.
func ParseLenderType(value string) (LenderType, error) {
	for _, candidate := range validLenderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid lender type %q", value)
}
