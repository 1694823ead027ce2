package enums

import "fmt"

// OrderType partitions sold items into invoice categories. Orders arriving
// without a type are normalized to drink at the boundary.
type OrderType string

const (
	OrderTypeDrink        OrderType = "drink"
	OrderTypeInternetCard OrderType = "internet_card"
)

var validOrderTypes = []OrderType{OrderTypeDrink, OrderTypeInternetCard}

// IsValid reports whether the value matches the canonical order type enum.
func (o OrderType) IsValid() bool {
	for _, candidate := range validOrderTypes {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderType converts raw input into OrderType.
func ParseOrderType(value string) (OrderType, error) {
	for _, candidate := range validOrderTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order type %q", value)
}
