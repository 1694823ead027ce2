package enums

import "fmt"

// Direction carries the sign of a ledger entry; amounts themselves stay
// non-negative.
type Direction string

const (
	DirectionIn  Direction = "in"
	DirectionOut Direction = "out"
)

var validDirections = []Direction{DirectionIn, DirectionOut}

// IsValid reports whether the value matches the canonical direction enum.
func (d Direction) IsValid() bool {
	for _, candidate := range validDirections {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDirection converts raw input into Direction.
func ParseDirection(value string) (Direction, error) {
	for _, candidate := range validDirections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid direction %q", value)
}
