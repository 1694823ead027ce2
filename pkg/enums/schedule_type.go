package enums

import "fmt"

// ScheduleType is the cadence of a loan installment schedule.
type ScheduleType string

const (
	ScheduleTypeDaily   ScheduleType = "daily"
	ScheduleTypeWeekly  ScheduleType = "weekly"
	ScheduleTypeMonthly ScheduleType = "monthly"
)

var validScheduleTypes = []ScheduleType{
	ScheduleTypeDaily,
	ScheduleTypeWeekly,
	ScheduleTypeMonthly,
}

// IsValid reports whether the value matches the canonical schedule type enum.
func (s ScheduleType) IsValid() bool {
	for _, candidate := range validScheduleTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseScheduleType converts raw input into ScheduleType.
func ParseScheduleType(value string) (ScheduleType, error) {
	for _, candidate := range validScheduleTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid schedule type %q", value)
}
