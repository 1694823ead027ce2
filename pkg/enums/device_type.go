package enums

import "fmt"

// DeviceType identifies which tariff a session segment is billed under.
type DeviceType string

const (
	DeviceTypeLaptop DeviceType = "laptop"
	DeviceTypeMobile DeviceType = "mobile"
)

var validDeviceTypes = []DeviceType{DeviceTypeLaptop, DeviceTypeMobile}

// IsValid reports whether the value matches the canonical device type enum.
func (d DeviceType) IsValid() bool {
	for _, candidate := range validDeviceTypes {
		if candidate == d {
			return true
		}
	}
	return false
}

// ParseDeviceType converts raw input into DeviceType.
func ParseDeviceType(value string) (DeviceType, error) {
	for _, candidate := range validDeviceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid device type %q", value)
}
