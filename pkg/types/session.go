package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// SessionEvent is one device switch inside a session's timeline.
type SessionEvent struct {
	At         time.Time        `json:"at"`
	FromDevice enums.DeviceType `json:"from_device"`
	ToDevice   enums.DeviceType `json:"to_device"`
}

// SessionEvents is stored as a JSON column on the session record.
type SessionEvents []SessionEvent

// SessionSegment is one contiguous slice of a session billed under a single
// device tariff. Segments are snapshotted onto the closed record so the
// invoice stays reproducible after tariff changes.
type SessionSegment struct {
	Device          enums.DeviceType `json:"device"`
	Start           time.Time        `json:"start"`
	End             time.Time        `json:"end"`
	DurationMinutes decimal.Decimal  `json:"duration_minutes"`
	Cost            decimal.Decimal  `json:"cost"`
	PlaceCost       decimal.Decimal  `json:"place_cost"`
}

// SessionSegments is stored as a JSON column on the session record.
type SessionSegments []SessionSegment
