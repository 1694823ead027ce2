package models

import (
	"time"

	"github.com/google/uuid"
)

// PeriodLock freezes all days up to and including LockedUntil. Mutations
// dated inside a locked period are rejected; only the newest lock matters.
type PeriodLock struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	LockedUntil string     `gorm:"column:locked_until;type:text;not null;index"`
	SnapshotID  *uuid.UUID `gorm:"column:snapshot_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
}
