package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// PlaceLoan is money lent to the venue, repaid through scheduled
// installments. The loan closes once repayments reach the principal within
// the money tolerance.
type PlaceLoan struct {
	ID           uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	LenderType   enums.LenderType  `gorm:"column:lender_type;type:text;not null"`
	LenderID     *string           `gorm:"column:lender_id;type:text"`
	LenderName   string            `gorm:"column:lender_name;type:text;not null"`
	Principal    decimal.Decimal   `gorm:"column:principal;type:numeric(14,2);not null"`
	Channel      enums.Channel     `gorm:"column:channel;type:text;not null"`
	ScheduleType enums.ScheduleType `gorm:"column:schedule_type;type:text;not null"`
	Status       enums.LoanStatus  `gorm:"column:status;type:text;not null;default:'active';index"`
	StartedAt    time.Time         `gorm:"column:started_at;not null"`
	ClosedAt     *time.Time        `gorm:"column:closed_at"`
	Notes        *string           `gorm:"column:notes;type:text"`
	Installments []LoanInstallment `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE"`
	Payments     []LoanPayment     `gorm:"foreignKey:LoanID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// LoanInstallment is one scheduled slice of a loan's principal.
type LoanInstallment struct {
	ID       uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	LoanID   uuid.UUID               `gorm:"column:loan_id;type:uuid;not null;index"`
	Sequence int                     `gorm:"column:sequence;not null"`
	Amount   decimal.Decimal         `gorm:"column:amount;type:numeric(14,2);not null"`
	DueDate  string                  `gorm:"column:due_date;type:text;not null"`
	Status   enums.InstallmentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	PaidAt   *time.Time              `gorm:"column:paid_at"`
}

// LoanPayment records one repayment applied to a loan.
type LoanPayment struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	LoanID    uuid.UUID       `gorm:"column:loan_id;type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"column:amount;type:numeric(14,2);not null"`
	Channel   enums.Channel   `gorm:"column:channel;type:text;not null"`
	EntryID   *uuid.UUID      `gorm:"column:entry_id;type:uuid"`
	PaidAt    time.Time       `gorm:"column:paid_at;not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}
