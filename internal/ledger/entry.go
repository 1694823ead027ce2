package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// EntryInput captures the data needed to append one ledger fact. Optional
// linkage fields stay nil when the event has no counterpart entity.
type EntryInput struct {
	Type            enums.TransactionType
	Amount          decimal.Decimal
	Direction       enums.Direction
	Channel         enums.Channel
	Description     string
	AccountID       *uuid.UUID
	TransferStatus  *enums.TransferStatus
	Automatic       bool
	EntityID        *uuid.UUID
	PartnerID       *string
	ReferenceID     *uuid.UUID
	PerformedByID   *string
	PerformedByName *string
	Timestamp       time.Time
	DateKey         string
}

// NewEntry materializes an immutable ledger entry from the input. The date
// key defaults to the timestamp's calendar day and the timestamp to now.
func NewEntry(input EntryInput) *models.LedgerEntry {
	ts := input.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	dateKey := input.DateKey
	if dateKey == "" {
		dateKey = types.DateKey(ts)
	}
	return &models.LedgerEntry{
		ID:              uuid.New(),
		Timestamp:       ts,
		DateKey:         dateKey,
		Type:            input.Type,
		Amount:          input.Amount,
		Direction:       input.Direction,
		Channel:         input.Channel,
		AccountID:       input.AccountID,
		TransferStatus:  input.TransferStatus,
		Automatic:       input.Automatic,
		Description:     input.Description,
		EntityID:        input.EntityID,
		PartnerID:       input.PartnerID,
		ReferenceID:     input.ReferenceID,
		PerformedByID:   input.PerformedByID,
		PerformedByName: input.PerformedByName,
	}
}
