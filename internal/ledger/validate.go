package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
	"github.com/venuebooks/venuebooks-backend/pkg/types"
)

// ValidateTransaction rejects a withdrawal that would push the channel
// balance below the money tolerance. Receivable entries are exempt since a
// debt does not need to be funded.
func ValidateTransaction(entries []models.LedgerEntry, amount decimal.Decimal, channel enums.Channel, accountID *uuid.UUID) error {
	if channel == enums.ChannelReceivable {
		return nil
	}
	balance := Balance(entries, channel, accountID)
	if types.IsNegativeBeyondTolerance(balance.Sub(amount)) {
		return pkgerrors.New(pkgerrors.CodeInsufficientFunds,
			fmt.Sprintf("insufficient %s balance (%s available)", channel, balance.StringFixed(2))).
			WithDetails(map[string]any{
				"channel":   string(channel),
				"available": balance.StringFixed(2),
				"requested": amount.StringFixed(2),
			})
	}
	return nil
}

// ValidateOperation rejects any mutation dated inside a locked period. The
// lock's upper bound is inclusive.
func ValidateOperation(dateKey string, lock *models.PeriodLock) error {
	if lock == nil {
		return nil
	}
	if dateKey <= lock.LockedUntil {
		return pkgerrors.New(pkgerrors.CodePeriodLocked,
			fmt.Sprintf("period is locked through %s", lock.LockedUntil)).
			WithDetails(map[string]any{
				"locked_until": lock.LockedUntil,
				"date":         dateKey,
			})
	}
	return nil
}

// CheckIntegrity scans the ledger for reportable, non-fatal anomalies.
// Today that is a single check: the folded cash balance must not be in
// deficit beyond the money tolerance.
func CheckIntegrity(entries []models.LedgerEntry) []string {
	var warnings []string
	cash := Balance(entries, enums.ChannelCash, nil)
	if types.IsNegativeBeyondTolerance(cash) {
		warnings = append(warnings, fmt.Sprintf("critical cash deficit: %s", cash.StringFixed(2)))
	}
	return warnings
}
