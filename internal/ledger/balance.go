package ledger

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

// Descriptions carrying any of these markers identify a partner deposit that
// fronted money for goods rather than adding cash to the till. The Arabic
// markers match the imported history; the English ones cover new entries.
var purchaseMarkers = []string{"شراء", "بضاعة", "purchase", "goods"}

// HasPurchaseMarker reports whether the description marks a goods purchase.
func HasPurchaseMarker(description string) bool {
	lowered := strings.ToLower(description)
	for _, marker := range purchaseMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

// isPartnerPurchaseDeposit identifies inbound partner deposits that front
// money for goods. They are suppressed from balance folds because no new
// cash entered the till.
func isPartnerPurchaseDeposit(e models.LedgerEntry) bool {
	return e.Type == enums.TransactionTypePartnerDeposit &&
		e.Direction == enums.DirectionIn &&
		HasPurchaseMarker(e.Description)
}

// Balance folds the ledger into the current balance of one channel,
// optionally scoped to a single bank account. Inbound entries add, outbound
// subtract. Two suppressions apply on the inbound side only: partner goods
// deposits, and bank transfers not yet confirmed. Outbound entries are never
// suppressed.
func Balance(entries []models.LedgerEntry, channel enums.Channel, accountID *uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Channel != channel {
			continue
		}
		if accountID != nil && (e.AccountID == nil || *e.AccountID != *accountID) {
			continue
		}
		if isPartnerPurchaseDeposit(e) {
			continue
		}
		switch e.Direction {
		case enums.DirectionIn:
			if channel == enums.ChannelBank && e.TransferStatus != nil && *e.TransferStatus != enums.TransferStatusConfirmed {
				continue
			}
			total = total.Add(e.Amount)
		case enums.DirectionOut:
			total = total.Sub(e.Amount)
		}
	}
	return total
}

// SavingsBalance folds the running savings pot from deposit and withdrawal
// entries regardless of channel.
func SavingsBalance(entries []models.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		switch e.Type {
		case enums.TransactionTypeSavingDeposit:
			total = total.Add(e.Amount)
		case enums.TransactionTypeSavingWithdrawal:
			total = total.Sub(e.Amount)
		}
	}
	return total
}

// sumByTypes adds the amounts of entries matching any of the given types.
func sumByTypes(entries []models.LedgerEntry, txTypes ...enums.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		for _, t := range txTypes {
			if e.Type == t {
				total = total.Add(e.Amount)
				break
			}
		}
	}
	return total
}

// filterByPeriod keeps entries whose date key falls inside [start, end].
// Date keys compare correctly as strings.
func filterByPeriod(entries []models.LedgerEntry, start, end string) []models.LedgerEntry {
	filtered := make([]models.LedgerEntry, 0, len(entries))
	for _, e := range entries {
		if e.DateKey >= start && e.DateKey <= end {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
