package enums

import "fmt"

// PartnerLedgerItemType labels rows in the reconstructed per-partner ledger
// projection.
type PartnerLedgerItemType string

const (
	PartnerLedgerItemTypeProfitShare           PartnerLedgerItemType = "profit_share"
	PartnerLedgerItemTypePurchaseReimbursement PartnerLedgerItemType = "purchase_reimbursement"
	PartnerLedgerItemTypeWithdrawal            PartnerLedgerItemType = "withdrawal"
)

var validPartnerLedgerItemTypes = []PartnerLedgerItemType{
	PartnerLedgerItemTypeProfitShare,
	PartnerLedgerItemTypePurchaseReimbursement,
	PartnerLedgerItemTypeWithdrawal,
}

// IsValid reports whether the value matches the canonical partner ledger item type enum.
func (p PartnerLedgerItemType) IsValid() bool {
	for _, candidate := range validPartnerLedgerItemTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePartnerLedgerItemType converts raw input into PartnerLedgerItemType.
func ParsePartnerLedgerItemType(value string) (PartnerLedgerItemType, error) {
	for _, candidate := range validPartnerLedgerItemTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid partner ledger item type %q", value)
}
