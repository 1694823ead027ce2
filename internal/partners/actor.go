package partners

import (
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

var actorLabels = map[enums.TransactionType]string{
	enums.TransactionTypeIncomeSession:      "customer (session)",
	enums.TransactionTypeIncomeProduct:      "customer (products)",
	enums.TransactionTypeDebtPayment:        "customer (debt payment)",
	enums.TransactionTypeDebtCreate:         "customer (debt)",
	enums.TransactionTypeExpenseOperational: "operating expenses",
	enums.TransactionTypeExpensePurchase:    "venue purchases",
	enums.TransactionTypeLoanReceipt:        "lender (loan)",
	enums.TransactionTypeLoanRepayment:      "lender (repayment)",
	enums.TransactionTypeSavingDeposit:      "savings pot",
	enums.TransactionTypeLiquidationToBank:  "bank transfer",
}

// ActorName resolves who performed a ledger entry: the recorded actor first,
// then the roster, then a label derived from the transaction type.
func (r *Roster) ActorName(entry models.LedgerEntry) string {
	if entry.PerformedByName != nil && *entry.PerformedByName != "" {
		return *entry.PerformedByName
	}
	if entry.PartnerID != nil {
		if partner, ok := r.Find(*entry.PartnerID); ok {
			return partner.Name
		}
	}
	if label, ok := actorLabels[entry.Type]; ok {
		return label
	}
	return "unknown party"
}
