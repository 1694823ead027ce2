package enums

import "fmt"

// TransactionType is the closed set of financial facts the ledger records.
type TransactionType string

const (
	TransactionTypeIncomeSession      TransactionType = "income_session"
	TransactionTypeIncomeProduct      TransactionType = "income_product"
	TransactionTypeExpenseOperational TransactionType = "expense_operational"
	TransactionTypeExpensePurchase    TransactionType = "expense_purchase"
	TransactionTypeDebtCreate         TransactionType = "debt_create"
	TransactionTypeDebtPayment        TransactionType = "debt_payment"
	TransactionTypeLoanReceipt        TransactionType = "loan_receipt"
	TransactionTypeLoanRepayment      TransactionType = "loan_repayment"
	TransactionTypePartnerDeposit     TransactionType = "partner_deposit"
	TransactionTypePartnerWithdrawal  TransactionType = "partner_withdrawal"
	TransactionTypePartnerDebtPayment TransactionType = "partner_debt_payment"
	TransactionTypeSavingDeposit      TransactionType = "saving_deposit"
	TransactionTypeSavingWithdrawal   TransactionType = "saving_withdrawal"
	TransactionTypeLiquidationToBank  TransactionType = "liquidation_to_bank"
)

var validTransactionTypes = []TransactionType{
	TransactionTypeIncomeSession,
	TransactionTypeIncomeProduct,
	TransactionTypeExpenseOperational,
	TransactionTypeExpensePurchase,
	TransactionTypeDebtCreate,
	TransactionTypeDebtPayment,
	TransactionTypeLoanReceipt,
	TransactionTypeLoanRepayment,
	TransactionTypePartnerDeposit,
	TransactionTypePartnerWithdrawal,
	TransactionTypePartnerDebtPayment,
	TransactionTypeSavingDeposit,
	TransactionTypeSavingWithdrawal,
	TransactionTypeLiquidationToBank,
}

// IsValid reports whether the value matches the canonical transaction type enum.
func (t TransactionType) IsValid() bool {
	for _, candidate := range validTransactionTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseTransactionType converts raw input into TransactionType.
func ParseTransactionType(value string) (TransactionType, error) {
	for _, candidate := range validTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transaction type %q", value)
}
