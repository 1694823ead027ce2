package types

import "github.com/shopspring/decimal"

// MoneyTolerance absorbs sub-cent residue left behind by the float-based
// bookkeeping this ledger imported its history from. Every monetary
// comparison in the engine goes through these helpers; a bare Cmp against
// zero is a defect.
var MoneyTolerance = decimal.RequireFromString("0.01")

// IsNegativeBeyondTolerance reports whether the amount is below zero by more
// than the shared tolerance.
func IsNegativeBeyondTolerance(amount decimal.Decimal) bool {
	return amount.LessThan(MoneyTolerance.Neg())
}

// ReachesWithinTolerance reports whether paid covers target allowing the
// shared tolerance.
func ReachesWithinTolerance(paid, target decimal.Decimal) bool {
	return paid.GreaterThanOrEqual(target.Sub(MoneyTolerance))
}
