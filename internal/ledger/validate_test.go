package ledger

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
	pkgerrors "github.com/venuebooks/venuebooks-backend/pkg/errors"
)

func TestValidateTransaction_RejectsOverdraft(t *testing.T) {
	ledger := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "50", enums.DirectionIn, enums.ChannelCash, "session"),
	}
	err := ValidateTransaction(ledger, decimal.RequireFromString("60"), enums.ChannelCash, nil)
	if err == nil {
		t.Fatal("expected insufficient funds error")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientFunds {
		t.Fatalf("expected INSUFFICIENT_FUNDS, got %v", err)
	}
}

func TestValidateTransaction_AllowsWithinTolerance(t *testing.T) {
	ledger := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "50", enums.DirectionIn, enums.ChannelCash, "session"),
	}
	// leaves -0.01, inside the tolerance
	if err := ValidateTransaction(ledger, decimal.RequireFromString("50.01"), enums.ChannelCash, nil); err != nil {
		t.Fatalf("withdrawal within tolerance should pass: %v", err)
	}
	if err := ValidateTransaction(ledger, decimal.RequireFromString("50.02"), enums.ChannelCash, nil); err == nil {
		t.Fatal("withdrawal beyond tolerance should fail")
	}
}

func TestValidateTransaction_ReceivableExempt(t *testing.T) {
	if err := ValidateTransaction(nil, decimal.RequireFromString("1000"), enums.ChannelReceivable, nil); err != nil {
		t.Fatalf("receivable channel should be exempt: %v", err)
	}
}

func TestValidateOperation(t *testing.T) {
	lock := &models.PeriodLock{LockedUntil: "2026-01-31"}

	if err := ValidateOperation("2026-01-31", lock); err == nil {
		t.Fatal("date equal to lock bound must be rejected")
	}
	if err := ValidateOperation("2026-01-01", lock); err == nil {
		t.Fatal("date inside locked period must be rejected")
	}
	if err := ValidateOperation("2026-02-01", lock); err != nil {
		t.Fatalf("date after lock should pass: %v", err)
	}
	if err := ValidateOperation("2026-01-01", nil); err != nil {
		t.Fatalf("no lock should pass: %v", err)
	}

	err := ValidateOperation("2026-01-15", lock)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodePeriodLocked {
		t.Fatalf("expected PERIOD_LOCKED, got %v", err)
	}
}

func TestCheckIntegrity(t *testing.T) {
	healthy := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "10", enums.DirectionIn, enums.ChannelCash, "session"),
	}
	if warnings := CheckIntegrity(healthy); len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	deficit := []models.LedgerEntry{
		entry(enums.TransactionTypeExpenseOperational, "10", enums.DirectionOut, enums.ChannelCash, "rent"),
	}
	if warnings := CheckIntegrity(deficit); len(warnings) != 1 {
		t.Fatalf("expected a cash deficit warning, got %v", warnings)
	}
}
