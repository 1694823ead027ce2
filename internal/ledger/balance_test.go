package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

func entry(t enums.TransactionType, amount string, dir enums.Direction, ch enums.Channel, desc string) models.LedgerEntry {
	return models.LedgerEntry{
		ID:          uuid.New(),
		Timestamp:   time.Now().UTC(),
		DateKey:     "2026-01-15",
		Type:        t,
		Amount:      decimal.RequireFromString(amount),
		Direction:   dir,
		Channel:     ch,
		Description: desc,
	}
}

func TestBalance_InAddsOutSubtracts(t *testing.T) {
	ledger := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "100", enums.DirectionIn, enums.ChannelCash, "session"),
		entry(enums.TransactionTypeExpenseOperational, "30", enums.DirectionOut, enums.ChannelCash, "rent"),
	}
	got := Balance(ledger, enums.ChannelCash, nil)
	if !got.Equal(decimal.RequireFromString("70")) {
		t.Fatalf("expected 70, got %s", got)
	}
}

func TestBalance_Deterministic(t *testing.T) {
	ledger := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "55.5", enums.DirectionIn, enums.ChannelCash, "session"),
		entry(enums.TransactionTypeExpensePurchase, "12.25", enums.DirectionOut, enums.ChannelCash, "supplies"),
	}
	first := Balance(ledger, enums.ChannelCash, nil)
	second := Balance(ledger, enums.ChannelCash, nil)
	if !first.Equal(second) {
		t.Fatalf("balance not deterministic: %s vs %s", first, second)
	}
}

func TestBalance_SuppressesPartnerGoodsDeposit(t *testing.T) {
	base := []models.LedgerEntry{
		entry(enums.TransactionTypeIncomeSession, "200", enums.DirectionIn, enums.ChannelCash, "session"),
	}
	deposit := entry(enums.TransactionTypePartnerDeposit, "80", enums.DirectionIn, enums.ChannelCash, "إيداع شراء بضاعة")

	without := Balance(base, enums.ChannelCash, nil)
	with := Balance(append(base, deposit), enums.ChannelCash, nil)

	// suppression means including the deposit changes nothing
	if !with.Equal(without) {
		t.Fatalf("goods deposit should be suppressed: %s vs %s", with, without)
	}
	if with.GreaterThan(without) {
		t.Fatalf("suppressed deposit must never raise the balance")
	}
}

func TestBalance_RegularPartnerDepositCounts(t *testing.T) {
	ledger := []models.LedgerEntry{
		entry(enums.TransactionTypePartnerDeposit, "50", enums.DirectionIn, enums.ChannelCash, "capital injection"),
	}
	got := Balance(ledger, enums.ChannelCash, nil)
	if !got.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("regular deposit should count, got %s", got)
	}
}

func TestBalance_PendingBankTransferExcluded(t *testing.T) {
	pending := enums.TransferStatusPending
	confirmed := enums.TransferStatusConfirmed

	pendingIn := entry(enums.TransactionTypeIncomeSession, "100", enums.DirectionIn, enums.ChannelBank, "transfer")
	pendingIn.TransferStatus = &pending
	confirmedIn := entry(enums.TransactionTypeIncomeSession, "40", enums.DirectionIn, enums.ChannelBank, "transfer")
	confirmedIn.TransferStatus = &confirmed
	bareIn := entry(enums.TransactionTypeIncomeProduct, "10", enums.DirectionIn, enums.ChannelBank, "transfer")

	got := Balance([]models.LedgerEntry{pendingIn, confirmedIn, bareIn}, enums.ChannelBank, nil)
	if !got.Equal(decimal.RequireFromString("50")) {
		t.Fatalf("expected 50 (pending excluded, nil status counts), got %s", got)
	}
}

func TestBalance_OutboundNeverSuppressed(t *testing.T) {
	pending := enums.TransferStatusPending
	out := entry(enums.TransactionTypeExpenseOperational, "25", enums.DirectionOut, enums.ChannelBank, "fee")
	out.TransferStatus = &pending

	got := Balance([]models.LedgerEntry{out}, enums.ChannelBank, nil)
	if !got.Equal(decimal.RequireFromString("-25")) {
		t.Fatalf("outbound must always subtract, got %s", got)
	}
}

func TestBalance_AccountScoping(t *testing.T) {
	accA := uuid.New()
	accB := uuid.New()

	inA := entry(enums.TransactionTypeIncomeSession, "100", enums.DirectionIn, enums.ChannelBank, "transfer")
	inA.AccountID = &accA
	inB := entry(enums.TransactionTypeIncomeSession, "60", enums.DirectionIn, enums.ChannelBank, "transfer")
	inB.AccountID = &accB

	got := Balance([]models.LedgerEntry{inA, inB}, enums.ChannelBank, &accA)
	if !got.Equal(decimal.RequireFromString("100")) {
		t.Fatalf("expected account-scoped 100, got %s", got)
	}
}

func TestSavingsBalance(t *testing.T) {
	ledger := []models.LedgerEntry{
		entry(enums.TransactionTypeSavingDeposit, "40", enums.DirectionOut, enums.ChannelCash, "auto"),
		entry(enums.TransactionTypeSavingDeposit, "10", enums.DirectionOut, enums.ChannelCash, "auto"),
		entry(enums.TransactionTypeSavingWithdrawal, "15", enums.DirectionIn, enums.ChannelCash, "payout"),
	}
	got := SavingsBalance(ledger)
	if !got.Equal(decimal.RequireFromString("35")) {
		t.Fatalf("expected savings 35, got %s", got)
	}
}
