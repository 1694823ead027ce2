package settlement

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestResolve_ExactPayment(t *testing.T) {
	res := Resolve(dec("100"), dec("100"), decimal.Zero, decimal.Zero)
	if !res.FinalCredit.IsZero() || !res.FinalDebt.IsZero() {
		t.Fatalf("exact payment should net to zero: %+v", res)
	}
	if !res.IsFullyPaid {
		t.Fatal("exact payment is fully paid")
	}
}

func TestResolve_ShortfallCreatesDebt(t *testing.T) {
	res := Resolve(dec("100"), dec("60"), decimal.Zero, decimal.Zero)
	if !res.CreatedDebt.Equal(dec("40")) {
		t.Fatalf("expected created debt 40, got %s", res.CreatedDebt)
	}
	if !res.FinalDebt.Equal(dec("40")) || !res.FinalCredit.IsZero() {
		t.Fatalf("unexpected final balances: %+v", res)
	}
	if res.IsFullyPaid {
		t.Fatal("shortfall is not fully paid")
	}
}

func TestResolve_SurplusCreatesCredit(t *testing.T) {
	res := Resolve(dec("100"), dec("130"), decimal.Zero, decimal.Zero)
	if !res.CreatedCredit.Equal(dec("30")) {
		t.Fatalf("expected created credit 30, got %s", res.CreatedCredit)
	}
	if !res.FinalCredit.Equal(dec("30")) || !res.FinalDebt.IsZero() {
		t.Fatalf("unexpected final balances: %+v", res)
	}
}

func TestResolve_CreditAppliedFirst(t *testing.T) {
	res := Resolve(dec("100"), dec("20"), dec("90"), decimal.Zero)
	if !res.AppliedCredit.Equal(dec("90")) {
		t.Fatalf("expected applied credit 90, got %s", res.AppliedCredit)
	}
	// 10 due after credit, 20 paid, surplus 10 becomes credit
	if !res.FinalCredit.Equal(dec("10")) || !res.FinalDebt.IsZero() {
		t.Fatalf("unexpected final balances: %+v", res)
	}
}

func TestResolve_NetsExistingDebtAgainstNewCredit(t *testing.T) {
	res := Resolve(dec("50"), dec("80"), decimal.Zero, dec("20"))
	// surplus 30 becomes credit, nets against existing debt 20
	if !res.SettledDebt.Equal(dec("20")) {
		t.Fatalf("expected settled 20, got %s", res.SettledDebt)
	}
	if !res.FinalCredit.Equal(dec("10")) || !res.FinalDebt.IsZero() {
		t.Fatalf("unexpected final balances: %+v", res)
	}
}

func TestResolve_MutualExclusion(t *testing.T) {
	cases := []struct{ due, paid, credit, debt string }{
		{"100", "0", "0", "0"},
		{"100", "250", "0", "75"},
		{"0", "0", "40", "40"},
		{"37.5", "12.25", "5", "90"},
		{"0", "100", "0", "30"},
	}
	for _, tc := range cases {
		res := Resolve(dec(tc.due), dec(tc.paid), dec(tc.credit), dec(tc.debt))
		if !res.FinalCredit.Mul(res.FinalDebt).IsZero() {
			t.Fatalf("finalCredit*finalDebt != 0 for %+v: %+v", tc, res)
		}
		if res.FinalCredit.IsNegative() || res.FinalDebt.IsNegative() {
			t.Fatalf("negative output balance for %+v: %+v", tc, res)
		}
	}
}

func TestResolve_IdempotentOnOutputs(t *testing.T) {
	first := Resolve(dec("100"), dec("40"), dec("10"), dec("5"))
	// re-running with zero due/paid on the outputs must not move balances
	second := Resolve(decimal.Zero, decimal.Zero, first.FinalCredit, first.FinalDebt)
	if !second.FinalCredit.Equal(first.FinalCredit) || !second.FinalDebt.Equal(first.FinalDebt) {
		t.Fatalf("settlement not idempotent: %+v vs %+v", first, second)
	}
}
