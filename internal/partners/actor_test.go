package partners

import (
	"testing"

	"github.com/venuebooks/venuebooks-backend/pkg/config"
	"github.com/venuebooks/venuebooks-backend/pkg/db/models"
	"github.com/venuebooks/venuebooks-backend/pkg/enums"
)

func testActorRoster(t *testing.T) *Roster {
	t.Helper()
	roster, err := NewRoster(config.RosterSpec{
		{ID: "khaled", Name: "Khaled", Percent: dec("60")},
		{ID: "abdullah", Name: "Abdullah", Percent: dec("40")},
	})
	if err != nil {
		t.Fatalf("building roster: %v", err)
	}
	return roster
}

func TestActorName_FallbackChain(t *testing.T) {
	roster := testActorRoster(t)

	recorded := "The Accountant"
	khaled := "khaled"
	stranger := "nobody"

	cases := []struct {
		name  string
		entry models.LedgerEntry
		want  string
	}{
		{
			name:  "recorded actor wins",
			entry: models.LedgerEntry{PerformedByName: &recorded, PartnerID: &khaled},
			want:  "The Accountant",
		},
		{
			name:  "roster lookup by partner id",
			entry: models.LedgerEntry{PartnerID: &khaled},
			want:  "Khaled",
		},
		{
			name:  "type label when partner unknown",
			entry: models.LedgerEntry{PartnerID: &stranger, Type: enums.TransactionTypeIncomeSession},
			want:  "customer (session)",
		},
		{
			name:  "type label for plain entries",
			entry: models.LedgerEntry{Type: enums.TransactionTypeLoanRepayment},
			want:  "lender (repayment)",
		},
		{
			name:  "unknown everything",
			entry: models.LedgerEntry{Type: enums.TransactionType("mystery")},
			want:  "unknown party",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := roster.ActorName(tc.entry); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
