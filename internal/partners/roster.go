package partners

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/venuebooks/venuebooks-backend/pkg/config"
)

// Partner is one member of the fixed ownership roster.
type Partner struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Percent decimal.Decimal `json:"percent"`
}

// Roster is the fixed set of venue partners. It is injected configuration,
// never user data: percentages are validated to sum to 100 at load time.
type Roster struct {
	partners []Partner
}

// NewRoster builds a roster from validated configuration.
func NewRoster(spec config.RosterSpec) (*Roster, error) {
	if len(spec) == 0 {
		return nil, fmt.Errorf("partner roster is empty")
	}
	partners := make([]Partner, 0, len(spec))
	total := decimal.Zero
	for _, entry := range spec {
		partners = append(partners, Partner{ID: entry.ID, Name: entry.Name, Percent: entry.Percent})
		total = total.Add(entry.Percent)
	}
	if !total.Equal(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("partner roster percents must sum to 100, got %s", total)
	}
	return &Roster{partners: partners}, nil
}

// All returns the roster members in configuration order.
func (r *Roster) All() []Partner {
	return r.partners
}

// Find returns the partner with the given id.
func (r *Roster) Find(id string) (Partner, bool) {
	for _, p := range r.partners {
		if p.ID == id {
			return p, true
		}
	}
	return Partner{}, false
}
