package domain

import "time"

// PricingRow is one freight-type row in a pricing table.
type PricingRow struct {
	Type  string   `json:"type"`
	Rates []string `json:"rates"`
}

// PricingTable is one direction's rate table as shown on the pricing page.
type PricingTable struct {
	Headers []string     `json:"headers"`
	Rows    []PricingRow `json:"rows"`
}

// Pricing is the singleton pricing document admins edit from the dashboard.
type Pricing struct {
	USAToNigeria PricingTable `json:"usaToNigeria"`
	NigeriaToUSA PricingTable `json:"nigeriaToUSA"`
	UpdatedAt    time.Time    `json:"updatedAt,omitzero"`
}

// DefaultPricing returns the empty rate structure served when no pricing has
// been saved yet, so the marketing page always has tables to render.
func DefaultPricing() Pricing {
	emptyRows := func() []PricingRow {
		return []PricingRow{
			{Type: "Air Freight", Rates: []string{"", "", "", "", ""}},
			{Type: "Sea Freight", Rates: []string{"", "", "", "", ""}},
		}
	}
	return Pricing{
		USAToNigeria: PricingTable{
			Headers: []string{"Freight Type", "Fashion Items", "Computing", "Drugs & Chemicals", "Frozen Food", "Machinery"},
			Rows:    emptyRows(),
		},
		NigeriaToUSA: PricingTable{
			Headers: []string{"Freight Type", "Fashion Items", "Perishables", "Farm Produce", "Frozen Food", "Machinery"},
			Rows:    emptyRows(),
		},
	}
}
