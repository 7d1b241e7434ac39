package model

import "github.com/shopspring/decimal"

// Category identifies the kind of a breakdown line.
type Category string

const (
	CategoryGarment Category = "garment"
	CategoryPrint   Category = "print"
	CategoryScreens Category = "screens"
	CategoryExtras  Category = "extras"
	CategoryUpsells Category = "upsells"
	CategoryRush    Category = "rush"
	CategoryTax     Category = "tax"
)

// LineItem is one priced row of a quote. Quantity is a count, or an area for upsells.
// Colors is only set on print lines.
type LineItem struct {
	Category  Category        `json:"category"`
	Key       string          `json:"key,omitempty"`
	Label     string          `json:"label"`
	Colors    int             `json:"colors,omitempty"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  decimal.Decimal `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	Waived    bool            `json:"waived,omitempty"`
}

// Advisory is returned instead of a priced quote when the order is below the tenant minimum.
type Advisory struct {
	Message     string `json:"message"`
	MinQuantity int    `json:"min_quantity"`
	Suggest     string `json:"suggest,omitempty"`
	Label       string `json:"label,omitempty"`
	Link        string `json:"link,omitempty"`
	CTA         string `json:"cta,omitempty"`
}

// Breakdown is the immutable result of one quote computation.
// Line items are in the fixed order garment, print, screens, extras, upsells, rush, tax.
type Breakdown struct {
	Tenant    string     `json:"tenant"`
	Quantity  int        `json:"quantity"`
	LineItems []LineItem `json:"line_items"`

	ItemsSubtotal   decimal.Decimal `json:"items_subtotal"`
	UpsellsSubtotal decimal.Decimal `json:"upsells_subtotal"`
	RushFee         decimal.Decimal `json:"rush_fee"`
	PreTaxSubtotal  decimal.Decimal `json:"pre_tax_subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	PricePerShirt   decimal.Decimal `json:"price_per_shirt"`

	GuardrailTriggered bool      `json:"guardrail_triggered"`
	Advisory           *Advisory `json:"advisory,omitempty"`
}

// LinesOf returns the line items of one category, preserving order.
func (b *Breakdown) LinesOf(category Category) []LineItem {
	var out []LineItem
	for _, li := range b.LineItems {
		if li.Category == category {
			out = append(out, li)
		}
	}
	return out
}

// CategoryTotal sums the line totals of one category.
func (b *Breakdown) CategoryTotal(category Category) decimal.Decimal {
	total := decimal.Zero
	for _, li := range b.LineItems {
		if li.Category == category {
			total = total.Add(li.LineTotal)
		}
	}
	return total
}
