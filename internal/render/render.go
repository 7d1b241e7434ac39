// Package render formats a computed breakdown as plain text, HTML and PDF.
//
// Renderers only walk Breakdown.LineItems in order and print the rounded values the
// engine produced. They never sort lines or recompute money, so every surface shows
// the same figures as the JSON response.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// Quote is a breakdown plus the presentation details around it.
type Quote struct {
	ID        string
	ShopName  string
	Breakdown *model.Breakdown
	Customer  *model.Customer
	Notes     string
	CreatedAt time.Time
}

// Title returns the heading used by every rendering.
func (q Quote) Title() string {
	if q.ShopName == "" {
		return "Quote " + q.ID
	}
	return fmt.Sprintf("Quote %s from %s", q.ID, q.ShopName)
}

// Subject returns an email subject line for the quote.
func (q Quote) Subject() string {
	shop := q.ShopName
	if shop == "" {
		shop = "us"
	}
	if q.Breakdown == nil || q.Breakdown.GuardrailTriggered {
		return "Your quote request to " + shop
	}
	return fmt.Sprintf("Your Quote from %s - $%s", shop, model.FormatMoney(q.Breakdown.GrandTotal))
}

// Text renders the quote as plain text.
func Text(q Quote) string {
	var sb strings.Builder
	b := q.Breakdown

	sb.WriteString(q.Title())
	sb.WriteString("\n")
	if !q.CreatedAt.IsZero() {
		sb.WriteString(q.CreatedAt.UTC().Format("2006-01-02 15:04 MST"))
		sb.WriteString("\n")
	}
	if b == nil {
		return sb.String()
	}
	fmt.Fprintf(&sb, "%d pieces\n\n", b.Quantity)

	if b.GuardrailTriggered && b.Advisory != nil {
		sb.WriteString(b.Advisory.Message)
		sb.WriteString("\n")
		if b.Advisory.Link != "" {
			fmt.Fprintf(&sb, "%s: %s\n", b.Advisory.CTA, b.Advisory.Link)
		}
		return sb.String()
	}

	for _, li := range b.LineItems {
		fmt.Fprintf(&sb, "  %-40s %8s x $%-9s $%s\n",
			li.Label, Quantity(li.Quantity), model.FormatMoney(li.UnitPrice), model.FormatMoney(li.LineTotal))
	}

	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Items subtotal: $%s\n", model.FormatMoney(b.ItemsSubtotal))
	if b.RushFee.IsPositive() {
		fmt.Fprintf(&sb, "Rush: $%s\n", model.FormatMoney(b.RushFee))
	}
	if b.UpsellsSubtotal.IsPositive() {
		fmt.Fprintf(&sb, "Upsells: $%s\n", model.FormatMoney(b.UpsellsSubtotal))
	}
	if b.Tax.IsPositive() {
		fmt.Fprintf(&sb, "Subtotal before tax: $%s\n", model.FormatMoney(b.PreTaxSubtotal))
		fmt.Fprintf(&sb, "Tax: $%s\n", model.FormatMoney(b.Tax))
	}
	fmt.Fprintf(&sb, "TOTAL: $%s ($%s per shirt)\n", model.FormatMoney(b.GrandTotal), model.FormatMoney(b.PricePerShirt))

	if q.Notes != "" {
		sb.WriteString("\nNotes:\n")
		sb.WriteString(q.Notes)
		sb.WriteString("\n")
	}
	return sb.String()
}
