package service

import (
	"sort"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// ResolveTierPrice returns the per-shirt print price for one placement.
//
// Brackets must be ordered by Min. A quantity no bracket covers is a ConfigError;
// a color count above what the bracket prices is a ValidationError.
func ResolveTierPrice(quantity, colors int, tiers []model.PrintTier) (decimal.Decimal, error) {
	if quantity < model.MinOrderQuantity {
		return decimal.Zero, model.NewValidationError("quantity", "must be at least %d", model.MinOrderQuantity)
	}
	if colors < 1 {
		return decimal.Zero, model.NewValidationError("colors", "must be at least 1")
	}

	// first bracket starting above quantity; the candidate is the one before it
	idx := sort.Search(len(tiers), func(i int) bool {
		return tiers[i].Min > quantity
	}) - 1
	if idx < 0 || !tiers[idx].Contains(quantity) {
		return decimal.Zero, model.NewConfigError("", "no print tier covers quantity %d", quantity)
	}

	tier := tiers[idx]
	price, ok := tier.Prices[colors]
	if !ok {
		if colors > tier.MaxColors() {
			return decimal.Zero, model.NewValidationError("colors",
				"%d colors exceeds the %d priced for %s pieces", colors, tier.MaxColors(), tier.Label())
		}
		return decimal.Zero, model.NewConfigError("", "print tier %s has no price for %d colors", tier.Label(), colors)
	}
	return price, nil
}
