package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// GarmentSelection is one of CatalogGarment, CustomGarment or SupplyOwnGarment.
type GarmentSelection interface {
	garmentSelection()
}

// CatalogGarment picks a garment from the tenant catalog.
type CatalogGarment struct {
	Key string
}

// CustomGarment is a garment the shop prices by hand.
type CustomGarment struct {
	Label string
	Cost  decimal.Decimal
}

// SupplyOwnGarment means the customer brings the blanks; no garment line is charged.
type SupplyOwnGarment struct{}

func (CatalogGarment) garmentSelection()   {}
func (CustomGarment) garmentSelection()    {}
func (SupplyOwnGarment) garmentSelection() {}

// Placement is a print location and its requested color count.
type Placement struct {
	Name   string
	Colors int
}

// ExtraSelection selects an extra; Quantity is only read by per-unit extras.
type ExtraSelection struct {
	Key      string
	Quantity int
}

// UpsellSelection is one area-priced add-on. Width and Height are inches.
type UpsellSelection struct {
	Key      string
	Width    decimal.Decimal
	Height   decimal.Decimal
	Quantity int
}

// OrderRequest is the engine's input, built fresh per request by either channel.
type OrderRequest struct {
	Quantity     int
	Garment      GarmentSelection
	Placements   []Placement
	Extras       []ExtraSelection
	Upsells      []UpsellSelection
	Rush         bool
	WaiveScreens bool
}

// NormalizePlacementName lowercases and trims a placement name.
func NormalizePlacementName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// PlacementLabel renders a placement name for display, e.g. "left_sleeve" as "Left Sleeve".
func PlacementLabel(name string) string {
	words := strings.Fields(strings.ReplaceAll(NormalizePlacementName(name), "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Validate checks the request shape. Pricing-dependent checks happen during calculation.
func (o *OrderRequest) Validate() error {
	if o.Quantity < MinOrderQuantity || o.Quantity > MaxOrderQuantity {
		return NewValidationError("quantity", "must be between %d and %d", MinOrderQuantity, MaxOrderQuantity)
	}
	if o.Garment == nil {
		return NewValidationError("garment", "is required")
	}
	if g, ok := o.Garment.(CatalogGarment); ok && strings.TrimSpace(g.Key) == "" {
		return NewValidationError("garment.key", "is required")
	}
	if len(o.Placements) == 0 {
		return NewValidationError("placements", "at least one placement is required")
	}

	seen := make(map[string]struct{}, len(o.Placements))
	for _, p := range o.Placements {
		name := NormalizePlacementName(p.Name)
		if name == "" {
			return NewValidationError("placements", "placement name is required")
		}
		if _, dup := seen[name]; dup {
			return NewValidationError("placements", "placement %q listed more than once", name)
		}
		seen[name] = struct{}{}
		if p.Colors < 1 || p.Colors > GlobalMaxColors {
			return NewValidationError("placements."+name, "colors must be between 1 and %d", GlobalMaxColors)
		}
	}

	extras := make(map[string]struct{}, len(o.Extras))
	for _, e := range o.Extras {
		if _, dup := extras[e.Key]; dup {
			return NewValidationError("extras", "extra %q listed more than once", e.Key)
		}
		extras[e.Key] = struct{}{}
	}
	return nil
}
