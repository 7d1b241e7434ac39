package model

import (
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	// GlobalMaxColors is the hard ceiling on colors for any placement.
	GlobalMaxColors = 12
	// MinOrderQuantity and MaxOrderQuantity bound every quote the engine prices.
	MinOrderQuantity = 1
	MaxOrderQuantity = 100000

	defaultMaxColors          = 6
	defaultCustomGarmentLimit = "100"
	defaultPortalMinQuantity  = 12
	defaultPortalMaxColors    = 6
	defaultPortalMaxQuantity  = 1000
)

// DefaultPlacements are offered when a tenant does not list its own.
var DefaultPlacements = []string{"front", "back", "left_sleeve", "right_sleeve"}

// ExtraRule selects how an extra is charged.
type ExtraRule string

const (
	// ExtraFlat is charged once per order.
	ExtraFlat ExtraRule = "flat"
	// ExtraPerUnit is charged per unit the customer asks for (e.g. names).
	ExtraPerUnit ExtraRule = "per_unit"
	// ExtraPerShirt is charged for every shirt in the order.
	ExtraPerShirt ExtraRule = "per_shirt"
)

// AreaUnit is the unit an upsell rate is expressed in. Dimensions are always inches.
type AreaUnit string

const (
	AreaSquareInch AreaUnit = "sq_in"
	AreaSquareFoot AreaUnit = "sq_ft"
)

// RushKind selects how the rush fee is derived.
type RushKind string

const (
	RushFlat    RushKind = "flat"
	RushPercent RushKind = "percent"
)

// Garment is a catalog entry. Price, when set, overrides the markup formula.
type Garment struct {
	Label     string           `json:"label" bson:"label"`
	BaseCost  decimal.Decimal  `json:"base_cost" bson:"base_cost" swaggertype:"string" example:"3.45"`
	MarkupPct *decimal.Decimal `json:"markup_pct,omitempty" bson:"markup_pct,omitempty" swaggertype:"string" example:"0.40"`
	Price     *decimal.Decimal `json:"price,omitempty" bson:"price,omitempty" swaggertype:"string" example:"5.75"`
	Category  string           `json:"category,omitempty" bson:"category,omitempty"`
}

// PrintTier is one quantity bracket. A nil Max means the bracket is open-ended.
// Prices maps a color count to the per-shirt print price.
type PrintTier struct {
	Min    int                     `json:"min" bson:"min"`
	Max    *int                    `json:"max,omitempty" bson:"max,omitempty"`
	Prices map[int]decimal.Decimal `json:"prices" bson:"prices" swaggertype:"object"`
}

// Contains reports whether quantity falls inside the bracket.
func (t PrintTier) Contains(quantity int) bool {
	if quantity < t.Min {
		return false
	}
	return t.Max == nil || quantity <= *t.Max
}

// MaxColors returns the highest color count the bracket prices.
func (t PrintTier) MaxColors() int {
	maxColors := 0
	for c := range t.Prices {
		if c > maxColors {
			maxColors = c
		}
	}
	return maxColors
}

// Label renders the bracket as "12-23" or "5000+".
func (t PrintTier) Label() string {
	if t.Max == nil {
		return strconv.Itoa(t.Min) + "+"
	}
	return strconv.Itoa(t.Min) + "-" + strconv.Itoa(*t.Max)
}

// Extra is an optional add-on priced by rule.
type Extra struct {
	Label string          `json:"label" bson:"label"`
	Rule  ExtraRule       `json:"rule" bson:"rule" enums:"flat,per_unit,per_shirt"`
	Price decimal.Decimal `json:"price" bson:"price" swaggertype:"string" example:"2.00"`
}

// UpsellItem is an add-on product priced by area.
type UpsellItem struct {
	Label            string          `json:"label" bson:"label"`
	PricePerUnitArea decimal.Decimal `json:"price_per_unit_area" bson:"price_per_unit_area" swaggertype:"string" example:"12.00"`
	Unit             AreaUnit        `json:"unit" bson:"unit" enums:"sq_in,sq_ft"`
	MinWidth         decimal.Decimal `json:"min_width" bson:"min_width" swaggertype:"string"`
	MaxWidth         decimal.Decimal `json:"max_width" bson:"max_width" swaggertype:"string"`
	MinHeight        decimal.Decimal `json:"min_height" bson:"min_height" swaggertype:"string"`
	MaxHeight        decimal.Decimal `json:"max_height" bson:"max_height" swaggertype:"string"`
}

// ScreenCharge is the one-time setup fee per color layer per placement.
type ScreenCharge struct {
	PricePerScreen      decimal.Decimal `json:"price_per_screen" bson:"price_per_screen" swaggertype:"string" example:"25.00"`
	CountWhiteUnderbase bool            `json:"count_white_underbase" bson:"count_white_underbase"`
	WaiveAtQty          *int            `json:"waive_at_qty,omitempty" bson:"waive_at_qty,omitempty"`
	MaxScreens          *int            `json:"max_screens,omitempty" bson:"max_screens,omitempty"`
}

// Enabled reports whether screens are charged at all.
func (s ScreenCharge) Enabled() bool {
	return s.PricePerScreen.IsPositive()
}

// RushRule describes the rush surcharge.
type RushRule struct {
	Kind   RushKind        `json:"kind" bson:"kind" enums:"flat,percent"`
	Amount decimal.Decimal `json:"amount" bson:"amount" swaggertype:"string" example:"0.50"`
}

// SmallOrderPolicy is what the guardrail suggests instead of screen printing.
type SmallOrderPolicy struct {
	Suggest string `json:"suggest" bson:"suggest" example:"dtf"`
	Label   string `json:"label,omitempty" bson:"label,omitempty"`
	Link    string `json:"link,omitempty" bson:"link,omitempty"`
	CTA     string `json:"cta,omitempty" bson:"cta,omitempty"`
	Message string `json:"message,omitempty" bson:"message,omitempty"`
}

// PortalSettings are the customer portal's own ceilings, tighter than the engine's.
type PortalSettings struct {
	Enabled     bool   `json:"enabled" bson:"enabled"`
	MinQuantity int    `json:"min_quantity" bson:"min_quantity"`
	MaxQuantity int    `json:"max_quantity" bson:"max_quantity"`
	MaxColors   int    `json:"max_colors" bson:"max_colors"`
	NotifyEmail string `json:"notify_email,omitempty" bson:"notify_email,omitempty"`
}

// PricingConfig is a tenant's complete, validated pricing snapshot.
// Once published it is shared read-only between concurrent quotes; reloads build a new value.
type PricingConfig struct {
	Tenant   string `json:"tenant" bson:"tenant"`
	ShopName string `json:"shop_name" bson:"shop_name"`
	Version  int    `json:"version" bson:"version"`

	Garments           map[string]Garment `json:"garments" bson:"garments"`
	GarmentMarkupPct   decimal.Decimal    `json:"garment_markup_pct" bson:"garment_markup_pct" swaggertype:"string" example:"0.40"`
	CustomGarmentLimit decimal.Decimal    `json:"custom_garment_limit" bson:"custom_garment_limit" swaggertype:"string" example:"100.00"`

	PrintTiers            []PrintTier    `json:"print_tiers" bson:"print_tiers"`
	MaxColorsPerPlacement map[string]int `json:"max_colors_per_placement" bson:"max_colors_per_placement"`
	DefaultMaxColors      int            `json:"default_max_colors" bson:"default_max_colors"`
	Placements            []string       `json:"placements" bson:"placements"`

	Extras      map[string]Extra      `json:"extras" bson:"extras"`
	UpsellItems map[string]UpsellItem `json:"upsell_items" bson:"upsell_items"`
	Screens     ScreenCharge          `json:"screens" bson:"screens"`

	MinQuantity int `json:"min_quantity" bson:"min_quantity"`
	// MaxQuantity is the largest order priced without a custom quote. Zero means no ceiling.
	MaxQuantity int              `json:"max_quantity,omitempty" bson:"max_quantity,omitempty"`
	SmallOrder  SmallOrderPolicy `json:"small_order" bson:"small_order"`
	Rush        RushRule         `json:"rush" bson:"rush"`
	TaxRate     decimal.Decimal  `json:"tax_rate" bson:"tax_rate" swaggertype:"string" example:"0"`

	// PerShirtIncludesScreens controls whether the screens setup charge is
	// spread into the per-shirt figure.
	PerShirtIncludesScreens bool `json:"per_shirt_includes_screens" bson:"per_shirt_includes_screens"`

	Portal PortalSettings `json:"portal" bson:"portal"`
}

// ApplyDefaults fills zero-valued optional fields with the shop-wide defaults.
func (c *PricingConfig) ApplyDefaults() {
	if c.DefaultMaxColors == 0 {
		c.DefaultMaxColors = defaultMaxColors
	}
	if c.CustomGarmentLimit.IsZero() {
		c.CustomGarmentLimit = Dollars(defaultCustomGarmentLimit)
	}
	if len(c.Placements) == 0 {
		c.Placements = append([]string(nil), DefaultPlacements...)
	}
	if c.SmallOrder.Suggest == "" {
		c.SmallOrder.Suggest = "dtf"
	}
	if c.SmallOrder.Label == "" {
		switch c.SmallOrder.Suggest {
		case "dtf":
			c.SmallOrder.Label = "DTF transfers"
		case "embroidery":
			c.SmallOrder.Label = "Embroidery"
		}
	}
	if c.SmallOrder.CTA == "" && c.SmallOrder.Label != "" {
		c.SmallOrder.CTA = "Get " + c.SmallOrder.Label + " Quote"
	}
	if c.Rush.Kind == "" {
		c.Rush.Kind = RushPercent
	}
	if c.Portal.MinQuantity == 0 {
		c.Portal.MinQuantity = defaultPortalMinQuantity
	}
	if c.Portal.MaxQuantity == 0 {
		c.Portal.MaxQuantity = defaultPortalMaxQuantity
	}
	if c.Portal.MaxColors == 0 {
		c.Portal.MaxColors = defaultPortalMaxColors
	}
}

// MaxColorsFor returns the color cap for a placement, falling back to the tenant default.
func (c *PricingConfig) MaxColorsFor(placement string) int {
	if n, ok := c.MaxColorsPerPlacement[placement]; ok && n > 0 {
		return n
	}
	if c.DefaultMaxColors > 0 {
		return c.DefaultMaxColors
	}
	return defaultMaxColors
}

// ExtraKeys returns the configured extra keys in a stable order.
func (c *PricingConfig) ExtraKeys() []string {
	keys := make([]string, 0, len(c.Extras))
	for k := range c.Extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GarmentKeys returns the catalog keys in a stable order.
func (c *PricingConfig) GarmentKeys() []string {
	keys := make([]string, 0, len(c.Garments))
	for k := range c.Garments {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GarmentUnitPrice returns the unrounded per-shirt price of a catalog garment.
func (c *PricingConfig) GarmentUnitPrice(g Garment) decimal.Decimal {
	if g.Price != nil {
		return *g.Price
	}
	pct := c.GarmentMarkupPct
	if g.MarkupPct != nil {
		pct = *g.MarkupPct
	}
	return g.BaseCost.Mul(decimal.NewFromInt(1).Add(pct))
}

// Validate checks every structural invariant the engine relies on.
func (c *PricingConfig) Validate() error {
	for key, g := range c.Garments {
		if g.BaseCost.IsNegative() {
			return NewConfigError(c.Tenant, "garment %q has negative base cost", key)
		}
		if g.MarkupPct != nil && g.MarkupPct.IsNegative() {
			return NewConfigError(c.Tenant, "garment %q has negative markup", key)
		}
		if g.Price != nil && g.Price.IsNegative() {
			return NewConfigError(c.Tenant, "garment %q has negative price", key)
		}
	}
	if c.GarmentMarkupPct.IsNegative() {
		return NewConfigError(c.Tenant, "garment markup must not be negative")
	}
	if c.CustomGarmentLimit.IsNegative() {
		return NewConfigError(c.Tenant, "custom garment limit must not be negative")
	}

	if err := c.validateTiers(); err != nil {
		return err
	}

	if c.DefaultMaxColors < 1 || c.DefaultMaxColors > GlobalMaxColors {
		return NewConfigError(c.Tenant, "default max colors must be between 1 and %d", GlobalMaxColors)
	}
	for placement, n := range c.MaxColorsPerPlacement {
		if n < 1 || n > GlobalMaxColors {
			return NewConfigError(c.Tenant, "max colors for %q must be between 1 and %d", placement, GlobalMaxColors)
		}
	}

	for key, e := range c.Extras {
		switch e.Rule {
		case ExtraFlat, ExtraPerUnit, ExtraPerShirt:
		default:
			return NewConfigError(c.Tenant, "extra %q has unknown rule %q", key, e.Rule)
		}
		if e.Price.IsNegative() {
			return NewConfigError(c.Tenant, "extra %q has negative price", key)
		}
	}

	for key, u := range c.UpsellItems {
		if u.Unit != AreaSquareInch && u.Unit != AreaSquareFoot {
			return NewConfigError(c.Tenant, "upsell %q has unknown unit %q", key, u.Unit)
		}
		if u.PricePerUnitArea.IsNegative() {
			return NewConfigError(c.Tenant, "upsell %q has negative rate", key)
		}
		if u.MinWidth.IsNegative() || u.MinHeight.IsNegative() {
			return NewConfigError(c.Tenant, "upsell %q has negative minimum dimension", key)
		}
		if u.MaxWidth.LessThan(u.MinWidth) || u.MaxHeight.LessThan(u.MinHeight) {
			return NewConfigError(c.Tenant, "upsell %q has max dimension below min", key)
		}
	}

	if c.Screens.PricePerScreen.IsNegative() {
		return NewConfigError(c.Tenant, "screen price must not be negative")
	}
	if c.Screens.MaxScreens != nil && *c.Screens.MaxScreens < 0 {
		return NewConfigError(c.Tenant, "max screens must not be negative")
	}
	if c.Screens.WaiveAtQty != nil && *c.Screens.WaiveAtQty < 1 {
		return NewConfigError(c.Tenant, "screen waive quantity must be at least 1")
	}

	if c.MinQuantity < 0 {
		return NewConfigError(c.Tenant, "minimum quantity must not be negative")
	}
	if c.MaxQuantity < 0 {
		return NewConfigError(c.Tenant, "maximum quantity must not be negative")
	}
	if c.MaxQuantity > 0 && c.MaxQuantity < c.MinQuantity {
		return NewConfigError(c.Tenant, "maximum quantity %d is below the minimum %d", c.MaxQuantity, c.MinQuantity)
	}
	switch c.Rush.Kind {
	case RushFlat, RushPercent:
	default:
		return NewConfigError(c.Tenant, "unknown rush kind %q", c.Rush.Kind)
	}
	if c.Rush.Amount.IsNegative() {
		return NewConfigError(c.Tenant, "rush amount must not be negative")
	}
	if c.TaxRate.IsNegative() {
		return NewConfigError(c.Tenant, "tax rate must not be negative")
	}
	return nil
}

func (c *PricingConfig) validateTiers() error {
	if len(c.PrintTiers) == 0 {
		return NewConfigError(c.Tenant, "no print tiers configured")
	}
	if c.PrintTiers[0].Min != MinOrderQuantity {
		return NewConfigError(c.Tenant, "first print tier must start at %d", MinOrderQuantity)
	}

	colors := c.PrintTiers[0].MaxColors()
	if colors < 1 || colors > GlobalMaxColors {
		return NewConfigError(c.Tenant, "print tiers must price between 1 and %d colors", GlobalMaxColors)
	}

	for i, tier := range c.PrintTiers {
		if tier.Max != nil && *tier.Max < tier.Min {
			return NewConfigError(c.Tenant, "print tier %s is empty", tier.Label())
		}
		if tier.Max == nil && i != len(c.PrintTiers)-1 {
			return NewConfigError(c.Tenant, "only the last print tier may be open-ended")
		}
		if i > 0 {
			prev := c.PrintTiers[i-1]
			if tier.Min != *prev.Max+1 {
				return NewConfigError(c.Tenant, "print tiers %s and %s are not contiguous", prev.Label(), tier.Label())
			}
		}
		if len(tier.Prices) != colors || tier.MaxColors() != colors {
			return NewConfigError(c.Tenant, "print tier %s must price colors 1 through %d", tier.Label(), colors)
		}
		for n := 1; n <= colors; n++ {
			price, ok := tier.Prices[n]
			if !ok {
				return NewConfigError(c.Tenant, "print tier %s has no price for %d colors", tier.Label(), n)
			}
			if price.IsNegative() {
				return NewConfigError(c.Tenant, "print tier %s has negative price for %d colors", tier.Label(), n)
			}
			if n > 1 && price.LessThan(tier.Prices[n-1]) {
				return NewConfigError(c.Tenant, "print tier %s price drops from %d to %d colors", tier.Label(), n-1, n)
			}
			if i > 0 && price.GreaterThan(c.PrintTiers[i-1].Prices[n]) {
				return NewConfigError(c.Tenant, "print tier %s costs more than %s for %d colors",
					tier.Label(), c.PrintTiers[i-1].Label(), n)
			}
		}
	}
	return nil
}
