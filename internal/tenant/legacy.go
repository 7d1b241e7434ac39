package tenant

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

var colorKeyPattern = regexp.MustCompile(`^(\d+)_color$`)

const (
	legacyMarkupPct    = "0.40"
	legacyRushRate     = "0.50"
	legacyUpsellMaxDim = "240"
)

// legacyExtras are the per-shirt toggles of the older console config.
var legacyExtras = []struct {
	key   string
	label string
}{
	{"fold_bag", "Fold & Bag"},
	{"names", "Names"},
	{"numbers", "Numbers"},
	{"heat_press", "Heat Press"},
	{"tagging", "Tagging"},
}

// fromLegacy converts the older two-file layout: pricing.json with
// screen_print.tiers["N_color"]["lo-hi"|"lo+"], and config.json with the
// console, printing, ui and customer_portal sections.
func fromLegacy(tenant string, k *koanf.Koanf) (*model.PricingConfig, error) {
	cfg := &model.PricingConfig{
		ShopName:                k.String("brand_name"),
		MinQuantity:             k.Int("screen_print.min_qty"),
		MaxQuantity:             k.Int("screen_print.max_qty"),
		MaxColorsPerPlacement:   map[string]int{},
		Garments:                map[string]model.Garment{},
		Extras:                  map[string]model.Extra{},
		UpsellItems:             map[string]model.UpsellItem{},
		PerShirtIncludesScreens: true,
	}

	tiers, err := legacyTiers(tenant, k)
	if err != nil {
		return nil, err
	}
	cfg.PrintTiers = tiers

	if err := legacyGarments(tenant, k, cfg); err != nil {
		return nil, err
	}

	markup := model.Dollars(legacyMarkupPct)
	for _, path := range []string{"console.garment_markup_pct", "console.markup.garment_pct"} {
		if k.Exists(path) {
			if markup, err = decimalAt(tenant, k, path); err != nil {
				return nil, err
			}
			break
		}
	}
	cfg.GarmentMarkupPct = markup

	if k.Exists("console.max_colors_per_placement") {
		for name, v := range k.IntMap("console.max_colors_per_placement") {
			cfg.MaxColorsPerPlacement[model.NormalizePlacementName(name)] = v
		}
	}
	switch {
	case k.Exists("printing.max_colors"):
		cfg.DefaultMaxColors = k.Int("printing.max_colors")
	case k.Exists("console.max_colors"):
		cfg.DefaultMaxColors = k.Int("console.max_colors")
	}
	cfg.Placements = k.Strings("printing.placements")

	for _, ex := range legacyExtras {
		path := "console.extras." + ex.key + "_per_shirt"
		if !k.Exists(path) {
			continue
		}
		price, err := decimalAt(tenant, k, path)
		if err != nil {
			return nil, err
		}
		if price.IsPositive() {
			cfg.Extras[ex.key] = model.Extra{Label: ex.label, Rule: model.ExtraPerShirt, Price: price}
		}
	}

	rush := model.Dollars(legacyRushRate)
	if k.Exists("console.extras.rush_multiplier") {
		if rush, err = decimalAt(tenant, k, "console.extras.rush_multiplier"); err != nil {
			return nil, err
		}
	}
	cfg.Rush = model.RushRule{Kind: model.RushPercent, Amount: rush}

	if err := legacyScreens(tenant, k, cfg); err != nil {
		return nil, err
	}
	if err := legacyUpsells(tenant, k, cfg); err != nil {
		return nil, err
	}

	cfg.SmallOrder = model.SmallOrderPolicy{
		Suggest: strings.ToLower(k.String("ui.small_order.suggest")),
		Label:   k.String("ui.small_order.label"),
		Link:    k.String("ui.small_order.link"),
		CTA:     k.String("ui.small_order.cta_get"),
		Message: k.String("alt_small_order_message"),
	}

	cfg.Portal = model.PortalSettings{
		Enabled:     k.Bool("customer_portal.enabled"),
		MinQuantity: k.Int("customer_portal.min_qty"),
		MaxQuantity: k.Int("customer_portal.max_qty"),
		MaxColors:   k.Int("customer_portal.max_colors"),
		NotifyEmail: k.String("customer_portal.notify_email"),
	}

	if k.Exists("tax_rate") {
		if cfg.TaxRate, err = decimalAt(tenant, k, "tax_rate"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

type band struct {
	min int
	max *int
}

// parseBand reads "12-23", "12–23" (en dash) or "5000+".
func parseBand(s string) (band, error) {
	b := strings.TrimSpace(strings.NewReplacer("–", "-", "—", "-").Replace(s))
	if strings.HasSuffix(b, "+") {
		lo, err := strconv.Atoi(strings.TrimSpace(strings.TrimSuffix(b, "+")))
		if err != nil {
			return band{}, fmt.Errorf("bad bracket %q", s)
		}
		return band{min: lo}, nil
	}
	parts := strings.Split(b, "-")
	if len(parts) != 2 {
		return band{}, fmt.Errorf("bad bracket %q", s)
	}
	lo, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	hi, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil {
		return band{}, fmt.Errorf("bad bracket %q", s)
	}
	return band{min: lo, max: &hi}, nil
}

func legacyTiers(tenant string, k *koanf.Koanf) ([]model.PrintTier, error) {
	byColor, ok := k.Get("screen_print.tiers").(map[string]interface{})
	if !ok || len(byColor) == 0 {
		return nil, model.NewConfigError(tenant, "screen_print.tiers is missing")
	}

	byMin := map[int]*model.PrintTier{}
	for colorKey, rawBands := range byColor {
		m := colorKeyPattern.FindStringSubmatch(colorKey)
		if m == nil {
			return nil, model.NewConfigError(tenant, "unknown color key %q", colorKey)
		}
		colors, _ := strconv.Atoi(m[1])

		bands, ok := rawBands.(map[string]interface{})
		if !ok {
			return nil, model.NewConfigError(tenant, "screen_print.tiers.%s is not an object", colorKey)
		}
		for label, rawPrice := range bands {
			b, err := parseBand(label)
			if err != nil {
				return nil, model.NewConfigError(tenant, "%s: %v", colorKey, err)
			}
			price, err := toDecimal(rawPrice)
			if err != nil {
				return nil, model.NewConfigError(tenant, "%s %s: %v", colorKey, label, err)
			}

			tier, ok := byMin[b.min]
			if !ok {
				tier = &model.PrintTier{Min: b.min, Max: b.max, Prices: map[int]decimal.Decimal{}}
				byMin[b.min] = tier
			} else if !sameMax(tier.Max, b.max) {
				return nil, model.NewConfigError(tenant, "bracket starting at %d has different ends across colors", b.min)
			}
			tier.Prices[colors] = price
		}
	}

	tiers := make([]model.PrintTier, 0, len(byMin))
	for _, t := range byMin {
		tiers = append(tiers, *t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Min < tiers[j].Min })
	return tiers, nil
}

// coverBelowMinimum lets an older table that starts at the shop minimum pass
// validation. The first bracket is only stretched down to 1 when the
// guardrail answers every quantity below it; otherwise the gap stays and the
// config is rejected.
func coverBelowMinimum(cfg *model.PricingConfig) {
	if len(cfg.PrintTiers) == 0 {
		return
	}
	first := &cfg.PrintTiers[0]
	if first.Min > model.MinOrderQuantity && cfg.MinQuantity >= first.Min {
		first.Min = model.MinOrderQuantity
	}
}

func sameMax(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func legacyGarments(tenant string, k *koanf.Koanf, cfg *model.PricingConfig) error {
	add := func(key string, g model.Garment) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if _, exists := cfg.Garments[key]; !exists {
			cfg.Garments[key] = g
		}
	}

	for _, item := range k.Slices("console.garments") {
		g, err := legacyGarment(tenant, item, "")
		if err != nil {
			return err
		}
		add(item.String("key"), g)
	}

	for _, category := range k.Slices("customer_portal.garments.categories") {
		for _, item := range category.Slices("items") {
			g, err := legacyGarment(tenant, item, category.String("key"))
			if err != nil {
				return err
			}
			add(item.String("key"), g)
		}
	}

	if k.Bool("garments.tiers_enabled") {
		tiers, _ := k.Get("garments.tiers").(map[string]interface{})
		for key := range tiers {
			price, err := decimalAt(tenant, k, "garments.tiers."+key+".blank_price")
			if err != nil {
				return err
			}
			label := k.String("garments.tiers." + key + ".label")
			if label == "" {
				label = model.PlacementLabel(key)
			}
			add(key, model.Garment{Label: label, BaseCost: price, Price: &price})
		}
	}

	for _, path := range []string{"garments.single_blank_price", "screen_print.garment_base"} {
		if !k.Exists(path) {
			continue
		}
		price, err := decimalAt(tenant, k, path)
		if err != nil {
			return err
		}
		add("standard", model.Garment{Label: "Standard Blank", BaseCost: price, Price: &price})
		break
	}
	return nil
}

func legacyGarment(tenant string, item *koanf.Koanf, category string) (model.Garment, error) {
	g := model.Garment{Label: item.String("label"), Category: category}
	if g.Label == "" {
		g.Label = item.String("key")
	}

	if item.Exists("cost") {
		cost, err := decimalAt(tenant, item, "cost")
		if err != nil {
			return g, err
		}
		g.BaseCost = cost
	}
	if item.Exists("price") {
		price, err := decimalAt(tenant, item, "price")
		if err != nil {
			return g, err
		}
		g.Price = &price
	}
	if item.Exists("markup_pct") {
		pct, err := decimalAt(tenant, item, "markup_pct")
		if err != nil {
			return g, err
		}
		g.MarkupPct = &pct
	}
	return g, nil
}

func legacyScreens(tenant string, k *koanf.Koanf, cfg *model.PricingConfig) error {
	if !k.Bool("console.screen_charges.enabled") {
		return nil
	}
	price, err := decimalAt(tenant, k, "console.screen_charges.price_per_screen")
	if err != nil {
		return err
	}
	cfg.Screens = model.ScreenCharge{
		PricePerScreen:      price,
		CountWhiteUnderbase: k.Bool("console.screen_charges.count_white_underbase"),
	}
	if k.Int("console.screen_charges.waive_at_qty") > 0 {
		n := k.Int("console.screen_charges.waive_at_qty")
		cfg.Screens.WaiveAtQty = &n
	}
	if k.Exists("console.screen_charges.max_screens") && k.String("console.screen_charges.max_screens") != "" {
		n := k.Int("console.screen_charges.max_screens")
		cfg.Screens.MaxScreens = &n
	}
	return nil
}

func legacyUpsells(tenant string, k *koanf.Koanf, cfg *model.PricingConfig) error {
	if !k.Bool("console.upsell_module.enabled") {
		return nil
	}
	for _, item := range k.Slices("console.upsell_module.items") {
		key := strings.TrimSpace(item.String("key"))
		if key == "" {
			continue
		}
		rate, err := decimalAt(tenant, item, "rate_per_sqft")
		if err != nil {
			return err
		}
		u := model.UpsellItem{
			Label:            item.String("label"),
			PricePerUnitArea: rate,
			Unit:             model.AreaSquareFoot,
			MinWidth:         decimal.NewFromInt(1),
			MaxWidth:         model.Dollars(legacyUpsellMaxDim),
			MinHeight:        decimal.NewFromInt(1),
			MaxHeight:        model.Dollars(legacyUpsellMaxDim),
		}
		if u.Label == "" {
			u.Label = key
		}
		for path, dst := range map[string]*decimal.Decimal{
			"min_width_in": &u.MinWidth, "max_width_in": &u.MaxWidth,
			"min_height_in": &u.MinHeight, "max_height_in": &u.MaxHeight,
		} {
			if item.Exists(path) {
				if *dst, err = decimalAt(tenant, item, path); err != nil {
					return err
				}
			}
		}
		cfg.UpsellItems[key] = u
	}
	return nil
}

func decimalAt(tenant string, k *koanf.Koanf, path string) (decimal.Decimal, error) {
	d, err := toDecimal(k.Get(path))
	if err != nil {
		return decimal.Zero, model.NewConfigError(tenant, "%s: %v", path, err)
	}
	return d, nil
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(n))
	case nil:
		return decimal.Zero, fmt.Errorf("missing value")
	default:
		return decimal.Zero, fmt.Errorf("unexpected %T", v)
	}
}
