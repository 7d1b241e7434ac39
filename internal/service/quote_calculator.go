package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

var sqInchesPerSqFoot = decimal.NewFromInt(144)

// QuoteCalculator turns an order and a tenant pricing snapshot into an itemized breakdown.
type QuoteCalculator interface {
	Compute(order model.OrderRequest, cfg *model.PricingConfig) (*model.Breakdown, error)
}

// QuoteCalculatorService is the stateless quote engine. It performs no I/O and holds no
// state between calls, so one instance serves every tenant concurrently.
type QuoteCalculatorService struct{}

// NewQuoteCalculator creates the quote engine.
func NewQuoteCalculator() *QuoteCalculatorService {
	return &QuoteCalculatorService{}
}

// Compute prices an order. Steps run in a fixed order: guardrail, quantity ceiling,
// garment, print and screens, extras, upsells, rush, tax. Any error aborts without a partial breakdown.
func (s *QuoteCalculatorService) Compute(order model.OrderRequest, cfg *model.PricingConfig) (*model.Breakdown, error) {
	if cfg == nil {
		return nil, model.NewConfigError("", "pricing config is required")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}

	if advisory := CheckGuardrail(order.Quantity, cfg); advisory != nil {
		return &model.Breakdown{
			Tenant:             cfg.Tenant,
			Quantity:           order.Quantity,
			LineItems:          []model.LineItem{},
			GuardrailTriggered: true,
			Advisory:           advisory,
		}, nil
	}

	if cfg.MaxQuantity > 0 && order.Quantity > cfg.MaxQuantity {
		return nil, model.NewValidationError("quantity",
			"orders above %d pieces need a custom quote, please contact the shop", cfg.MaxQuantity)
	}

	q := newQuote(order, cfg)
	steps := []func() error{
		q.addGarment,
		q.addPrint,
		q.addScreens,
		q.addExtras,
		q.addUpsells,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, tagTenant(err, cfg.Tenant)
		}
	}
	return q.finish(), nil
}

// quote accumulates one computation at full precision.
type quote struct {
	order model.OrderRequest
	cfg   *model.PricingConfig
	qty   decimal.Decimal

	lines   []model.LineItem
	garment decimal.Decimal
	print   decimal.Decimal
	screens decimal.Decimal
	extras  decimal.Decimal
	upsells decimal.Decimal

	// clamped color count per placement, in input order
	colors []int
}

func newQuote(order model.OrderRequest, cfg *model.PricingConfig) *quote {
	return &quote{
		order:  order,
		cfg:    cfg,
		qty:    decimal.NewFromInt(int64(order.Quantity)),
		lines:  make([]model.LineItem, 0, len(order.Placements)+len(order.Extras)+len(order.Upsells)+4),
		colors: make([]int, 0, len(order.Placements)),
	}
}

func (q *quote) addGarment() error {
	var key, label string
	var unit decimal.Decimal

	switch g := q.order.Garment.(type) {
	case model.SupplyOwnGarment:
		return nil
	case model.CustomGarment:
		if g.Cost.IsNegative() || g.Cost.GreaterThan(q.cfg.CustomGarmentLimit) {
			return model.NewValidationError("garment.cost", "must be between 0 and %s",
				model.FormatMoney(q.cfg.CustomGarmentLimit))
		}
		label = strings.TrimSpace(g.Label)
		if label == "" {
			label = "Custom garment"
		}
		unit = g.Cost.Mul(decimal.NewFromInt(1).Add(q.cfg.GarmentMarkupPct))
	case model.CatalogGarment:
		key = strings.TrimSpace(g.Key)
		entry, ok := q.cfg.Garments[key]
		if !ok {
			return model.NewValidationError("garment.key", "unknown garment %q", key)
		}
		label = entry.Label
		if label == "" {
			label = key
		}
		unit = q.cfg.GarmentUnitPrice(entry)
	default:
		return model.NewValidationError("garment", "unsupported garment selection %T", g)
	}

	q.garment = unit.Mul(q.qty)
	q.lines = append(q.lines, model.LineItem{
		Category:  model.CategoryGarment,
		Key:       key,
		Label:     label,
		UnitPrice: unit,
		Quantity:  q.qty,
		LineTotal: q.garment,
	})
	return nil
}

func (q *quote) addPrint() error {
	for _, p := range q.order.Placements {
		name := model.NormalizePlacementName(p.Name)
		colors := p.Colors
		if limit := q.cfg.MaxColorsFor(name); colors > limit {
			colors = limit
		}

		unit, err := ResolveTierPrice(q.order.Quantity, colors, q.cfg.PrintTiers)
		if err != nil {
			return err
		}

		total := unit.Mul(q.qty)
		q.print = q.print.Add(total)
		q.colors = append(q.colors, colors)
		q.lines = append(q.lines, model.LineItem{
			Category:  model.CategoryPrint,
			Key:       name,
			Label:     fmt.Sprintf("%s print, %s", model.PlacementLabel(name), pluralColors(colors)),
			Colors:    colors,
			UnitPrice: unit,
			Quantity:  q.qty,
			LineTotal: total,
		})
	}
	return nil
}

// addScreens charges one screen per color layer of each placement. It is a setup fee
// and never scales with quantity.
func (q *quote) addScreens() error {
	sc := q.cfg.Screens
	if !sc.Enabled() {
		return nil
	}

	count := 0
	for _, c := range q.colors {
		count += c
		if sc.CountWhiteUnderbase {
			count++
		}
	}
	if sc.MaxScreens != nil && count > *sc.MaxScreens {
		count = *sc.MaxScreens
	}

	waived := q.order.WaiveScreens || (sc.WaiveAtQty != nil && q.order.Quantity >= *sc.WaiveAtQty)
	label := "Screens"
	total := sc.PricePerScreen.Mul(decimal.NewFromInt(int64(count)))
	if waived {
		label = "Screens (waived)"
		total = decimal.Zero
	}

	q.screens = total
	q.lines = append(q.lines, model.LineItem{
		Category:  model.CategoryScreens,
		Label:     label,
		UnitPrice: sc.PricePerScreen,
		Quantity:  decimal.NewFromInt(int64(count)),
		LineTotal: total,
		Waived:    waived,
	})
	return nil
}

func (q *quote) addExtras() error {
	selected := make([]model.ExtraSelection, len(q.order.Extras))
	copy(selected, q.order.Extras)
	sort.Slice(selected, func(i, j int) bool { return selected[i].Key < selected[j].Key })

	for _, sel := range selected {
		extra, ok := q.cfg.Extras[sel.Key]
		if !ok {
			return model.NewValidationError("extras", "unknown extra %q", sel.Key)
		}

		var units decimal.Decimal
		switch extra.Rule {
		case model.ExtraFlat:
			units = decimal.NewFromInt(1)
		case model.ExtraPerUnit:
			if sel.Quantity < 1 {
				return model.NewValidationError("extras."+sel.Key, "quantity must be at least 1")
			}
			units = decimal.NewFromInt(int64(sel.Quantity))
		case model.ExtraPerShirt:
			units = q.qty
		default:
			return model.NewConfigError("", "extra %q has unknown rule %q", sel.Key, extra.Rule)
		}

		label := extra.Label
		if label == "" {
			label = sel.Key
		}
		total := extra.Price.Mul(units)
		q.extras = q.extras.Add(total)
		q.lines = append(q.lines, model.LineItem{
			Category:  model.CategoryExtras,
			Key:       sel.Key,
			Label:     label,
			UnitPrice: extra.Price,
			Quantity:  units,
			LineTotal: total,
		})
	}
	return nil
}

func (q *quote) addUpsells() error {
	for _, sel := range q.order.Upsells {
		item, ok := q.cfg.UpsellItems[sel.Key]
		if !ok {
			return model.NewValidationError("upsells", "unknown upsell %q", sel.Key)
		}
		field := "upsells." + sel.Key
		if sel.Quantity < 1 {
			return model.NewValidationError(field, "quantity must be at least 1")
		}
		if sel.Width.LessThan(item.MinWidth) || sel.Width.GreaterThan(item.MaxWidth) {
			return model.NewValidationError(field, "width must be between %s and %s inches",
				item.MinWidth.String(), item.MaxWidth.String())
		}
		if sel.Height.LessThan(item.MinHeight) || sel.Height.GreaterThan(item.MaxHeight) {
			return model.NewValidationError(field, "height must be between %s and %s inches",
				item.MinHeight.String(), item.MaxHeight.String())
		}

		area := sel.Width.Mul(sel.Height)
		if item.Unit == model.AreaSquareFoot {
			area = area.Div(sqInchesPerSqFoot)
		}
		unit := area.Mul(item.PricePerUnitArea)
		count := decimal.NewFromInt(int64(sel.Quantity))
		total := unit.Mul(count)

		label := item.Label
		if label == "" {
			label = sel.Key
		}
		q.upsells = q.upsells.Add(total)
		q.lines = append(q.lines, model.LineItem{
			Category:  model.CategoryUpsells,
			Key:       sel.Key,
			Label:     fmt.Sprintf("%s (%s x %s in)", label, sel.Width.String(), sel.Height.String()),
			UnitPrice: unit,
			Quantity:  count,
			LineTotal: total,
		})
	}
	return nil
}

// finish derives rush, tax and totals, then rounds every currency value exactly once.
func (q *quote) finish() *model.Breakdown {
	items := q.garment.Add(q.print).Add(q.screens).Add(q.extras)

	rush := decimal.Zero
	if q.order.Rush {
		label := "Rush"
		switch q.cfg.Rush.Kind {
		case model.RushFlat:
			rush = q.cfg.Rush.Amount
		default:
			rush = items.Mul(q.cfg.Rush.Amount)
			label = fmt.Sprintf("Rush (+%s%%)", percent(q.cfg.Rush.Amount))
		}
		q.lines = append(q.lines, model.LineItem{
			Category:  model.CategoryRush,
			Label:     label,
			UnitPrice: rush,
			Quantity:  decimal.NewFromInt(1),
			LineTotal: rush,
		})
	}

	preTax := items.Add(rush).Add(q.upsells)
	tax := preTax.Mul(q.cfg.TaxRate)
	if q.cfg.TaxRate.IsPositive() {
		q.lines = append(q.lines, model.LineItem{
			Category:  model.CategoryTax,
			Label:     fmt.Sprintf("Tax (%s%%)", percent(q.cfg.TaxRate)),
			UnitPrice: tax,
			Quantity:  decimal.NewFromInt(1),
			LineTotal: tax,
		})
	}

	perShirt := q.garment.Add(q.print)
	if q.cfg.PerShirtIncludesScreens {
		perShirt = perShirt.Add(q.screens)
	}
	// quantity >= 1 is guaranteed by OrderRequest.Validate
	perShirt = perShirt.Div(q.qty)

	for i := range q.lines {
		q.lines[i].UnitPrice = model.RoundMoney(q.lines[i].UnitPrice)
		q.lines[i].LineTotal = model.RoundMoney(q.lines[i].LineTotal)
		q.lines[i].Quantity = q.lines[i].Quantity.Round(model.MoneyPlaces)
	}

	return &model.Breakdown{
		Tenant:          q.cfg.Tenant,
		Quantity:        q.order.Quantity,
		LineItems:       q.lines,
		ItemsSubtotal:   model.RoundMoney(items),
		UpsellsSubtotal: model.RoundMoney(q.upsells),
		RushFee:         model.RoundMoney(rush),
		PreTaxSubtotal:  model.RoundMoney(preTax),
		Tax:             model.RoundMoney(tax),
		GrandTotal:      model.RoundMoney(preTax.Add(tax)),
		PricePerShirt:   model.RoundMoney(perShirt),
	}
}

func pluralColors(n int) string {
	if n == 1 {
		return "1 color"
	}
	return fmt.Sprintf("%d colors", n)
}

// percent renders a rate such as 0.0825 as "8.25".
func percent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}

// tagTenant attaches the tenant to config errors raised below the calculator.
func tagTenant(err error, tenant string) error {
	var cfgErr *model.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.Tenant == "" {
		cfgErr.Tenant = tenant
	}
	return err
}
