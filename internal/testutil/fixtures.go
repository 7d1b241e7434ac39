package testutil

import (
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// IntPtr returns a pointer to n.
func IntPtr(n int) *int { return &n }

func colorPrices(values ...string) map[int]decimal.Decimal {
	out := make(map[int]decimal.Decimal, len(values))
	for i, v := range values {
		out[i+1] = model.Dollars(v)
	}
	return out
}

// PricingConfig returns a complete, valid pricing config for tenant "acme".
// The 72-143 bracket prices 1 color at 1.68 and 2 colors at 2.53.
func PricingConfig() *model.PricingConfig {
	cfg := &model.PricingConfig{
		Tenant:           "acme",
		ShopName:         "Acme Screen Printing",
		Version:          1,
		GarmentMarkupPct: model.Dollars("0.40"),
		Garments: map[string]model.Garment{
			"gildan-2000":  {Label: "Gildan 2000", BaseCost: model.Dollars("3.45"), Category: "tshirts"},
			"gildan-18000": {Label: "Gildan 18000 Crewneck", BaseCost: model.Dollars("9.32"), Price: decPtr("15.53"), Category: "sweatshirts"},
		},
		PrintTiers: []model.PrintTier{
			{Min: 1, Max: IntPtr(11), Prices: colorPrices("5.00", "6.50", "8.00", "9.50")},
			{Min: 12, Max: IntPtr(23), Prices: colorPrices("3.50", "4.75", "6.00", "7.25")},
			{Min: 24, Max: IntPtr(47), Prices: colorPrices("2.60", "3.60", "4.60", "5.60")},
			{Min: 48, Max: IntPtr(71), Prices: colorPrices("2.10", "3.00", "3.90", "4.80")},
			{Min: 72, Max: IntPtr(143), Prices: colorPrices("1.68", "2.53", "3.35", "4.10")},
			{Min: 144, Max: IntPtr(287), Prices: colorPrices("1.40", "2.10", "2.80", "3.45")},
			{Min: 288, Max: IntPtr(575), Prices: colorPrices("1.15", "1.75", "2.35", "2.90")},
			{Min: 576, Max: IntPtr(999), Prices: colorPrices("0.95", "1.45", "1.95", "2.45")},
			{Min: 1000, Max: IntPtr(2499), Prices: colorPrices("0.80", "1.20", "1.65", "2.05")},
			{Min: 2500, Max: IntPtr(4999), Prices: colorPrices("0.70", "1.05", "1.40", "1.75")},
			{Min: 5000, Prices: colorPrices("0.60", "0.90", "1.20", "1.50")},
		},
		MaxColorsPerPlacement: map[string]int{
			"front":        4,
			"back":         4,
			"left_sleeve":  2,
			"right_sleeve": 2,
		},
		DefaultMaxColors: 4,
		Extras: map[string]model.Extra{
			"fold_bag": {Label: "Fold & Bag", Rule: model.ExtraPerShirt, Price: model.Dollars("1.25")},
			"names":    {Label: "Individual Names", Rule: model.ExtraPerUnit, Price: model.Dollars("2.00")},
			"art_fee":  {Label: "Art Setup", Rule: model.ExtraFlat, Price: model.Dollars("35.00")},
		},
		UpsellItems: map[string]model.UpsellItem{
			"banner": {
				Label:            "Vinyl Banner",
				PricePerUnitArea: model.Dollars("12.00"),
				Unit:             model.AreaSquareFoot,
				MinWidth:         model.Dollars("12"),
				MaxWidth:         model.Dollars("120"),
				MinHeight:        model.Dollars("12"),
				MaxHeight:        model.Dollars("60"),
			},
		},
		Screens:                 model.ScreenCharge{PricePerScreen: model.Dollars("20.00")},
		MinQuantity:             48,
		Rush:                    model.RushRule{Kind: model.RushPercent, Amount: model.Dollars("0.50")},
		PerShirtIncludesScreens: true,
		Portal:                  model.PortalSettings{Enabled: true, NotifyEmail: "orders@acme.test"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func decPtr(s string) *decimal.Decimal {
	d := model.Dollars(s)
	return &d
}
