package dto

import (
	"encoding/json"
	"testing"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBreakdown() *model.Breakdown {
	qty := decimal.NewFromInt(100)
	return &model.Breakdown{
		Tenant:   "acme",
		Quantity: 100,
		LineItems: []model.LineItem{
			{Category: model.CategoryPrint, Key: "front", Label: "Front print, 1 color", Colors: 1,
				UnitPrice: model.Dollars("1.68"), Quantity: qty, LineTotal: model.Dollars("168")},
			{Category: model.CategoryScreens, Label: "Screens (waived)", UnitPrice: model.Dollars("20"),
				Quantity: decimal.NewFromInt(1), LineTotal: decimal.Zero, Waived: true},
		},
		ItemsSubtotal:   model.Dollars("168"),
		UpsellsSubtotal: decimal.Zero,
		RushFee:         decimal.Zero,
		PreTaxSubtotal:  model.Dollars("168"),
		Tax:             decimal.Zero,
		GrandTotal:      model.Dollars("168"),
		PricePerShirt:   model.Dollars("1.68"),
	}
}

func TestNewQuoteResponse(t *testing.T) {
	cfg := &model.PricingConfig{Tenant: "acme", ShopName: "Acme", Version: 3}
	resp := NewQuoteResponse("Q-1", cfg, sampleBreakdown(), true)

	assert.Equal(t, "Q-1", resp.QuoteID)
	assert.Equal(t, "Acme", resp.ShopName)
	assert.Equal(t, 3, resp.ConfigVersion)
	assert.True(t, resp.ColorsClamped)
	assert.Equal(t, "168.00", resp.GrandTotal)
	assert.Equal(t, "1.68", resp.PricePerShirt)
	assert.Equal(t, "0.00", resp.Tax)

	require.Len(t, resp.LineItems, 2)
	assert.Equal(t, model.CategoryPrint, resp.LineItems[0].Category)
	assert.Equal(t, "168.00", resp.LineItems[0].LineTotal)
	assert.Equal(t, "100", resp.LineItems[0].Quantity)
	assert.True(t, resp.LineItems[1].Waived)
	assert.Equal(t, "0.00", resp.LineItems[1].LineTotal)
}

func TestNewQuoteResponse_JSONMoneyIsFixedTwo(t *testing.T) {
	raw, err := json.Marshal(NewQuoteResponse("Q-1", nil, sampleBreakdown(), false))
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "168.00", body["grand_total"])
	assert.Equal(t, "1.68", body["price_per_shirt"])
	assert.Equal(t, false, body["colors_clamped"])
	assert.NotContains(t, body, "advisory")
}

func TestNewQuoteResponse_Guardrail(t *testing.T) {
	b := &model.Breakdown{
		Tenant:             "acme",
		Quantity:           10,
		LineItems:          []model.LineItem{},
		GuardrailTriggered: true,
		Advisory:           &model.Advisory{Message: "Minimum is 48", MinQuantity: 48, Suggest: "dtf"},
	}

	resp := NewQuoteResponse("Q-2", nil, b, false)
	assert.True(t, resp.GuardrailTriggered)
	assert.Empty(t, resp.LineItems)
	assert.Equal(t, 48, resp.Advisory.MinQuantity)
	assert.Equal(t, "0.00", resp.GrandTotal)
}

func TestNewPortalConfigResponse(t *testing.T) {
	price := model.Dollars("15.53")
	cfg := &model.PricingConfig{
		Tenant:           "acme",
		ShopName:         "Acme",
		GarmentMarkupPct: model.Dollars("0.40"),
		Garments: map[string]model.Garment{
			"tee":  {Label: "Tee", BaseCost: model.Dollars("3.45")},
			"crew": {BaseCost: model.Dollars("9.32"), Price: &price},
		},
		Extras: map[string]model.Extra{
			"names": {Label: "Names", Rule: model.ExtraPerUnit, Price: model.Dollars("2")},
		},
		MaxColorsPerPlacement: map[string]int{"front": 8, "left_sleeve": 2},
		MinQuantity:           48,
		Rush:                  model.RushRule{Kind: model.RushPercent, Amount: model.Dollars("0.5")},
	}
	cfg.ApplyDefaults()

	resp := NewPortalConfigResponse(cfg)
	assert.Equal(t, 12, resp.MinQuantity)
	assert.Equal(t, 48, resp.ShopMinimum)
	assert.Equal(t, 6, resp.MaxColors["front"], "portal ceiling is tighter")
	assert.Equal(t, 2, resp.MaxColors["left_sleeve"])
	assert.True(t, resp.Rush)

	require.Len(t, resp.Garments, 2)
	assert.Equal(t, PortalGarment{Key: "crew", Label: "crew", Price: "15.53"}, resp.Garments[0])
	assert.Equal(t, "4.83", resp.Garments[1].Price)

	require.Len(t, resp.Extras, 1)
	assert.Equal(t, "2.00", resp.Extras[0].Price)
	require.NotNil(t, resp.SmallOrder)
	assert.Equal(t, "DTF transfers", resp.SmallOrder.Label)
}
