package dto

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	v.SetTagName("binding")
	require.NoError(t, RegisterValidators(v))
	return v
}

func TestConsoleQuoteRequest_ToOrder(t *testing.T) {
	cost := decimal.RequireFromString("4.25")

	tests := []struct {
		name    string
		request ConsoleQuoteRequest
		garment model.GarmentSelection
	}{
		{
			name:    "catalog garment",
			request: ConsoleQuoteRequest{Garment: GarmentRequest{Type: GarmentCatalog, Key: " gildan-2000 "}},
			garment: model.CatalogGarment{Key: "gildan-2000"},
		},
		{
			name:    "custom garment",
			request: ConsoleQuoteRequest{Garment: GarmentRequest{Type: GarmentCustom, Label: "Tote", Cost: &cost}},
			garment: model.CustomGarment{Label: "Tote", Cost: cost},
		},
		{
			name:    "custom garment without cost",
			request: ConsoleQuoteRequest{Garment: GarmentRequest{Type: GarmentCustom}},
			garment: model.CustomGarment{Cost: decimal.Zero},
		},
		{
			name:    "supply own",
			request: ConsoleQuoteRequest{Garment: GarmentRequest{Type: GarmentSupplyOwn, Key: "ignored"}},
			garment: model.SupplyOwnGarment{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Quantity = 100
			tt.request.Placements = []PlacementRequest{{Name: " Front ", Colors: 2}}
			order := tt.request.ToOrder()

			assert.Equal(t, 100, order.Quantity)
			assert.Equal(t, tt.garment, order.Garment)
			assert.Equal(t, []model.Placement{{Name: "front", Colors: 2}}, order.Placements)
		})
	}
}

func TestConsoleQuoteRequest_ToOrderCarriesSelections(t *testing.T) {
	req := ConsoleQuoteRequest{
		Quantity:     24,
		Garment:      GarmentRequest{Type: GarmentCatalog, Key: "gildan-2000"},
		Placements:   []PlacementRequest{{Name: "back", Colors: 1}},
		Extras:       []ExtraRequest{{Key: "names", Quantity: 24}, {Key: "art_fee"}},
		Upsells:      []UpsellRequest{{Key: "banner", Width: decimal.NewFromInt(36), Height: decimal.NewFromInt(24), Quantity: 2}},
		Rush:         true,
		WaiveScreens: true,
	}

	order := req.ToOrder()
	assert.Equal(t, []model.ExtraSelection{{Key: "names", Quantity: 24}, {Key: "art_fee"}}, order.Extras)
	require.Len(t, order.Upsells, 1)
	assert.Equal(t, "banner", order.Upsells[0].Key)
	assert.Equal(t, 2, order.Upsells[0].Quantity)
	assert.True(t, order.Rush)
	assert.True(t, order.WaiveScreens)
}

func TestConsoleQuoteRequest_Binding(t *testing.T) {
	v := newValidator(t)
	valid := func() ConsoleQuoteRequest {
		return ConsoleQuoteRequest{
			Quantity:   100,
			Garment:    GarmentRequest{Type: GarmentCatalog, Key: "gildan-2000"},
			Placements: []PlacementRequest{{Name: "front", Colors: 2}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *ConsoleQuoteRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *ConsoleQuoteRequest) {}},
		{name: "zero quantity", mutate: func(r *ConsoleQuoteRequest) { r.Quantity = 0 }, wantErr: true},
		{name: "unknown garment type", mutate: func(r *ConsoleQuoteRequest) { r.Garment.Type = "borrowed" }, wantErr: true},
		{name: "catalog without key", mutate: func(r *ConsoleQuoteRequest) { r.Garment.Key = "" }, wantErr: true},
		{name: "custom without cost", mutate: func(r *ConsoleQuoteRequest) { r.Garment = GarmentRequest{Type: GarmentCustom} }, wantErr: true},
		{name: "supply own needs nothing else", mutate: func(r *ConsoleQuoteRequest) { r.Garment = GarmentRequest{Type: GarmentSupplyOwn} }},
		{name: "no placements", mutate: func(r *ConsoleQuoteRequest) { r.Placements = nil }, wantErr: true},
		{name: "too many colors", mutate: func(r *ConsoleQuoteRequest) { r.Placements[0].Colors = 13 }, wantErr: true},
		{name: "bad placement name", mutate: func(r *ConsoleQuoteRequest) { r.Placements[0].Name = "front/../x" }, wantErr: true},
		{name: "mixed case placement", mutate: func(r *ConsoleQuoteRequest) { r.Placements[0].Name = "Left_Sleeve" }},
		{name: "upsell without quantity", mutate: func(r *ConsoleQuoteRequest) { r.Upsells = []UpsellRequest{{Key: "banner"}} }, wantErr: true},
		{name: "extra without key", mutate: func(r *ConsoleQuoteRequest) { r.Extras = []ExtraRequest{{Quantity: 1}} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := v.Struct(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPortalQuoteRequest_ToOrder(t *testing.T) {
	offered := map[string]model.Extra{
		"names":    {Label: "Names", Rule: model.ExtraPerShirt, Price: model.Dollars("2.00")},
		"fold_bag": {Label: "Fold & Bag", Rule: model.ExtraPerShirt, Price: model.Dollars("0.50")},
	}
	req := PortalQuoteRequest{
		Quantity:   48,
		GarmentKey: "gildan-2000",
		Placements: []PlacementRequest{{Name: "front", Colors: 1}},
		Extras:     PortalExtras{Rush: true, Names: true, FoldBag: true},
	}

	order := req.ToOrder(offered)
	assert.Equal(t, model.CatalogGarment{Key: "gildan-2000"}, order.Garment)
	assert.True(t, order.Rush)
	assert.Equal(t, []model.ExtraSelection{{Key: "names", Quantity: 48}, {Key: "fold_bag", Quantity: 48}}, order.Extras)

	req.SupplyOwn = true
	assert.Equal(t, model.SupplyOwnGarment{}, req.ToOrder(offered).Garment)

	t.Run("toggles the shop does not offer are dropped", func(t *testing.T) {
		req := PortalQuoteRequest{
			Quantity:   48,
			SupplyOwn:  true,
			Placements: []PlacementRequest{{Name: "front", Colors: 1}},
			Extras:     PortalExtras{Names: true, Numbers: true, Tagging: true},
		}
		assert.Equal(t, []model.ExtraSelection{{Key: "names", Quantity: 48}}, req.ToOrder(offered).Extras)
		assert.Empty(t, req.ToOrder(nil).Extras)
	})
}

func TestPortalQuoteRequest_Binding(t *testing.T) {
	v := newValidator(t)
	valid := func() PortalQuoteRequest {
		return PortalQuoteRequest{
			Quantity:   48,
			GarmentKey: "gildan-2000",
			Placements: []PlacementRequest{{Name: "front", Colors: 1}},
			Customer:   CustomerRequest{Name: "Jane Doe", Email: "jane@example.com"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(r *PortalQuoteRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *PortalQuoteRequest) {}},
		{name: "supply own without garment key", mutate: func(r *PortalQuoteRequest) { r.GarmentKey = ""; r.SupplyOwn = true }},
		{name: "no garment at all", mutate: func(r *PortalQuoteRequest) { r.GarmentKey = "" }, wantErr: true},
		{name: "short name", mutate: func(r *PortalQuoteRequest) { r.Customer.Name = "J" }, wantErr: true},
		{name: "bad email", mutate: func(r *PortalQuoteRequest) { r.Customer.Email = "jane-at-example" }, wantErr: true},
		{name: "missing email", mutate: func(r *PortalQuoteRequest) { r.Customer.Email = "" }, wantErr: true},
		{name: "long notes are accepted", mutate: func(r *PortalQuoteRequest) { r.Notes = strings.Repeat("n", 5000) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := v.Struct(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPortalQuoteRequest_TrimmedNotes(t *testing.T) {
	req := PortalQuoteRequest{Notes: "  navy please  "}
	assert.Equal(t, "navy please", req.TrimmedNotes())

	req.Notes = strings.Repeat("é", MaxNotesLength+10)
	notes := req.TrimmedNotes()
	assert.Equal(t, MaxNotesLength, len([]rune(notes)))
}

func TestPortalQuoteRequest_CheckPortalLimits(t *testing.T) {
	settings := model.PortalSettings{MinQuantity: 12, MaxQuantity: 1000, MaxColors: 6}

	tests := []struct {
		name     string
		quantity int
		colors   int
		field    string
	}{
		{name: "inside limits", quantity: 12, colors: 6},
		{name: "below portal minimum", quantity: 11, colors: 1, field: "quantity"},
		{name: "above portal maximum", quantity: 1001, colors: 1, field: "quantity"},
		{name: "too many colors", quantity: 100, colors: 7, field: "placements.front"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := PortalQuoteRequest{Quantity: tt.quantity, Placements: []PlacementRequest{{Name: "Front", Colors: tt.colors}}}
			err := req.CheckPortalLimits(settings)
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *model.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestCustomerRequest_ToModel(t *testing.T) {
	c := CustomerRequest{Name: " Jane Doe ", Email: " jane@example.com", Phone: "555 ", Company: " Acme"}
	assert.Equal(t, &model.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "555", Company: "Acme"}, c.ToModel())
}

func TestRegisterValidators_JSONFieldNames(t *testing.T) {
	v := newValidator(t)
	err := v.Struct(PortalQuoteRequest{
		Quantity:   48,
		GarmentKey: "gildan-2000",
		Placements: []PlacementRequest{{Name: "front", Colors: 1}},
		Customer:   CustomerRequest{Name: "Jane Doe"},
	})

	var fieldErrs validator.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "PortalQuoteRequest.customer.email", fieldErrs[0].Namespace())
	assert.Equal(t, "required", fieldErrs[0].Tag())
}
