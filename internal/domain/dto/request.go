// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
// Both quote channels map their request into the same model.OrderRequest.
package dto

import (
	"strings"
	"unicode/utf8"

	"github.com/guttosm/quote-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// MaxNotesLength caps the free-text notes a portal customer can leave.
const MaxNotesLength = 1000

// Garment selection types.
const (
	GarmentCatalog   = "catalog"
	GarmentCustom    = "custom"
	GarmentSupplyOwn = "supply_own"
)

// GarmentRequest selects the garment for a console quote.
// @Description Garment selection: a catalog key, a hand-priced custom garment, or customer-supplied blanks
type GarmentRequest struct {
	Type  string           `json:"type" binding:"required,oneof=catalog custom supply_own" example:"catalog" enums:"catalog,custom,supply_own"`
	Key   string           `json:"key,omitempty" binding:"required_if=Type catalog" example:"gildan-2000"`
	Label string           `json:"label,omitempty" binding:"max=120" example:"Bella+Canvas 3001"`
	Cost  *decimal.Decimal `json:"cost,omitempty" binding:"required_if=Type custom" swaggertype:"string" example:"4.25"`
} // @name GarmentRequest

// PlacementRequest is one print location.
type PlacementRequest struct {
	Name   string `json:"name" binding:"required,placement" example:"front"`
	Colors int    `json:"colors" binding:"required,min=1,max=12" example:"2"`
} // @name PlacementRequest

// ExtraRequest selects an extra. Quantity is only read by per-unit extras.
type ExtraRequest struct {
	Key      string `json:"key" binding:"required" example:"names"`
	Quantity int    `json:"quantity,omitempty" binding:"min=0" example:"24"`
} // @name ExtraRequest

// UpsellRequest selects an area-priced add-on. Dimensions are inches.
type UpsellRequest struct {
	Key      string          `json:"key" binding:"required" example:"banner"`
	Width    decimal.Decimal `json:"width" swaggertype:"string" example:"36"`
	Height   decimal.Decimal `json:"height" swaggertype:"string" example:"24"`
	Quantity int             `json:"quantity" binding:"required,min=1" example:"1"`
} // @name UpsellRequest

// ConsoleQuoteRequest represents the JSON request body for the console quote endpoint.
//
// Pricing-dependent checks (catalog keys, extra keys, upsell bounds) are done by
// the engine against the tenant's config.
//
// @Description Request to price an order from the shop console
// @Example {"quantity": 100, "garment": {"type": "catalog", "key": "gildan-2000"}, "placements": [{"name": "front", "colors": 2}]}
type ConsoleQuoteRequest struct {
	Quantity     int                `json:"quantity" binding:"required,gt=0" example:"100" minimum:"1"`
	Garment      GarmentRequest     `json:"garment" binding:"required"`
	Placements   []PlacementRequest `json:"placements" binding:"required,min=1,dive"`
	Extras       []ExtraRequest     `json:"extras,omitempty" binding:"omitempty,dive"`
	Upsells      []UpsellRequest    `json:"upsells,omitempty" binding:"omitempty,dive"`
	Rush         bool               `json:"rush,omitempty"`
	WaiveScreens bool               `json:"waive_screens,omitempty"`
} // @name ConsoleQuoteRequest

// ToOrder maps the request into the engine's input.
func (r *ConsoleQuoteRequest) ToOrder() model.OrderRequest {
	order := model.OrderRequest{
		Quantity:     r.Quantity,
		Garment:      r.Garment.toSelection(),
		Placements:   toPlacements(r.Placements),
		Rush:         r.Rush,
		WaiveScreens: r.WaiveScreens,
	}
	for _, e := range r.Extras {
		order.Extras = append(order.Extras, model.ExtraSelection{Key: strings.TrimSpace(e.Key), Quantity: e.Quantity})
	}
	for _, u := range r.Upsells {
		order.Upsells = append(order.Upsells, model.UpsellSelection{
			Key:      strings.TrimSpace(u.Key),
			Width:    u.Width,
			Height:   u.Height,
			Quantity: u.Quantity,
		})
	}
	return order
}

func (g GarmentRequest) toSelection() model.GarmentSelection {
	switch g.Type {
	case GarmentCustom:
		cost := decimal.Zero
		if g.Cost != nil {
			cost = *g.Cost
		}
		return model.CustomGarment{Label: g.Label, Cost: cost}
	case GarmentSupplyOwn:
		return model.SupplyOwnGarment{}
	case GarmentCatalog:
		return model.CatalogGarment{Key: strings.TrimSpace(g.Key)}
	default:
		return nil
	}
}

func toPlacements(in []PlacementRequest) []model.Placement {
	out := make([]model.Placement, len(in))
	for i, p := range in {
		out[i] = model.Placement{Name: model.NormalizePlacementName(p.Name), Colors: p.Colors}
	}
	return out
}

// PortalExtras are the customer portal's on/off add-ons. Each one that the shop
// offers is charged per item ordered; toggles the shop does not offer are dropped.
type PortalExtras struct {
	Rush    bool `json:"rush,omitempty"`
	Names   bool `json:"names,omitempty"`
	Numbers bool `json:"numbers,omitempty"`
	FoldBag bool `json:"fold_bag,omitempty"`
	Tagging bool `json:"tagging,omitempty"`
} // @name PortalExtras

// Keys returns the selected extra keys, excluding rush.
func (e PortalExtras) Keys() []string {
	var keys []string
	if e.Names {
		keys = append(keys, "names")
	}
	if e.Numbers {
		keys = append(keys, "numbers")
	}
	if e.FoldBag {
		keys = append(keys, "fold_bag")
	}
	if e.Tagging {
		keys = append(keys, "tagging")
	}
	return keys
}

// CustomerRequest carries the portal customer's contact details.
type CustomerRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100" example:"Jane Doe"`
	Email   string `json:"email" binding:"required,email" example:"jane@example.com"`
	Phone   string `json:"phone,omitempty" binding:"max=40" example:"555-123-4567"`
	Company string `json:"company,omitempty" binding:"max=120" example:"Acme Robotics Club"`
} // @name CustomerRequest

// ToModel trims the contact details.
func (c CustomerRequest) ToModel() *model.Customer {
	return &model.Customer{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Company: strings.TrimSpace(c.Company),
	}
}

// PortalQuoteRequest represents the JSON request body for the customer portal quote endpoint.
//
// @Description Request to price an order from the customer portal
// @Example {"quantity": 48, "garment_key": "gildan-2000", "placements": [{"name": "front", "colors": 1}], "customer": {"name": "Jane Doe", "email": "jane@example.com"}}
type PortalQuoteRequest struct {
	Quantity   int                `json:"quantity" binding:"required,gt=0" example:"48" minimum:"1"`
	GarmentKey string             `json:"garment_key,omitempty" binding:"required_without=SupplyOwn" example:"gildan-2000"`
	SupplyOwn  bool               `json:"supply_own,omitempty"`
	Placements []PlacementRequest `json:"placements" binding:"required,min=1,dive"`
	Extras     PortalExtras       `json:"extras"`
	Notes      string             `json:"notes,omitempty" example:"Navy shirts, logo centered"`
	Customer   CustomerRequest    `json:"customer" binding:"required"`
} // @name PortalQuoteRequest

// ToOrder maps the request into the engine's input. Supply-own wins over a garment key.
// Only extras present in offered are selected.
func (r *PortalQuoteRequest) ToOrder(offered map[string]model.Extra) model.OrderRequest {
	order := model.OrderRequest{
		Quantity:   r.Quantity,
		Placements: toPlacements(r.Placements),
		Rush:       r.Extras.Rush,
	}
	if r.SupplyOwn {
		order.Garment = model.SupplyOwnGarment{}
	} else {
		order.Garment = model.CatalogGarment{Key: strings.TrimSpace(r.GarmentKey)}
	}
	for _, key := range r.Extras.Keys() {
		if _, ok := offered[key]; !ok {
			continue
		}
		order.Extras = append(order.Extras, model.ExtraSelection{Key: key, Quantity: r.Quantity})
	}
	return order
}

// TrimmedNotes returns the notes trimmed and cut to MaxNotesLength characters.
func (r *PortalQuoteRequest) TrimmedNotes() string {
	return trimNotes(r.Notes)
}

func trimNotes(notes string) string {
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) <= MaxNotesLength {
		return notes
	}
	return string([]rune(notes)[:MaxNotesLength])
}

// CheckPortalLimits applies the portal's own ceilings, which are tighter than the engine's.
func (r *PortalQuoteRequest) CheckPortalLimits(p model.PortalSettings) error {
	if r.Quantity < p.MinQuantity || r.Quantity > p.MaxQuantity {
		return model.NewValidationError("quantity", "must be between %d and %d", p.MinQuantity, p.MaxQuantity)
	}
	for _, pl := range r.Placements {
		if pl.Colors > p.MaxColors {
			return model.NewValidationError("placements."+model.NormalizePlacementName(pl.Name),
				"colors must be between 1 and %d", p.MaxColors)
		}
	}
	return nil
}

// EmailQuoteRequest asks the console to price an order and mail it to a customer.
//
// @Description Console order plus the customer who receives the quote
type EmailQuoteRequest struct {
	Order    ConsoleQuoteRequest `json:"order" binding:"required"`
	Customer CustomerRequest     `json:"customer" binding:"required"`
	Notes    string              `json:"notes,omitempty" example:"Proof attached separately"`
} // @name EmailQuoteRequest

// TrimmedNotes returns the notes trimmed and cut to MaxNotesLength characters.
func (r *EmailQuoteRequest) TrimmedNotes() string {
	return trimNotes(r.Notes)
}

// MaxAskLength caps a free-text quote request.
const MaxAskLength = 2000

// AskQuoteRequest is a free-text quote request such as "72 shirts, 2 colors front".
// Garment is optional; without it the order is print only.
//
// @Description Free-text quote request
type AskQuoteRequest struct {
	Message string          `json:"message" binding:"required,max=2000" example:"72 shirts, 2 colors front and 1 color back"`
	Garment *GarmentRequest `json:"garment,omitempty"`
} // @name AskQuoteRequest

// GarmentSelection returns the selected garment, or nil when none was sent.
func (r *AskQuoteRequest) GarmentSelection() model.GarmentSelection {
	if r.Garment == nil {
		return nil
	}
	return r.Garment.toSelection()
}

// PublishPricingConfigRequest wraps a tenant pricing config for the admin PUT endpoint.
type PublishPricingConfigRequest struct {
	Config model.PricingConfig `json:"config"`
	// CreatedBy is the identifier of who published this version.
	CreatedBy string `json:"created_by,omitempty" example:"ops@acme.test"`
} // @name PublishPricingConfigRequest

// IssueConsoleTokenRequest asks for a console token for a shop operator.
type IssueConsoleTokenRequest struct {
	Operator string `json:"operator" binding:"required,max=120" example:"front-desk"`
} // @name IssueConsoleTokenRequest
