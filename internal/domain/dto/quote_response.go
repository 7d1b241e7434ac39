package dto

import (
	"time"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// LineItemResponse is one priced row. Money values are fixed-2 strings.
type LineItemResponse struct {
	Category  model.Category `json:"category" example:"print"`
	Key       string         `json:"key,omitempty" example:"front"`
	Label     string         `json:"label" example:"Front print, 2 colors"`
	Colors    int            `json:"colors,omitempty" example:"2"`
	UnitPrice string         `json:"unit_price" example:"2.53"`
	Quantity  string         `json:"quantity" example:"100"`
	LineTotal string         `json:"line_total" example:"253.00"`
	Waived    bool           `json:"waived,omitempty"`
} // @name LineItemResponse

// QuoteResponse is the itemized breakdown as returned by both quote channels.
// @Description Itemized quote. Line items are ordered garment, print, screens, extras, upsells, rush, tax.
type QuoteResponse struct {
	QuoteID       string             `json:"quote_id" example:"Q-1A2B3C4D"`
	Tenant        string             `json:"tenant" example:"acme"`
	ShopName      string             `json:"shop_name,omitempty" example:"Acme Screen Printing"`
	ConfigVersion int                `json:"config_version" example:"3"`
	Quantity      int                `json:"quantity" example:"100"`
	LineItems     []LineItemResponse `json:"line_items"`

	ItemsSubtotal   string `json:"items_subtotal" example:"253.00"`
	UpsellsSubtotal string `json:"upsells_subtotal" example:"0.00"`
	RushFee         string `json:"rush_fee" example:"0.00"`
	PreTaxSubtotal  string `json:"pre_tax_subtotal" example:"253.00"`
	Tax             string `json:"tax" example:"0.00"`
	GrandTotal      string `json:"grand_total" example:"253.00"`
	PricePerShirt   string `json:"price_per_shirt" example:"2.53"`

	GuardrailTriggered bool            `json:"guardrail_triggered"`
	Advisory           *model.Advisory `json:"advisory,omitempty"`
	ColorsClamped      bool            `json:"colors_clamped"`
	CreatedAt          time.Time       `json:"created_at" example:"2025-01-28T10:00:00Z"`
} // @name QuoteResponse

// NewQuoteResponse renders a breakdown. It copies the engine's rounded figures and never recomputes them.
func NewQuoteResponse(id string, cfg *model.PricingConfig, b *model.Breakdown, clamped bool) QuoteResponse {
	resp := QuoteResponse{
		QuoteID:            id,
		Tenant:             b.Tenant,
		Quantity:           b.Quantity,
		LineItems:          make([]LineItemResponse, len(b.LineItems)),
		ItemsSubtotal:      model.FormatMoney(b.ItemsSubtotal),
		UpsellsSubtotal:    model.FormatMoney(b.UpsellsSubtotal),
		RushFee:            model.FormatMoney(b.RushFee),
		PreTaxSubtotal:     model.FormatMoney(b.PreTaxSubtotal),
		Tax:                model.FormatMoney(b.Tax),
		GrandTotal:         model.FormatMoney(b.GrandTotal),
		PricePerShirt:      model.FormatMoney(b.PricePerShirt),
		GuardrailTriggered: b.GuardrailTriggered,
		Advisory:           b.Advisory,
		ColorsClamped:      clamped,
		CreatedAt:          time.Now().UTC(),
	}
	if cfg != nil {
		resp.ShopName = cfg.ShopName
		resp.ConfigVersion = cfg.Version
	}
	for i, li := range b.LineItems {
		resp.LineItems[i] = LineItemResponse{
			Category:  li.Category,
			Key:       li.Key,
			Label:     li.Label,
			Colors:    li.Colors,
			UnitPrice: model.FormatMoney(li.UnitPrice),
			Quantity:  li.Quantity.String(),
			LineTotal: model.FormatMoney(li.LineTotal),
			Waived:    li.Waived,
		}
	}
	return resp
}

// PortalQuoteResponse is the portal's quote plus the delivery outcome of its emails.
type PortalQuoteResponse struct {
	Quote             QuoteResponse `json:"quote"`
	CustomerEmailSent bool          `json:"customer_email_sent"`
	ShopEmailSent     bool          `json:"shop_email_sent"`
} // @name PortalQuoteResponse

// EmailQuoteResponse is the console quote that was mailed to the customer.
// EmailSent is false for advisory quotes, which are never mailed.
type EmailQuoteResponse struct {
	Quote     QuoteResponse `json:"quote"`
	EmailSent bool          `json:"email_sent"`
} // @name EmailQuoteResponse

// AskQuoteResponse is what a free-text request was read as. Quote is present
// only when nothing is missing.
type AskQuoteResponse struct {
	Quantity   int                `json:"quantity" example:"72"`
	Placements []PlacementRequest `json:"placements"`
	Missing    []string           `json:"missing,omitempty" example:"quantity"`
	Quote      *QuoteResponse     `json:"quote,omitempty"`
} // @name AskQuoteResponse

// NewAskQuoteResponse reports the parsed order. The caller attaches the quote.
func NewAskQuoteResponse(quantity int, placements []model.Placement, missing []string) AskQuoteResponse {
	resp := AskQuoteResponse{
		Quantity:   quantity,
		Placements: make([]PlacementRequest, len(placements)),
		Missing:    missing,
	}
	for i, p := range placements {
		resp.Placements[i] = PlacementRequest{Name: p.Name, Colors: p.Colors}
	}
	return resp
}

// PortalGarment is a catalog entry as offered to portal customers.
type PortalGarment struct {
	Key      string `json:"key" example:"gildan-2000"`
	Label    string `json:"label" example:"Gildan 2000"`
	Category string `json:"category,omitempty" example:"tshirts"`
	Price    string `json:"price" example:"4.83"`
} // @name PortalGarment

// PortalExtra is an extra as offered to portal customers.
type PortalExtra struct {
	Key   string          `json:"key" example:"names"`
	Label string          `json:"label" example:"Individual Names"`
	Rule  model.ExtraRule `json:"rule" example:"per_unit"`
	Price string          `json:"price" example:"2.00"`
} // @name PortalExtra

// PortalConfigResponse is the catalog the portal wizard renders.
type PortalConfigResponse struct {
	Tenant      string          `json:"tenant" example:"acme"`
	ShopName    string          `json:"shop_name" example:"Acme Screen Printing"`
	MinQuantity int             `json:"min_quantity" example:"12"`
	MaxQuantity int             `json:"max_quantity" example:"1000"`
	ShopMinimum int             `json:"shop_minimum" example:"48"`
	MaxColors   map[string]int  `json:"max_colors"`
	Placements  []string        `json:"placements"`
	Garments    []PortalGarment `json:"garments"`
	Extras      []PortalExtra   `json:"extras"`
	Rush        bool            `json:"rush"`
	SmallOrder  *model.Advisory `json:"small_order,omitempty"`
} // @name PortalConfigResponse

// NewPortalConfigResponse builds the wizard catalog. Color caps are the tighter of
// the shop's per-placement limit and the portal ceiling.
func NewPortalConfigResponse(cfg *model.PricingConfig) PortalConfigResponse {
	resp := PortalConfigResponse{
		Tenant:      cfg.Tenant,
		ShopName:    cfg.ShopName,
		MinQuantity: cfg.Portal.MinQuantity,
		MaxQuantity: cfg.Portal.MaxQuantity,
		ShopMinimum: cfg.MinQuantity,
		MaxColors:   make(map[string]int, len(cfg.Placements)),
		Placements:  append([]string(nil), cfg.Placements...),
		Garments:    make([]PortalGarment, 0, len(cfg.Garments)),
		Extras:      make([]PortalExtra, 0, len(cfg.Extras)),
		Rush:        cfg.Rush.Amount.IsPositive(),
	}
	for _, p := range cfg.Placements {
		limit := cfg.MaxColorsFor(p)
		if cfg.Portal.MaxColors > 0 && cfg.Portal.MaxColors < limit {
			limit = cfg.Portal.MaxColors
		}
		resp.MaxColors[p] = limit
	}
	for _, key := range cfg.GarmentKeys() {
		g := cfg.Garments[key]
		label := g.Label
		if label == "" {
			label = key
		}
		resp.Garments = append(resp.Garments, PortalGarment{
			Key:      key,
			Label:    label,
			Category: g.Category,
			Price:    model.FormatMoney(model.RoundMoney(cfg.GarmentUnitPrice(g))),
		})
	}
	for _, key := range cfg.ExtraKeys() {
		e := cfg.Extras[key]
		label := e.Label
		if label == "" {
			label = key
		}
		resp.Extras = append(resp.Extras, PortalExtra{Key: key, Label: label, Rule: e.Rule, Price: model.FormatMoney(e.Price)})
	}
	if cfg.MinQuantity > 0 {
		resp.SmallOrder = &model.Advisory{
			MinQuantity: cfg.MinQuantity,
			Suggest:     cfg.SmallOrder.Suggest,
			Label:       cfg.SmallOrder.Label,
			Link:        cfg.SmallOrder.Link,
			CTA:         cfg.SmallOrder.CTA,
		}
	}
	return resp
}

// PricingConfigVersionResponse describes one stored config version.
type PricingConfigVersionResponse struct {
	Tenant    string              `json:"tenant" example:"acme"`
	Version   int                 `json:"version" example:"3"`
	Active    bool                `json:"active"`
	CreatedAt time.Time           `json:"created_at"`
	CreatedBy string              `json:"created_by,omitempty" example:"ops@acme.test"`
	Config    model.PricingConfig `json:"config"`
} // @name PricingConfigVersionResponse

// ConsoleTokenResponse carries an issued console token.
type ConsoleTokenResponse struct {
	Token     string    `json:"token"`
	Tenant    string    `json:"tenant" example:"acme"`
	ExpiresAt time.Time `json:"expires_at"`
} // @name ConsoleTokenResponse
