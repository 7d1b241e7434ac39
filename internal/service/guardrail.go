package service

import (
	"fmt"

	"github.com/guttosm/quote-service/internal/domain/model"
)

// CheckGuardrail returns an advisory when quantity is below the tenant's screen print
// minimum, and nil when the order may be priced.
func CheckGuardrail(quantity int, cfg *model.PricingConfig) *model.Advisory {
	if quantity >= cfg.MinQuantity {
		return nil
	}

	policy := cfg.SmallOrder
	message := policy.Message
	if message == "" {
		message = fmt.Sprintf("Our minimum for screen printing is %d pieces.", cfg.MinQuantity)
		if policy.Label != "" {
			message += fmt.Sprintf(" For %d we recommend %s.", quantity, policy.Label)
		}
	}

	return &model.Advisory{
		Message:     message,
		MinQuantity: cfg.MinQuantity,
		Suggest:     policy.Suggest,
		Label:       policy.Label,
		Link:        policy.Link,
		CTA:         policy.CTA,
	}
}
