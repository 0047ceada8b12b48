package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
)

// AppliedTier describes the tier a quote resolved to.
type AppliedTier struct {
	MinQuantity int                 `json:"min_quantity"`
	MaxQuantity *int                `json:"max_quantity,omitempty"`
	Method      enums.PricingMethod `json:"method"`
	Value       decimal.Decimal     `json:"value"`
}

// TierResult is the outcome of a tier price computation.
type TierResult struct {
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	TierApplied       *AppliedTier    `json:"tier_applied"`
	Savings           decimal.Decimal `json:"savings"`
	SavingsPercentage decimal.Decimal `json:"savings_percentage"`
}

// CalculateTierPrice resolves the unit price for the requested quantity
// against the supplied tier table. When no tier matches, or no table is
// supplied, the base price passes through unchanged with a nil applied tier.
func CalculateTierPrice(basePrice decimal.Decimal, quantity int, tierPricing *models.TierPricing) TierResult {
	unitPrice := basePrice
	var applied *AppliedTier

	if tierPricing != nil {
		if tier := selectTier(quantity, tierPricing.Tiers); tier != nil {
			if method, ok := MethodFor(*tier); ok {
				unitPrice = method.Apply(basePrice)
				applied = &AppliedTier{
					MinQuantity: tier.MinQuantity,
					MaxQuantity: tier.MaxQuantity,
					Method:      method.Kind,
					Value:       method.Value,
				}
			}
		}
	}

	qty := decimal.NewFromInt(int64(quantity))
	subtotal := unitPrice.Mul(qty)
	baseTotal := basePrice.Mul(qty)
	savings := baseTotal.Sub(subtotal)

	savingsPct := zero
	if baseTotal.IsPositive() {
		savingsPct = savings.Div(baseTotal).Mul(hundred).Round(2)
	}

	return TierResult{
		Quantity:          quantity,
		UnitPrice:         unitPrice,
		Subtotal:          subtotal,
		TierApplied:       applied,
		Savings:           savings,
		SavingsPercentage: savingsPct,
	}
}

// selectTier picks the matching tier with the highest min quantity. Overlap
// is a validator concern; when overlapping rows slip through, the highest
// minimum still wins deterministically.
func selectTier(quantity int, tiers []models.Tier) *models.Tier {
	var selected *models.Tier
	for i := range tiers {
		tier := tiers[i]
		if !tier.Matches(quantity) {
			continue
		}
		if selected == nil || tier.MinQuantity > selected.MinQuantity {
			selected = &tier
		}
	}
	return selected
}
