package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
)

var (
	zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// Method is the tagged pricing variant carried by a resolved tier.
type Method struct {
	Kind  enums.PricingMethod
	Value decimal.Decimal
}

// MethodFor derives the pricing method from a tier row. Legacy rows may carry
// more than one populated column; fixed price wins, then discount amount, then
// discount percentage. The second return is false when no column is populated.
func MethodFor(tier models.Tier) (Method, bool) {
	switch {
	case tier.FixedPrice != nil:
		return Method{Kind: enums.PricingMethodFixed, Value: *tier.FixedPrice}, true
	case tier.DiscountAmount != nil:
		return Method{Kind: enums.PricingMethodAmountOff, Value: *tier.DiscountAmount}, true
	case tier.DiscountPercentage != nil:
		return Method{Kind: enums.PricingMethodPercentOff, Value: *tier.DiscountPercentage}, true
	}
	return Method{}, false
}

// Apply computes the unit price the method yields for the given base price.
// Amount-off floors at zero; fixed price ignores the base entirely.
func (m Method) Apply(basePrice decimal.Decimal) decimal.Decimal {
	switch m.Kind {
	case enums.PricingMethodFixed:
		return m.Value
	case enums.PricingMethodAmountOff:
		price := basePrice.Sub(m.Value)
		if price.IsNegative() {
			return zero
		}
		return price
	case enums.PricingMethodPercentOff:
		factor := hundred.Sub(m.Value).Div(hundred)
		return basePrice.Mul(factor).Round(2)
	}
	return basePrice
}
