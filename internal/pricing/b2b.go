package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

// ApplyAccountDiscount discounts a base price by the account's negotiated
// percentage. Only approved accounts receive the discount.
func ApplyAccountDiscount(basePrice decimal.Decimal, account *models.B2BAccount) decimal.Decimal {
	if account == nil || account.Status != enums.AccountStatusApproved {
		return basePrice
	}
	factor := hundred.Sub(account.DiscountPercentage).Div(hundred)
	return basePrice.Mul(factor).Round(2)
}

// TierLookup resolves the tier table in scope for a product or SKU.
// Implementations return (nil, nil) when no table exists.
type TierLookup interface {
	ByProductID(ctx context.Context, productID uuid.UUID) (*models.TierPricing, error)
	BySKU(ctx context.Context, sku string) (*models.TierPricing, error)
}

// Quoter computes B2B prices by chaining the account discount ahead of tier
// resolution: the discounted price becomes the base for tier calculations.
type Quoter struct {
	tiers TierLookup
}

// NewQuoter builds a quoter backed by the provided tier lookup.
func NewQuoter(tiers TierLookup) (*Quoter, error) {
	if tiers == nil {
		return nil, fmt.Errorf("tier lookup required")
	}
	return &Quoter{tiers: tiers}, nil
}

// CalculateB2BPrice applies the account discount, resolves the tier table in
// scope (product id first, SKU as fallback), and returns the tiered quote.
func (q *Quoter) CalculateB2BPrice(ctx context.Context, basePrice decimal.Decimal, quantity int, account *models.B2BAccount, productID *uuid.UUID, sku string) (TierResult, error) {
	discounted := ApplyAccountDiscount(basePrice, account)

	tierPricing, err := q.lookupTiers(ctx, productID, sku)
	if err != nil {
		return TierResult{}, err
	}

	return CalculateTierPrice(discounted, quantity, tierPricing), nil
}

func (q *Quoter) lookupTiers(ctx context.Context, productID *uuid.UUID, sku string) (*models.TierPricing, error) {
	if productID != nil && *productID != uuid.Nil {
		tierPricing, err := q.tiers.ByProductID(ctx, *productID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tier pricing by product")
		}
		if tierPricing != nil {
			return tierPricing, nil
		}
	}
	if sku != "" {
		tierPricing, err := q.tiers.BySKU(ctx, sku)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tier pricing by sku")
		}
		return tierPricing, nil
	}
	return nil, nil
}
