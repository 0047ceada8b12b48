package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

// TierQuoteRequest asks for the tiered price of one line item.
type TierQuoteRequest struct {
	ProductID *uuid.UUID      `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	BasePrice decimal.Decimal `json:"base_price"`
}

func (r TierQuoteRequest) check() error {
	if r.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
	}
	if (r.ProductID == nil || *r.ProductID == uuid.Nil) && r.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id or sku is required")
	}
	return nil
}

// B2BQuoteRequest asks for an account-discounted tiered price.
type B2BQuoteRequest struct {
	AccountID uuid.UUID       `json:"account_id" validate:"required"`
	ProductID *uuid.UUID      `json:"product_id"`
	SKU       string          `json:"sku"`
	Quantity  int             `json:"quantity" validate:"required,min=1"`
	BasePrice decimal.Decimal `json:"base_price"`
}

func (r B2BQuoteRequest) check() error {
	if r.BasePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "base price must not be negative")
	}
	if (r.ProductID == nil || *r.ProductID == uuid.Nil) && r.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id or sku is required")
	}
	return nil
}

// TierPayload is one proposed quantity band in a validation request.
type TierPayload struct {
	MinQuantity        int              `json:"min_quantity" validate:"min=0"`
	MaxQuantity        *int             `json:"max_quantity"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     *decimal.Decimal `json:"discount_amount"`
	FixedPrice         *decimal.Decimal `json:"fixed_price"`
}

// ValidateTiersRequest carries a proposed tier table.
type ValidateTiersRequest struct {
	Tiers []TierPayload `json:"tiers"`
}

func (r ValidateTiersRequest) toModels() []models.Tier {
	out := make([]models.Tier, 0, len(r.Tiers))
	for _, tier := range r.Tiers {
		out = append(out, models.Tier{
			MinQuantity:        tier.MinQuantity,
			MaxQuantity:        tier.MaxQuantity,
			DiscountPercentage: tier.DiscountPercentage,
			DiscountAmount:     tier.DiscountAmount,
			FixedPrice:         tier.FixedPrice,
		})
	}
	return out
}

// CreditCheckRequest asks whether an account may place an order.
type CreditCheckRequest struct {
	AccountID  uuid.UUID       `json:"account_id" validate:"required"`
	OrderTotal decimal.Decimal `json:"order_total"`
}
