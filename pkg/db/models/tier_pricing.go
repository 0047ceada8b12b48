package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/enums"
)

// TierPricing scopes a volume tier table to a product, a SKU, a product type,
// or globally when none of the three is set.
type TierPricing struct {
	ID        uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string             `gorm:"column:name;not null"`
	ProductID *uuid.UUID         `gorm:"column:product_id;type:uuid"`
	SKU       *string            `gorm:"column:sku"`
	Category  *enums.ProductType `gorm:"column:category;type:product_type"`
	IsActive  bool               `gorm:"column:is_active;not null;default:true"`
	Tiers     []Tier             `gorm:"foreignKey:TierPricingID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// Tier is a single quantity band. Exactly one of the three pricing columns is
// expected to be populated; precedence when legacy rows carry more than one is
// fixed price, then discount amount, then discount percentage.
type Tier struct {
	ID                 uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TierPricingID      uuid.UUID        `gorm:"column:tier_pricing_id;type:uuid;not null"`
	MinQuantity        int              `gorm:"column:min_quantity;not null"`
	MaxQuantity        *int             `gorm:"column:max_quantity"`
	DiscountPercentage *decimal.Decimal `gorm:"column:discount_percentage;type:numeric(5,2)"`
	DiscountAmount     *decimal.Decimal `gorm:"column:discount_amount;type:numeric(10,2)"`
	FixedPrice         *decimal.Decimal `gorm:"column:fixed_price;type:numeric(10,2)"`
	CreatedAt          time.Time        `gorm:"column:created_at;autoCreateTime"`
}

// Matches reports whether the quantity falls inside the tier's band.
func (t Tier) Matches(quantity int) bool {
	if quantity < t.MinQuantity {
		return false
	}
	return t.MaxQuantity == nil || quantity <= *t.MaxQuantity
}
