package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal is an order-level promotion activated when the cart subtotal falls
// inside the [StartPrice, EndPrice] band. Column names keep the legacy
// storefront schema so existing rows migrate untouched.
type Deal struct {
	ID            int64           `gorm:"column:iddeal;primaryKey;autoIncrement"`
	Description   string          `gorm:"column:dealdiscription;not null"`
	StartPrice    decimal.Decimal `gorm:"column:startprice;type:numeric(10,2);not null"`
	EndPrice      decimal.Decimal `gorm:"column:endprice;type:numeric(10,2);not null"`
	Units         int             `gorm:"column:units;not null;default:1"`
	RewardAutoAdd bool            `gorm:"column:reward_auto_add;not null;default:true"`
	Active        bool            `gorm:"column:active;not null;default:true"`
	ValidFrom     *time.Time      `gorm:"column:valid_from"`
	ValidTo       *time.Time      `gorm:"column:valid_to"`
	Rewards       []DealReward    `gorm:"foreignKey:DealID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (Deal) TableName() string {
	return "deals"
}

// DealReward is one free/bonus SKU granted when its deal applies.
type DealReward struct {
	ID            int64            `gorm:"column:id;primaryKey;autoIncrement"`
	DealID        int64            `gorm:"column:deal_id;not null"`
	SKU           string           `gorm:"column:sku;not null"`
	Quantity      int              `gorm:"column:quantity;not null;default:1"`
	PriceOverride *decimal.Decimal `gorm:"column:price_override;type:numeric(10,2)"`
}

// TableName keeps the legacy table name.
func (DealReward) TableName() string {
	return "deal_rewards"
}

// InWindow reports whether the deal is inside its optional validity window.
func (d Deal) InWindow(now time.Time) bool {
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidTo != nil && now.After(*d.ValidTo) {
		return false
	}
	return true
}

// ContainsSubtotal reports whether the subtotal falls inside the deal band.
func (d Deal) ContainsSubtotal(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(d.StartPrice) && subtotal.LessThanOrEqual(d.EndPrice)
}
