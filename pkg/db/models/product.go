package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/enums"
)

// Product represents the canonical catalog listing.
type Product struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SKU         string            `gorm:"column:sku;not null;uniqueIndex:uq_products_sku"`
	Name        string            `gorm:"column:name;not null"`
	Brand       *string           `gorm:"column:brand"`
	Type        enums.ProductType `gorm:"column:type;type:product_type;not null"`
	Price       decimal.Decimal   `gorm:"column:price;type:numeric(10,2);not null"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	GiftProduct *uuid.UUID        `gorm:"column:gift_with_purchase_product_id;type:uuid"`
	GiftQty     int               `gorm:"column:gift_with_purchase_qty;not null;default:1"`
	GiftAutoAdd bool              `gorm:"column:gift_with_purchase_auto_add;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
