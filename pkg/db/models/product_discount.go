package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/enums"
)

// ProductDiscount is a product-scoped discount code row sharing the legacy
// disc_* column layout with OrderDiscount, plus a product-type target.
type ProductDiscount struct {
	ID                int64                `gorm:"column:id;primaryKey;autoIncrement"`
	Code              string               `gorm:"column:disc_code;not null;uniqueIndex:uq_product_discounts_code"`
	Type              enums.DiscountType   `gorm:"column:disc_type;type:discount_type;not null"`
	Percentage        *decimal.Decimal     `gorm:"column:disc_perc;type:numeric(5,2)"`
	Amount            *decimal.Decimal     `gorm:"column:disc_amt;type:numeric(10,2)"`
	FromAmount        *decimal.Decimal     `gorm:"column:disc_from_amt;type:numeric(10,2)"`
	ToAmount          *decimal.Decimal     `gorm:"column:disc_to_amt;type:numeric(10,2)"`
	Status            enums.DiscountStatus `gorm:"column:disc_status;type:char(1);not null;default:'A'"`
	ValidFrom         *string              `gorm:"column:disc_valid_from;type:char(8)"`
	ValidTo           *string              `gorm:"column:disc_valid_to;type:char(8)"`
	OnceOnly          enums.YesNo          `gorm:"column:disc_once_only;type:char(1);not null;default:'N'"`
	Compoundable      enums.YesNo          `gorm:"column:disc_compoundable;type:char(1);not null;default:'N'"`
	FreeShipping      enums.YesNo          `gorm:"column:disc_free_shipping;type:char(1);not null;default:'N'"`
	MultiplyByQty     enums.YesNo          `gorm:"column:disc_multi_by_qty;type:char(1);not null;default:'N'"`
	AllowOnForms      enums.YesNo          `gorm:"column:disc_allow_on_forms;type:char(1);not null;default:'N'"`
	TargetProductType *enums.ProductType   `gorm:"column:target_product_type;type:product_type"`
	CreatedAt         time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
