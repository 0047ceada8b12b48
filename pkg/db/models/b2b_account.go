package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/enums"
)

// B2BAccount is a business customer with negotiated discount and credit terms.
type B2BAccount struct {
	ID                 uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyName        string              `gorm:"column:company_name;not null"`
	Status             enums.AccountStatus `gorm:"column:status;type:account_status;not null;default:'pending'"`
	DiscountPercentage decimal.Decimal     `gorm:"column:discount_percentage;type:numeric(5,2);not null;default:0"`
	CreditLimit        *decimal.Decimal    `gorm:"column:credit_limit;type:numeric(12,2)"`
	CreditUsed         decimal.Decimal     `gorm:"column:credit_used;type:numeric(12,2);not null;default:0"`
	PaymentTerms       enums.PaymentTerms  `gorm:"column:payment_terms;type:payment_terms;not null;default:'prepay'"`
	CreatedAt          time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
