package discounts

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

const maxCodeLength = 20

var (
	codePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	datePattern = regexp.MustCompile(`^\d{8}$`)

	hundred = decimal.NewFromInt(100)
)

// Rule is the validation view shared by order-level and product-level
// discount rows.
type Rule struct {
	Code              string
	Type              enums.DiscountType
	Percentage        *decimal.Decimal
	Amount            *decimal.Decimal
	FromAmount        *decimal.Decimal
	ToAmount          *decimal.Decimal
	Status            enums.DiscountStatus
	ValidFrom         *string
	ValidTo           *string
	OnceOnly          enums.YesNo
	Compoundable      enums.YesNo
	FreeShipping      enums.YesNo
	MultiplyByQty     enums.YesNo
	AllowOnForms      enums.YesNo
	TargetProductType *enums.ProductType
}

// NormalizeCode trims and uppercases a discount code. Codes are stored and
// matched uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateRule checks a discount rule and returns a validation error carrying
// a field->message map, or nil. Only the first violation per field is kept.
func ValidateRule(rule Rule) error {
	details := map[string]string{}

	addDetail := func(field, message string) {
		if _, seen := details[field]; !seen {
			details[field] = message
		}
	}

	switch {
	case rule.Code == "":
		addDetail("code", "code is required")
	case len(rule.Code) > maxCodeLength:
		addDetail("code", "code must be at most 20 characters")
	case !codePattern.MatchString(rule.Code):
		addDetail("code", "code may contain only letters, digits, underscore, and hyphen")
	}

	switch rule.Type {
	case enums.DiscountTypePercentage:
		switch {
		case rule.Percentage == nil:
			addDetail("percentage", "percentage is required for percentage discounts")
		case !rule.Percentage.IsPositive() || rule.Percentage.GreaterThan(hundred):
			addDetail("percentage", "percentage must be greater than 0 and at most 100")
		}
		if rule.Amount != nil {
			addDetail("amount", "amount must not be set for percentage discounts")
		}
	case enums.DiscountTypeAmount:
		switch {
		case rule.Amount == nil:
			addDetail("amount", "amount is required for amount discounts")
		case !rule.Amount.IsPositive():
			addDetail("amount", "amount must be greater than 0")
		}
		if rule.Percentage != nil {
			addDetail("percentage", "percentage must not be set for amount discounts")
		}
	default:
		addDetail("type", "type must be percentage or amount")
	}

	if rule.FromAmount != nil && rule.FromAmount.IsNegative() {
		addDetail("from_amount", "from amount must not be negative")
	}
	if rule.ToAmount != nil && rule.ToAmount.IsNegative() {
		addDetail("to_amount", "to amount must not be negative")
	}
	if rule.FromAmount != nil && rule.ToAmount != nil &&
		!rule.FromAmount.IsNegative() && !rule.ToAmount.IsNegative() &&
		rule.FromAmount.GreaterThan(*rule.ToAmount) {
		addDetail("to_amount", "to amount must be greater than or equal to from amount")
	}

	validFrom := validateDate(addDetail, "valid_from", rule.ValidFrom)
	validTo := validateDate(addDetail, "valid_to", rule.ValidTo)
	// YYYYMMDD compares correctly as a string
	if validFrom != "" && validTo != "" && validFrom > validTo {
		addDetail("valid_to", "valid to date must not precede valid from date")
	}

	if !rule.Status.IsValid() {
		addDetail("status", "status must be A, I, or U")
	}
	validateFlag(addDetail, "once_only", rule.OnceOnly)
	validateFlag(addDetail, "compoundable", rule.Compoundable)
	validateFlag(addDetail, "free_shipping", rule.FreeShipping)
	validateFlag(addDetail, "multiply_by_qty", rule.MultiplyByQty)
	validateFlag(addDetail, "allow_on_forms", rule.AllowOnForms)

	if rule.TargetProductType != nil && !rule.TargetProductType.IsValid() {
		addDetail("target_product_type", "unknown product type")
	}

	if len(details) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "discount rule validation failed").WithDetails(details)
}

func validateDate(addDetail func(field, message string), field string, value *string) string {
	if value == nil || *value == "" {
		return ""
	}
	if !datePattern.MatchString(*value) {
		addDetail(field, "date must be in YYYYMMDD format")
		return ""
	}
	return *value
}

func validateFlag(addDetail func(field, message string), field string, value enums.YesNo) {
	if !value.IsValid() {
		addDetail(field, "flag must be Y or N")
	}
}
