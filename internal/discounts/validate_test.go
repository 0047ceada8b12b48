package discounts

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/enums"
	pkgerrors "github.com/filtercore/pricing-backend/pkg/errors"
)

func decPtr(value string) *decimal.Decimal {
	d := decimal.RequireFromString(value)
	return &d
}

func strPtr(value string) *string {
	return &value
}

func validPercentageRule() Rule {
	return Rule{
		Code:          "SAVE10",
		Type:          enums.DiscountTypePercentage,
		Percentage:    decPtr("10"),
		Status:        enums.DiscountStatusActive,
		OnceOnly:      enums.No,
		Compoundable:  enums.No,
		FreeShipping:  enums.No,
		MultiplyByQty: enums.No,
		AllowOnForms:  enums.Yes,
	}
}

func detailsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %#v", typed.Details())
	}
	return details
}

func TestValidateRuleAccepts(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.FromAmount = decPtr("25")
	rule.ToAmount = decPtr("100")
	rule.ValidFrom = strPtr("20260101")
	rule.ValidTo = strPtr("20261231")

	if err := ValidateRule(rule); err != nil {
		t.Fatalf("expected valid rule, got %v", err)
	}
}

func TestValidateRuleCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code string
		want string
	}{
		{"empty", "", "code is required"},
		{"too long", "ABCDEFGHIJKLMNOPQRSTU", "code must be at most 20 characters"},
		{"bad characters", "SAVE 10%", "code may contain only letters, digits, underscore, and hyphen"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rule := validPercentageRule()
			rule.Code = tc.code
			details := detailsOf(t, ValidateRule(rule))
			if details["code"] != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, details["code"])
			}
		})
	}
}

func TestValidateRulePercentageBounds(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"0", "-5", "100.01"} {
		rule := validPercentageRule()
		rule.Percentage = decPtr(value)
		details := detailsOf(t, ValidateRule(rule))
		if _, ok := details["percentage"]; !ok {
			t.Fatalf("expected percentage violation for %s, got %v", value, details)
		}
	}

	rule := validPercentageRule()
	rule.Percentage = decPtr("100")
	if err := ValidateRule(rule); err != nil {
		t.Fatalf("100%% must be allowed, got %v", err)
	}
}

func TestValidateRuleAmountType(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.Type = enums.DiscountTypeAmount
	rule.Percentage = nil
	rule.Amount = decPtr("5.00")
	if err := ValidateRule(rule); err != nil {
		t.Fatalf("expected valid amount rule, got %v", err)
	}

	rule.Amount = decPtr("0")
	details := detailsOf(t, ValidateRule(rule))
	if _, ok := details["amount"]; !ok {
		t.Fatalf("expected amount violation, got %v", details)
	}

	rule.Amount = nil
	details = detailsOf(t, ValidateRule(rule))
	if _, ok := details["amount"]; !ok {
		t.Fatalf("expected missing amount violation, got %v", details)
	}
}

func TestValidateRuleExclusiveValueFields(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.Amount = decPtr("5.00")
	details := detailsOf(t, ValidateRule(rule))
	if _, ok := details["amount"]; !ok {
		t.Fatalf("percentage rule must reject a set amount, got %v", details)
	}

	rule = validPercentageRule()
	rule.Type = enums.DiscountTypeAmount
	rule.Amount = decPtr("5.00")
	details = detailsOf(t, ValidateRule(rule))
	if _, ok := details["percentage"]; !ok {
		t.Fatalf("amount rule must reject a set percentage, got %v", details)
	}
}

func TestValidateRuleAmountRange(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.FromAmount = decPtr("100")
	rule.ToAmount = decPtr("50")
	details := detailsOf(t, ValidateRule(rule))
	if _, ok := details["to_amount"]; !ok {
		t.Fatalf("expected inverted range violation, got %v", details)
	}

	rule = validPercentageRule()
	rule.FromAmount = decPtr("-1")
	details = detailsOf(t, ValidateRule(rule))
	if _, ok := details["from_amount"]; !ok {
		t.Fatalf("expected negative from amount violation, got %v", details)
	}
}

func TestValidateRuleDates(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.ValidFrom = strPtr("2026-01-01")
	details := detailsOf(t, ValidateRule(rule))
	if details["valid_from"] != "date must be in YYYYMMDD format" {
		t.Fatalf("expected format violation, got %v", details)
	}

	rule = validPercentageRule()
	rule.ValidFrom = strPtr("20261231")
	rule.ValidTo = strPtr("20260101")
	details = detailsOf(t, ValidateRule(rule))
	if _, ok := details["valid_to"]; !ok {
		t.Fatalf("expected inverted date violation, got %v", details)
	}
}

func TestValidateRuleEnums(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.Status = enums.DiscountStatus("X")
	details := detailsOf(t, ValidateRule(rule))
	if _, ok := details["status"]; !ok {
		t.Fatalf("expected status violation, got %v", details)
	}

	rule = validPercentageRule()
	rule.OnceOnly = enums.YesNo("maybe")
	details = detailsOf(t, ValidateRule(rule))
	if _, ok := details["once_only"]; !ok {
		t.Fatalf("expected flag violation, got %v", details)
	}

	rule = validPercentageRule()
	unknown := enums.ProductType("toaster")
	rule.TargetProductType = &unknown
	details = detailsOf(t, ValidateRule(rule))
	if _, ok := details["target_product_type"]; !ok {
		t.Fatalf("expected product type violation, got %v", details)
	}
}

func TestValidateRuleFirstViolationPerFieldKept(t *testing.T) {
	t.Parallel()

	rule := validPercentageRule()
	rule.Code = "ABCDEFGHIJKLMNOPQRST!@#"
	details := detailsOf(t, ValidateRule(rule))
	if details["code"] != "code must be at most 20 characters" {
		t.Fatalf("expected length violation to win, got %q", details["code"])
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	if got := NormalizeCode("  save10 "); got != "SAVE10" {
		t.Fatalf("expected SAVE10, got %q", got)
	}
}
