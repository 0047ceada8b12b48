package pricing

import (
	"strings"
	"testing"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
)

func TestCanPlaceOrderStatusDenials(t *testing.T) {
	t.Parallel()

	cases := []struct {
		status enums.AccountStatus
		reason string
	}{
		{enums.AccountStatusPending, "Account pending approval"},
		{enums.AccountStatusRejected, "Account rejected"},
		{enums.AccountStatusSuspended, "Account suspended"},
	}

	for _, tc := range cases {
		decision := CanPlaceOrder(&models.B2BAccount{Status: tc.status}, dec("10.00"))
		if decision.Allowed {
			t.Fatalf("expected %s account to be denied", tc.status)
		}
		if decision.Reason != tc.reason {
			t.Fatalf("expected reason %q, got %q", tc.reason, decision.Reason)
		}
	}
}

func TestCanPlaceOrderWithinCredit(t *testing.T) {
	t.Parallel()

	account := &models.B2BAccount{
		Status:       enums.AccountStatusApproved,
		CreditLimit:  decPtr("1000.00"),
		CreditUsed:   dec("800.00"),
		PaymentTerms: enums.PaymentTermsNet30,
	}

	if decision := CanPlaceOrder(account, dec("150.00")); !decision.Allowed {
		t.Fatalf("expected order within credit to be allowed, got %+v", decision)
	}

	decision := CanPlaceOrder(account, dec("250.00"))
	if decision.Allowed {
		t.Fatal("expected order exceeding credit to be denied")
	}
	if !strings.Contains(decision.Reason, "$200.00") {
		t.Fatalf("expected reason citing available credit, got %q", decision.Reason)
	}
}

func TestCanPlaceOrderPrepayBypassesCredit(t *testing.T) {
	t.Parallel()

	account := &models.B2BAccount{
		Status:       enums.AccountStatusApproved,
		CreditLimit:  decPtr("100.00"),
		CreditUsed:   dec("100.00"),
		PaymentTerms: enums.PaymentTermsPrepay,
	}
	if decision := CanPlaceOrder(account, dec("5000.00")); !decision.Allowed {
		t.Fatalf("expected prepay account to bypass credit check, got %+v", decision)
	}
}

func TestCanPlaceOrderNoLimitBypassesCredit(t *testing.T) {
	t.Parallel()

	account := &models.B2BAccount{
		Status:       enums.AccountStatusApproved,
		PaymentTerms: enums.PaymentTermsNet60,
	}
	if decision := CanPlaceOrder(account, dec("5000.00")); !decision.Allowed {
		t.Fatalf("expected account without credit limit to be allowed, got %+v", decision)
	}
}

func TestCanPlaceOrderNilAccount(t *testing.T) {
	t.Parallel()

	if decision := CanPlaceOrder(nil, dec("1.00")); decision.Allowed {
		t.Fatal("expected nil account to be denied")
	}
}
