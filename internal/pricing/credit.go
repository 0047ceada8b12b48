package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/filtercore/pricing-backend/pkg/db/models"
	"github.com/filtercore/pricing-backend/pkg/enums"
)

// OrderDecision is the structured allow/deny outcome of a credit check.
// Denials are results, not errors; callers branch on Allowed.
type OrderDecision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CanPlaceOrder decides whether the account may place an order of the given
// total. Prepay accounts and accounts without a credit limit bypass the
// credit check entirely.
//
// The decision is computed from a snapshot of credit_used; callers that need
// atomicity against concurrent order placement must run the check inside a
// serializable transaction or an optimistic-lock retry.
func CanPlaceOrder(account *models.B2BAccount, orderTotal decimal.Decimal) OrderDecision {
	if account == nil {
		return OrderDecision{Allowed: false, Reason: "Account not found"}
	}

	switch account.Status {
	case enums.AccountStatusApproved:
		// fall through to the credit check
	case enums.AccountStatusPending:
		return OrderDecision{Allowed: false, Reason: "Account pending approval"}
	case enums.AccountStatusRejected:
		return OrderDecision{Allowed: false, Reason: "Account rejected"}
	case enums.AccountStatusSuspended:
		return OrderDecision{Allowed: false, Reason: "Account suspended"}
	default:
		return OrderDecision{Allowed: false, Reason: "Account not approved"}
	}

	if account.PaymentTerms == enums.PaymentTermsPrepay || account.CreditLimit == nil {
		return OrderDecision{Allowed: true}
	}

	creditAvailable := account.CreditLimit.Sub(account.CreditUsed)
	if orderTotal.GreaterThan(creditAvailable) {
		return OrderDecision{
			Allowed: false,
			Reason:  fmt.Sprintf("Credit limit exceeded. Available credit: $%s", creditAvailable.StringFixed(2)),
		}
	}

	return OrderDecision{Allowed: true}
}
