package enums

import "fmt"

// PaymentTerms enumerates the negotiated invoice terms for a B2B account.
type PaymentTerms string

const (
	PaymentTermsNet15  PaymentTerms = "net-15"
	PaymentTermsNet30  PaymentTerms = "net-30"
	PaymentTermsNet45  PaymentTerms = "net-45"
	PaymentTermsNet60  PaymentTerms = "net-60"
	PaymentTermsPrepay PaymentTerms = "prepay"
)

var validPaymentTerms = []PaymentTerms{
	PaymentTermsNet15,
	PaymentTermsNet30,
	PaymentTermsNet45,
	PaymentTermsNet60,
	PaymentTermsPrepay,
}

// String implements fmt.Stringer.
func (p PaymentTerms) String() string {
	return string(p)
}

// IsValid reports whether the value matches known PaymentTerms.
func (p PaymentTerms) IsValid() bool {
	for _, candidate := range validPaymentTerms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentTerms converts raw input into PaymentTerms.
func ParsePaymentTerms(value string) (PaymentTerms, error) {
	for _, candidate := range validPaymentTerms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment terms: %q", value)
}
