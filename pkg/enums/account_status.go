package enums

import "fmt"

// AccountStatus captures the lifecycle of a B2B account application.
type AccountStatus string

const (
	AccountStatusPending   AccountStatus = "pending"
	AccountStatusApproved  AccountStatus = "approved"
	AccountStatusRejected  AccountStatus = "rejected"
	AccountStatusSuspended AccountStatus = "suspended"
)

var validAccountStatuses = []AccountStatus{
	AccountStatusPending,
	AccountStatusApproved,
	AccountStatusRejected,
	AccountStatusSuspended,
}

// String implements fmt.Stringer.
func (s AccountStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known AccountStatus.
func (s AccountStatus) IsValid() bool {
	for _, candidate := range validAccountStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseAccountStatus converts raw input into an AccountStatus.
func ParseAccountStatus(value string) (AccountStatus, error) {
	for _, candidate := range validAccountStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid account status: %q", value)
}
