package enums

import "fmt"

// DiscountStatus is the single-letter lifecycle flag stored on discount rows.
type DiscountStatus string

const (
	DiscountStatusActive   DiscountStatus = "A"
	DiscountStatusInactive DiscountStatus = "I"
	DiscountStatusUsed     DiscountStatus = "U"
)

var validDiscountStatuses = []DiscountStatus{
	DiscountStatusActive,
	DiscountStatusInactive,
	DiscountStatusUsed,
}

// String implements fmt.Stringer.
func (s DiscountStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known DiscountStatus.
func (s DiscountStatus) IsValid() bool {
	for _, candidate := range validDiscountStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDiscountStatus converts raw input into a DiscountStatus.
func ParseDiscountStatus(value string) (DiscountStatus, error) {
	for _, candidate := range validDiscountStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid discount status: %q", value)
}
