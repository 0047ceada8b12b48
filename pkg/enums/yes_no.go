package enums

import "fmt"

// YesNo is the legacy Y/N flag format carried by the discount tables.
type YesNo string

const (
	Yes YesNo = "Y"
	No  YesNo = "N"
)

// String implements fmt.Stringer.
func (y YesNo) String() string {
	return string(y)
}

// IsValid reports whether the value is Y or N.
func (y YesNo) IsValid() bool {
	return y == Yes || y == No
}

// Bool converts the flag to its boolean meaning.
func (y YesNo) Bool() bool {
	return y == Yes
}

// ParseYesNo converts raw input into a YesNo flag.
func ParseYesNo(value string) (YesNo, error) {
	switch YesNo(value) {
	case Yes:
		return Yes, nil
	case No:
		return No, nil
	}
	return "", fmt.Errorf("invalid yes/no flag: %q", value)
}
