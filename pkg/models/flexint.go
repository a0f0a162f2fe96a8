package models

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexInt decodes integers that the upstream API sends inconsistently as
// either JSON numbers or quoted strings ("total":"1111" vs "total":1111).
// It marshals back as a plain number.
type FlexInt int

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer value %q", string(b))
	}
	*f = FlexInt(n)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexInt) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(f))), nil
}

// Int returns the plain int value.
func (f FlexInt) Int() int {
	return int(f)
}
