// Package types provides value types shared by the domain and its adapters.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// NullNumber is a nullable NUMERIC value.
//
// Database scanning and driver values come from decimal.NullDecimal; JSON
// is a number (not a string) or null, so clients receive quantities and
// rates the way the report columns declare them (Float).
type NullNumber struct {
	decimal.NullDecimal
}

// NewNullNumber returns a valid NullNumber holding d.
func NewNullNumber(d decimal.Decimal) NullNumber {
	return NullNumber{decimal.NewNullDecimal(d)}
}

// MustNumber parses s, panics on error.
// Use only for constants and tests.
func MustNumber(s string) NullNumber {
	return NewNullNumber(decimal.RequireFromString(s))
}

// Float64 returns the value as float64 and whether it is set.
func (n NullNumber) Float64() (float64, bool) {
	if !n.Valid {
		return 0, false
	}
	return n.Decimal.InexactFloat64(), true
}

// MarshalJSON encodes the value as a JSON number, or null.
func (n NullNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return []byte(n.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number, a numeric string, or null.
func (n *NullNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = NullNumber{}
		return nil
	}

	s := string(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("parse number %q: %w", s, err)
	}
	*n = NewNullNumber(d)
	return nil
}
