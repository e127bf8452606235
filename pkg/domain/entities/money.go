package entities

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a price or cost. Like Quantity it decodes leniently: a malformed
// amount in one record becomes zero instead of rejecting the whole payload.
type Money decimal.Decimal

// ZeroMoney is the zero amount
var ZeroMoney = Money(decimal.Zero)

// NewMoney wraps an exact decimal amount
func NewMoney(d decimal.Decimal) Money {
	return Money(d)
}

// ParseMoney parses free-form input with the parse-or-zero policy
func ParseMoney(s string) Money {
	return Money(ParseDecimal(s))
}

// Decimal returns the underlying decimal value
func (m Money) Decimal() decimal.Decimal {
	return decimal.Decimal(m)
}

// Mul scales the amount, e.g. by a markup factor or a quantity
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money(m.Decimal().Mul(factor))
}

// Round rounds to the given number of decimal places
func (m Money) Round(places int32) Money {
	return Money(m.Decimal().Round(places))
}

func (m Money) IsZero() bool {
	return m.Decimal().IsZero()
}

func (m Money) String() string {
	return m.Decimal().String()
}

// MarshalJSON encodes the amount as a JSON string so no precision is lost
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON number or string. Malformed values decode to zero.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = ZeroMoney
		return nil
	}
	*m = ParseMoney(strings.Trim(string(data), `"`))
	return nil
}
