package entities

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Quantity represents an exact amount of a material in its unit of measure.
// BOM lines may declare fractional usage (0.25 kg per unit), so quantities are decimal.
type Quantity decimal.Decimal

// ZeroQuantity is the additive identity
var ZeroQuantity = Quantity(decimal.Zero)

// NewQuantity creates a whole-unit quantity
func NewQuantity(value int64) Quantity {
	return Quantity(decimal.NewFromInt(value))
}

// NewQuantityFromFloat creates a quantity from a float value
func NewQuantityFromFloat(value float64) Quantity {
	return Quantity(decimal.NewFromFloat(value))
}

// ParseQuantity parses free-form user input into a quantity.
// Malformed input yields zero instead of an error so one bad record
// never aborts an aggregate computation.
func ParseQuantity(s string) Quantity {
	return Quantity(ParseDecimal(s))
}

// ParseDecimal parses a decimal with the parse-or-zero policy.
// A lone comma is accepted as the decimal separator ("1,5").
func ParseDecimal(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Decimal returns the underlying decimal value
func (q Quantity) Decimal() decimal.Decimal {
	return decimal.Decimal(q)
}

// Add returns q + other
func (q Quantity) Add(other Quantity) Quantity {
	return Quantity(q.Decimal().Add(other.Decimal()))
}

// Sub returns q - other
func (q Quantity) Sub(other Quantity) Quantity {
	return Quantity(q.Decimal().Sub(other.Decimal()))
}

// Mul returns q * other
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity(q.Decimal().Mul(other.Decimal()))
}

// Abs returns the absolute value
func (q Quantity) Abs() Quantity {
	return Quantity(q.Decimal().Abs())
}

// Sign returns -1, 0 or 1
func (q Quantity) Sign() int {
	return q.Decimal().Sign()
}

// Cmp compares q and other
func (q Quantity) Cmp(other Quantity) int {
	return q.Decimal().Cmp(other.Decimal())
}

// Equal reports whether both quantities represent the same amount
func (q Quantity) Equal(other Quantity) bool {
	return q.Decimal().Equal(other.Decimal())
}

// IsZero reports whether q == 0
func (q Quantity) IsZero() bool {
	return q.Decimal().IsZero()
}

// IsNegative reports whether q < 0
func (q Quantity) IsNegative() bool {
	return q.Decimal().IsNegative()
}

// IsPositive reports whether q > 0
func (q Quantity) IsPositive() bool {
	return q.Decimal().IsPositive()
}

// Float64 returns the nearest float64 value, for spreadsheet and metric sinks
func (q Quantity) Float64() float64 {
	f, _ := q.Decimal().Float64()
	return f
}

// String formats the quantity without trailing zeros
func (q Quantity) String() string {
	return q.Decimal().String()
}

// MarshalJSON encodes the quantity as a bare JSON number
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalJSON accepts a JSON number or string. Malformed values decode to zero.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*q = ZeroQuantity
		return nil
	}
	*q = ParseQuantity(strings.Trim(string(data), `"`))
	return nil
}

// SumQuantities adds all quantities; the result is independent of order
func SumQuantities(quantities ...Quantity) Quantity {
	total := ZeroQuantity
	for _, q := range quantities {
		total = total.Add(q)
	}
	return total
}
