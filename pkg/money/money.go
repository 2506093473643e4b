package money

import (
	"github.com/shopspring/decimal"
)

// Money represents custom type for processing money amounts and exchange rates.
type Money struct {
	decimal decimal.Decimal
}

// Zero represents zero (0) amount.
// Zero always equals to 0 and to 0.0...N.
var Zero = NewFromInt(0)

// One represents an identity exchange rate.
var One = NewFromInt(1)

// NewFromString parses string and returns decimal amount.
// If s is empty, will be returned Zero decimal without throwing an error.
func NewFromString(s string) (Money, error) {
	if len(s) == 0 {
		return Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, err
	}
	return Money{d}, nil
}

// NewFromInt returns decimal from integer number.
func NewFromInt(i int64) Money {
	d := decimal.NewFromInt(i)
	return Money{d}
}

// NewFromFloat returns decimal from float number.
func NewFromFloat(f float64) Money {
	d := decimal.NewFromFloat(f)
	return Money{d}
}

// Inc increments left amount by right.
// Same as left = left + right; left+=right
func (m *Money) Inc(right Money) {
	m.decimal = m.decimal.Add(right.decimal)
}

// Sub decrements left amount by right.
// Same as left = left - right; left-=right
func (m *Money) Sub(right Money) {
	m.decimal = m.decimal.Sub(right.decimal)
}

// Mul multiplies left amount by right.
func (m *Money) Mul(right Money) {
	m.decimal = m.decimal.Mul(right.decimal)
}

// Div divides left amount by right. Division by zero leaves the amount untouched.
func (m *Money) Div(right Money) {
	if right.decimal.IsZero() {
		return
	}
	m.decimal = m.decimal.Div(right.decimal)
}

// Round returns amount rounded to the given number of decimal places.
// Halves are rounded away from zero.
func (m Money) Round(places int32) Money {
	return Money{m.decimal.Round(places)}
}

// Equal checks if left and right amounts are equal.
func (m Money) Equal(right Money) bool {
	return m.decimal.Equal(right.decimal)
}

// GreaterThan checks if left amount is greater than right.
func (m Money) GreaterThan(right Money) bool {
	return m.decimal.GreaterThan(right.decimal)
}

// IsPositive returns true if amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.decimal.IsPositive()
}

// IsNegative returns true if amount is lower than zero.
func (m Money) IsNegative() bool {
	return m.decimal.IsNegative()
}

// StringFixed returns string representation of amount with 2 places after digit.
// Resulting string will be rounded to nearest.
func (m Money) StringFixed() string {
	return m.decimal.StringFixed(2)
}

// StringFixedPlaces returns string representation of amount with the given number of places after digit.
func (m Money) StringFixedPlaces(places int32) string {
	return m.decimal.StringFixed(places)
}

// String returns string representation of amount without any precision limitation.
func (m Money) String() string {
	return m.decimal.String()
}
