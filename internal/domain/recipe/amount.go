package recipe

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxAmountScale is the largest number of fractional digits an ingredient
// amount may carry.
const maxAmountScale = 3

// Amount is an exact ingredient quantity. Arithmetic is decimal, never
// floating point, so sums like 0.1 + 0.2 stay exact.
type Amount struct {
	value decimal.Decimal
}

// ParseAmount parses a decimal-point number into an Amount.
func ParseAmount(raw string) (Amount, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "eE,_ ") {
		return Amount{}, ErrAmountNotDecimal
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return Amount{}, ErrAmountNotDecimal
	}
	return NewAmount(value)
}

// NewAmount validates a decimal value as an ingredient amount: strictly
// positive, at most three fractional digits.
func NewAmount(value decimal.Decimal) (Amount, error) {
	if !value.IsPositive() {
		return Amount{}, ErrAmountNotPositive
	}
	if value.Exponent() < -maxAmountScale {
		return Amount{}, ErrAmountTooPrecise
	}
	return Amount{value: value}, nil
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal {
	return a.value
}

// Add returns the exact sum of two amounts.
func (a Amount) Add(other Amount) Amount {
	return Amount{value: a.value.Add(other.value)}
}

// Equal reports numeric equality: 5 and 5.000 are equal.
func (a Amount) Equal(other Amount) bool {
	return a.value.Equal(other.value)
}

// String renders the amount compactly: trailing fractional zeros are
// dropped, so 5.000 renders as "5" and 0.50 as "0.5".
func (a Amount) String() string {
	s := a.value.String()
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}
