package ledger

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount of currency held as integer cents.
// Use cents for arithmetic; floats only at the edges.
type Money int64

var ErrInvalidMoney = errors.New("invalid money amount")

// Cents returns the raw cent value.
func (m Money) Cents() int64 {
	return int64(m)
}

// Float64 returns the amount in major units, for display.
func (m Money) Float64() float64 {
	return float64(m) / 100.0
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String formats the amount with exactly two decimals, e.g. "-12.05".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON writes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*m = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	parsed, err := ParseMoney(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMoney converts a decimal string to Money, rounding half away from zero
// to the cent. Both "." and "," are accepted as decimal separator and a
// leading sign is allowed.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return 0, ErrInvalidMoney
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidMoney
	}
	return MoneyFromDecimal(d)
}

// MoneyFromDecimal rounds d to the nearest cent.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Round(2).Shift(2)
	if !cents.BigInt().IsInt64() {
		return 0, ErrInvalidMoney
	}
	return Money(cents.IntPart()), nil
}

// MoneyFromFloat rounds a float amount in major units to the nearest cent.
func MoneyFromFloat(f float64) Money {
	m, _ := MoneyFromDecimal(decimal.NewFromFloat(f))
	return m
}
