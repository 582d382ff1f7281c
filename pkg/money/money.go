// Package money implements fixed-point currency arithmetic. Amounts are
// integer minor units (cents), so per-night sums never accumulate binary
// floating point drift.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// Amount is a currency value in minor units (cents).
type Amount int64

// FromUnits builds an Amount from whole currency units, e.g. FromUnits(150)
// is 150.00.
func FromUnits(units int64) Amount {
	return Amount(units * 100)
}

// Parse reads a decimal string such as "150", "150.5" or "150.00" into an
// Amount. At most two fractional digits are accepted.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	negative := false
	if strings.HasPrefix(s, "-") {
		negative = true
		s = s[1:]
	}

	wholePart, fracPart, _ := strings.Cut(s, ".")
	if wholePart == "" {
		wholePart = "0"
	}

	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	var frac int64
	switch len(fracPart) {
	case 0:
	case 1:
		frac, err = strconv.ParseInt(fracPart, 10, 64)
		frac *= 10
	case 2:
		frac, err = strconv.ParseInt(fracPart, 10, 64)
	default:
		return 0, fmt.Errorf("invalid amount %q: more than two fractional digits", s)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}

	cents := whole*100 + frac
	if negative {
		cents = -cents
	}
	return Amount(cents), nil
}

// MulNights scales a nightly rate by a night count.
func (a Amount) MulNights(nights int) Amount {
	return a * Amount(nights)
}

// DivRound divides by n, rounding half away from zero. Used for the
// display-only average-per-night figure.
func (a Amount) DivRound(n int) Amount {
	if n == 0 {
		return 0
	}
	d := Amount(n)
	half := d / 2
	if a < 0 {
		return (a - half) / d
	}
	return (a + half) / d
}

// IsPositive reports whether the amount is strictly greater than zero.
func (a Amount) IsPositive() bool {
	return a > 0
}

// String renders the amount with two decimal places, e.g. "150.00".
func (a Amount) String() string {
	cents := int64(a)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// MarshalJSON renders the amount as a decimal string so callers never see
// raw minor units or binary floats on the wire.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts either a decimal string ("150.00") or a bare JSON
// number (150.00, legacy clients).
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
