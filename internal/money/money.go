package money

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidAmount  = errors.New("invalid monetary amount")
)

// Cents is a monetary amount in USD minor units. All arithmetic inside the
// service happens on integer cents; decimal strings exist only at the JSON
// boundary.
type Cents int64

// Parse converts a decimal dollar string ("45.00") into cents.
// Amounts with more than two fractional digits or a negative sign are rejected.
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("%w: %q has sub-cent precision", ErrInvalidAmount, s)
	}
	return Cents(d.Shift(2).IntPart()), nil
}

// FromDollars builds an amount from whole dollars and cents parts.
func FromDollars(dollars int64, cents int64) Cents {
	return Cents(dollars*100 + cents)
}

// Decimal returns the amount as a dollar-denominated decimal.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String renders the amount for display, e.g. "$45.00".
func (c Cents) String() string {
	if c < 0 {
		return "-$" + Cents(-c).Decimal().StringFixed(2)
	}
	return "$" + c.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a decimal dollar string: 4550 -> "45.50".
func (c Cents) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Decimal().StringFixed(2))
}

func (c *Cents) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: expected a decimal string", ErrInvalidAmount)
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
