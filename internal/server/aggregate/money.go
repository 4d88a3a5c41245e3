package aggregate

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/budgettracker/internal/common"
	"github.com/shopspring/decimal"
)

// Amount limits. The exponent and digit checks run before any arithmetic:
// comparing or printing a decimal like 1e5000000 expands it in full.
const (
	maxAmountLen      = 64
	maxAmountScale    = 10 // fractional digits
	maxIntegerDigits  = 15 // |amount| < 10^15
	maxCoefficientLen = maxIntegerDigits + maxAmountScale
)

// ParseAmount parses a decimal amount and applies ValidateAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	if len(s) > maxAmountLen {
		return decimal.Decimal{}, fmt.Errorf("%w: too long", common.ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// ValidateAmount rejects amounts with more than 10 fractional digits or an
// absolute value of 10^15 or more.
func ValidateAmount(d decimal.Decimal) error {
	exp := int64(d.Exponent())
	if exp < -maxAmountScale {
		return fmt.Errorf("%w: more than %d fractional digits", common.ErrInvalidAmount, maxAmountScale)
	}
	if exp > maxIntegerDigits {
		return fmt.Errorf("%w: out of range", common.ErrInvalidAmount)
	}
	if d.Coefficient().BitLen() > 4*maxCoefficientLen {
		return fmt.Errorf("%w: out of range", common.ErrInvalidAmount)
	}
	if d.IsZero() {
		return nil
	}
	if int64(d.NumDigits())+exp > maxIntegerDigits {
		return fmt.Errorf("%w: out of range", common.ErrInvalidAmount)
	}
	return nil
}

// Money is an exact decimal amount. Only Display rounds.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

// Display renders m with two fractional digits, e.g. "400.00".
func (m Money) Display() string {
	return m.StringFixed(2)
}

// MarshalJSON emits the display form as a string.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Display())
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return m.Decimal.UnmarshalJSON(b)
}
