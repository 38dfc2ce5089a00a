package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	maxBookNameLen = 100
	maxNoteLen     = 255
)

// amountLimit is the first value that no longer fits NUMERIC(10,2).
var amountLimit = decimal.New(1, 8)

// ParseAmount parses a user-supplied amount into a positive 2-decimal value.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, s)
	}
	if err := ValidateAmount(d); err != nil {
		return decimal.Zero, err
	}
	return d.Round(2), nil
}

// ValidateAmount checks that d is > 0, has at most 2 fractional digits and
// fits the amount column.
func ValidateAmount(d decimal.Decimal) error {
	if !d.IsPositive() {
		return ErrInvalidAmount
	}
	if !d.Equal(d.Round(2)) {
		return ErrInvalidAmount
	}
	if d.GreaterThanOrEqual(amountLimit) {
		return fmt.Errorf("%w: must be below %s", ErrInvalidAmount, amountLimit.String())
	}
	return nil
}
