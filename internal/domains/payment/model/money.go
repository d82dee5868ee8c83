package model

import (
	"github.com/shopspring/decimal"
)

var minorFactor = decimal.NewFromInt(100)

// ToMinorUnits converts a major-unit amount (rupees) to minor units
// (paise). Amounts with sub-paisa precision are rejected rather than
// silently rounded.
func ToMinorUnits(amount decimal.Decimal) (int64, error) {
	minor := amount.Mul(minorFactor)
	if !minor.IsInteger() {
		return 0, ErrInvalidAmount
	}
	return minor.IntPart(), nil
}
