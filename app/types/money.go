package types

import (
	"errors"

	"github.com/shopspring/decimal"
)

// MinorUnits converts a major-unit amount (e.g. 49.99) into the gateway's
// integer minor-unit representation (4999). Sub-cent precision is rejected
// rather than rounded; the order must carry exactly what the client asked
// to pay.
func MinorUnits(amount decimal.Decimal) (int64, error) {
	if amount.Sign() <= 0 {
		return 0, errors.New("amount must be > 0")
	}

	shifted := amount.Shift(2)
	if !shifted.IsInteger() {
		return 0, errors.New("amount supports at most 2 decimal places")
	}

	return shifted.IntPart(), nil
}

func MajorUnits(amountCents int64) decimal.Decimal {
	return decimal.New(amountCents, -2)
}
