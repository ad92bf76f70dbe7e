package calculator

import (
	"errors"
	"math"
)

// VariationPct returns the percentage change from ref to now.
// ref must be positive; ledger cost basis and fetched closes guarantee this.
func VariationPct(ref, now float64) (float64, error) {
	if ref <= 0 {
		return 0, errors.New("reference price must be positive")
	}
	return (now - ref) / ref * 100, nil
}

// PositionValue returns the market value of a holding.
func PositionValue(price, quantity float64) float64 {
	return price * quantity
}

// Round2 rounds to 2 decimal places. Display only; intermediate computation
// keeps full precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
