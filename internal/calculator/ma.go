package calculator

import "errors"

// CalculateSMA computes the simple moving average over the last `period`
// prices. The screener uses it as a strength gate: a candidate trading below
// its moving average is not narrated.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	var sum float64
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return sum / float64(period), nil
}
