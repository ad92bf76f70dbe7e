package model

// ScreenerCandidate is a symbol retained by the momentum scan.
type ScreenerCandidate struct {
	Symbol       string
	VariationPct float64
	CurrentPrice float64
	Name         string
	Volume       float64
}
