package model

// Position is one row of the ledger file. The ledger is the sole source of
// truth; positions are read fresh each run and never mutated.
type Position struct {
	Symbol    string
	CostBasis float64 // price paid per unit, always > 0
	Quantity  float64
}

// PerformanceRecord is the per-run valuation of a single symbol.
// For ledger positions the variation is measured against the cost basis;
// for screener candidates it is measured against a reference session.
type PerformanceRecord struct {
	Symbol        string
	CurrentPrice  float64
	VariationPct  float64
	PositionValue float64
}
