package model

import "time"

// PriceObservation holds an ordered series of closing prices for one symbol,
// oldest first. A variation can only be computed from two or more closes.
type PriceObservation struct {
	Symbol    string
	Closes    []float64
	FetchedAt time.Time
}

// Quote carries optional descriptive metadata for a symbol.
type Quote struct {
	Symbol string
	Name   string
	Volume float64
}
