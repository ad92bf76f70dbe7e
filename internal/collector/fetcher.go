package collector

import (
	"context"
	"fmt"

	"itisinvest/internal/model"
)

// FailReason classifies why a symbol fetch produced no usable data.
type FailReason string

const (
	ReasonNoData        FailReason = "no_data"
	ReasonInvalidSymbol FailReason = "invalid_symbol"
	ReasonNetwork       FailReason = "network"
)

// FetchError is a per-symbol failure. Callers treat it as "skip this symbol",
// never as fatal to the run.
type FetchError struct {
	Symbol string
	Reason FailReason
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s (%s): %v", e.Symbol, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.Symbol, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchCloses returns up to `sessions` most recent closing prices,
	// oldest first. sessions must be >= 2. Failures are *FetchError.
	FetchCloses(ctx context.Context, symbol string, sessions int) (model.PriceObservation, error)
	// FetchQuote returns descriptive metadata for the symbol. Best effort.
	FetchQuote(ctx context.Context, symbol string) (model.Quote, error)
	// FetchHeadlines returns up to `limit` recent news titles. Best effort.
	FetchHeadlines(ctx context.Context, symbol string, limit int) ([]string, error)
	Name() string
}
