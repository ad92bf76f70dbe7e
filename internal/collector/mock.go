package collector

import (
	"context"
	"time"

	"itisinvest/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Closes    map[string][]float64
	Quotes    map[string]model.Quote
	Headlines map[string][]string
	Failures  map[string]FailReason
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCloses(_ context.Context, symbol string, sessions int) (model.PriceObservation, error) {
	if reason, ok := m.Failures[symbol]; ok {
		return model.PriceObservation{Symbol: symbol}, &FetchError{Symbol: symbol, Reason: reason}
	}
	closes, ok := m.Closes[symbol]
	if !ok || len(closes) < 2 {
		return model.PriceObservation{Symbol: symbol}, &FetchError{Symbol: symbol, Reason: ReasonNoData}
	}
	if len(closes) > sessions {
		closes = closes[len(closes)-sessions:]
	}
	return model.PriceObservation{Symbol: symbol, Closes: closes, FetchedAt: time.Now()}, nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (model.Quote, error) {
	q, ok := m.Quotes[symbol]
	if !ok {
		return model.Quote{}, &FetchError{Symbol: symbol, Reason: ReasonNoData}
	}
	return q, nil
}

func (m *MockFetcher) FetchHeadlines(_ context.Context, symbol string, limit int) ([]string, error) {
	titles := m.Headlines[symbol]
	if len(titles) > limit {
		titles = titles[:limit]
	}
	return titles, nil
}
