package collector

import (
	"context"
	"time"

	"DivSentinel/internal/model"
)

// MockEventsFetcher returns controllable fixed data for development and
// testing.
type MockEventsFetcher struct {
	Events []model.DividendEvent
	Err    error
}

func (m *MockEventsFetcher) Name() string { return "mock-events" }

func (m *MockEventsFetcher) FetchDividendEvents(_ context.Context, _ string) ([]model.DividendEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Events, nil
}

// MockBarsFetcher returns fixed bars, or delegates to FetchFunc when set
// so tests can vary the answer per window.
type MockBarsFetcher struct {
	Bars      []model.PriceBar
	Err       error
	FetchFunc func(ticker string, start, end time.Time, timeframe string) ([]model.PriceBar, error)
}

func (m *MockBarsFetcher) Name() string { return "mock-bars" }

func (m *MockBarsFetcher) FetchBars(_ context.Context, ticker string, start, end time.Time, timeframe string) ([]model.PriceBar, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ticker, start, end, timeframe)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Bars, nil
}
