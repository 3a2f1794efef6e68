package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DivSentinel/internal/collector"
	"DivSentinel/internal/model"
)

type mockNotifier struct {
	sent []string
	err  error
}

func (m *mockNotifier) SendWithRetry(_ context.Context, text string, _ int) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, text)
	return nil
}

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func dayBars(loc *time.Location, y int, m time.Month, d int, mean float64) []model.PriceBar {
	return []model.PriceBar{
		{Time: time.Date(y, m, d, 10, 0, 0, 0, loc), VW: mean - 1},
		{Time: time.Date(y, m, d, 14, 0, 0, 0, loc), VW: mean + 1},
	}
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Two events whose rescaled day-0 values are 0.95 and 0.90; with R-7
// quartiles p25 = 0.9125, so the estimated drop is 0.0875.
func twoEventFixture(t *testing.T) (*collector.MockEventsFetcher, *collector.MockBarsFetcher) {
	t.Helper()
	loc := mustLoc(t)
	events := &collector.MockEventsFetcher{Events: []model.DividendEvent{
		{Ticker: "X", ExDividendDate: utcDate(2024, 3, 13), RecordDate: utcDate(2024, 3, 14), CashAmount: 0.25},
		{Ticker: "X", ExDividendDate: utcDate(2023, 6, 14), RecordDate: utcDate(2023, 6, 15), CashAmount: 0.25},
	}}
	bars := &collector.MockBarsFetcher{
		FetchFunc: func(_ string, start, _ time.Time, _ string) ([]model.PriceBar, error) {
			if start.Year() == 2024 {
				// day -1 mean 100, day 0 mean 95 -> 0.95
				return append(dayBars(loc, 2024, 3, 12, 100), dayBars(loc, 2024, 3, 13, 95)...), nil
			}
			// day -1 mean 200, day 0 mean 180 -> 0.90
			return append(dayBars(loc, 2023, 6, 13, 200), dayBars(loc, 2023, 6, 14, 180)...), nil
		},
	}
	return events, bars
}

func newPipeline(t *testing.T, events collector.EventsFetcher, bars collector.BarsFetcher, n Notifier) *Pipeline {
	t.Helper()
	return New(events, collector.NewLoader(bars, "1Hour", 4), n, mustLoc(t))
}

func TestProcess_ProfitPredicted(t *testing.T) {
	events, bars := twoEventFixture(t)
	n := &mockNotifier{}
	p := newPipeline(t, events, bars, n)

	res, err := p.Process(context.Background(), `{"ticker":"X","yeild":0.10}`)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeProfit, res.Outcome)
	assert.Equal(t, 0.0875, res.Decision.Drop)
	assert.InDelta(t, 1.25, res.Decision.ExpectedProfit, 1e-9)
	assert.Equal(t, 2, res.EventsUsed)

	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0], "Potential Trade")
	assert.Contains(t, n.sent[0], `"ticker":"X"`)
}

func TestProcess_NegativeProfitNoNotification(t *testing.T) {
	events, bars := twoEventFixture(t)
	n := &mockNotifier{}
	p := newPipeline(t, events, bars, n)

	// Yield arrives as a string under the queue schema.
	res, err := p.Process(context.Background(), `{"ticker":"X","yeild":"0.05"}`)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNegativeProfit, res.Outcome)
	assert.Empty(t, n.sent)
}

func TestProcess_ZeroEventsIsInsufficientHistory(t *testing.T) {
	n := &mockNotifier{}
	p := newPipeline(t, &collector.MockEventsFetcher{}, &collector.MockBarsFetcher{}, n)

	res, err := p.Process(context.Background(), `{"ticker":"X","yeild":0.05}`)
	require.NoError(t, err, "insufficient history is a successful terminal outcome")
	assert.Equal(t, model.OutcomeInsufficientHistory, res.Outcome)
	assert.Empty(t, n.sent)
}

func TestProcess_EventsFetchFailureIsFatal(t *testing.T) {
	events := &collector.MockEventsFetcher{Err: &collector.UpstreamError{StatusCode: 500, Endpoint: "dividends", Body: "boom"}}
	p := newPipeline(t, events, &collector.MockBarsFetcher{}, &mockNotifier{})

	_, err := p.Process(context.Background(), `{"ticker":"X","yeild":0.05}`)
	require.Error(t, err)
	var upstream *collector.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestProcess_OneFailedEventStillEstimates(t *testing.T) {
	loc := mustLoc(t)
	events := &collector.MockEventsFetcher{Events: []model.DividendEvent{
		{Ticker: "X", ExDividendDate: utcDate(2024, 3, 13), RecordDate: utcDate(2024, 3, 14)},
		{Ticker: "X", ExDividendDate: utcDate(2023, 6, 14), RecordDate: utcDate(2023, 6, 15)},
	}}
	bars := &collector.MockBarsFetcher{
		FetchFunc: func(_ string, start, _ time.Time, _ string) ([]model.PriceBar, error) {
			if start.Year() == 2023 {
				return nil, &collector.UpstreamError{StatusCode: 500, Endpoint: "bars", Body: "boom"}
			}
			return append(dayBars(loc, 2024, 3, 12, 100), dayBars(loc, 2024, 3, 13, 95)...), nil
		},
	}
	n := &mockNotifier{}
	p := newPipeline(t, events, bars, n)

	res, err := p.Process(context.Background(), `{"ticker":"X","yeild":0.10}`)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeProfit, res.Outcome)
	assert.Equal(t, 0.05, res.Decision.Drop)
	assert.Equal(t, 1, res.EventsUsed)
	assert.Len(t, n.sent, 1)
}

func TestProcess_SeriesWithoutBaseDropped(t *testing.T) {
	loc := mustLoc(t)
	events := &collector.MockEventsFetcher{Events: []model.DividendEvent{
		{Ticker: "X", ExDividendDate: utcDate(2024, 3, 13), RecordDate: utcDate(2024, 3, 14)},
	}}
	// Only the ex-date day is present: offset 0 exists but offset -1 does
	// not, so the series cannot be rescaled.
	bars := &collector.MockBarsFetcher{Bars: dayBars(loc, 2024, 3, 13, 95)}
	n := &mockNotifier{}
	p := newPipeline(t, events, bars, n)

	res, err := p.Process(context.Background(), `{"ticker":"X","yeild":0.05}`)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeInsufficientHistory, res.Outcome)
	assert.Empty(t, n.sent)
}

func TestProcess_NotificationFailureIsNotFatal(t *testing.T) {
	events, bars := twoEventFixture(t)
	n := &mockNotifier{err: errors.New("sns unavailable")}
	p := newPipeline(t, events, bars, n)

	res, err := p.Process(context.Background(), `{"ticker":"X","yeild":0.10}`)
	require.NoError(t, err, "a failed publish must not fail the request")
	assert.Equal(t, model.OutcomeProfit, res.Outcome)
}

func TestProcess_MalformedBodyIsFatal(t *testing.T) {
	p := newPipeline(t, &collector.MockEventsFetcher{}, &collector.MockBarsFetcher{}, &mockNotifier{})
	_, err := p.Process(context.Background(), `{"ticker":`)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "parse job"))
}
