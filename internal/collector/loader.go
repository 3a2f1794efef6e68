package collector

import (
	"context"
	"log"

	"DivSentinel/internal/calculator"
	"DivSentinel/internal/model"
)

// EventWindow pairs a dividend event with its successfully fetched candle
// window.
type EventWindow struct {
	Event  model.DividendEvent
	Window model.CandleWindow
}

// Loader fetches one candle window per dividend event.
type Loader struct {
	Bars       BarsFetcher
	Timeframe  string
	WindowDays int // half-width of the fetch window in business days
}

// NewLoader creates a Loader.
func NewLoader(bars BarsFetcher, timeframe string, windowDays int) *Loader {
	return &Loader{Bars: bars, Timeframe: timeframe, WindowDays: windowDays}
}

// CollectWindows requests bars for record_date +/- WindowDays business
// days around every event. A failed fetch (validation, upstream status,
// network) drops that one event and the loop continues; a single bad
// event never aborts the batch. Failed events are not retried here.
func (l *Loader) CollectWindows(ctx context.Context, events []model.DividendEvent) []EventWindow {
	loaded := make([]EventWindow, 0, len(events))
	for _, ev := range events {
		if ctx.Err() != nil {
			return loaded
		}
		start := calculator.AddBusinessDays(ev.RecordDate, -l.WindowDays)
		end := calculator.AddBusinessDays(ev.RecordDate, l.WindowDays)
		bars, err := l.Bars.FetchBars(ctx, ev.Ticker, start, end, l.Timeframe)
		if err != nil {
			log.Printf("[WARN] skip event %s ex=%s: %v",
				ev.Ticker, ev.ExDividendDate.Format("2006-01-02"), err)
			continue
		}
		loaded = append(loaded, EventWindow{Event: ev, Window: bars})
	}
	return loaded
}
