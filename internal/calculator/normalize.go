package calculator

import (
	"errors"
	"sort"
	"time"

	"DivSentinel/internal/model"
)

// ErrExDateNotFound is returned when the ex-dividend date does not appear
// among the trading days of the candle window. Such an event has no
// well-defined offset 0 and must be dropped from aggregation.
var ErrExDateNotFound = errors.New("ex-dividend date not present in candle window")

// ErrEmptyWindow is returned when the candle window holds no bars.
var ErrEmptyWindow = errors.New("candle window is empty")

type dailyRow struct {
	date string // YYYY-MM-DD in exchange-local time
	vw   float64
}

// Normalize converts one event's candle window into a daily-resolution
// series indexed by signed trading-day offset. Bars are grouped by
// exchange-local calendar date and averaged on their volume-weighted
// price; offset 0 is the row whose date equals the event's ex-dividend
// date, every other row's offset is its ordinal distance from that row.
// Pure and idempotent.
func Normalize(event model.DividendEvent, window model.CandleWindow, loc *time.Location) (model.NormalizedSeries, error) {
	if len(window) == 0 {
		return model.NormalizedSeries{}, ErrEmptyWindow
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, bar := range window {
		key := bar.Time.In(loc).Format("2006-01-02")
		sums[key] += bar.VW
		counts[key]++
	}

	rows := make([]dailyRow, 0, len(sums))
	for date, sum := range sums {
		rows = append(rows, dailyRow{date: date, vw: sum / float64(counts[date])})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].date < rows[j].date })

	exDate := event.ExDividendDate.Format("2006-01-02")
	refIdx := -1
	for i, row := range rows {
		if row.date == exDate {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return model.NormalizedSeries{}, ErrExDateNotFound
	}

	values := make(map[int]float64, len(rows))
	for i, row := range rows {
		values[i-refIdx] = row.vw
	}
	return model.NormalizedSeries{
		Ticker:     event.Ticker,
		RecordDate: event.RecordDate,
		Values:     values,
	}, nil
}
