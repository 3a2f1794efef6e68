package collector

import (
	"context"
	"errors"
	"fmt"
	"time"

	"DivSentinel/internal/model"
)

// EventsFetcher retrieves the full dividend history for a ticker.
type EventsFetcher interface {
	FetchDividendEvents(ctx context.Context, ticker string) ([]model.DividendEvent, error)
	Name() string
}

// BarsFetcher retrieves intraday bars for a ticker over a bounded window.
type BarsFetcher interface {
	FetchBars(ctx context.Context, ticker string, start, end time.Time, timeframe string) ([]model.PriceBar, error)
	Name() string
}

// ErrFutureEndDate is returned when a bar request's end date lies in the
// future. Checked locally before any call is made.
var ErrFutureEndDate = errors.New("end date cannot be in the future")

// UpstreamError is a non-success HTTP status from an upstream API. For
// the dividends fetch it is fatal for the whole request; for a single
// event's bars fetch it only drops that event.
type UpstreamError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
