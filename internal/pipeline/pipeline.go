package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"DivSentinel/internal/calculator"
	"DivSentinel/internal/collector"
	"DivSentinel/internal/model"
	"DivSentinel/internal/notifier"
	"DivSentinel/internal/queue"
	"DivSentinel/internal/strategy"
)

// Notifier is the outbound alert channel the pipeline publishes to.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Result summarizes one processed request.
type Result struct {
	Request     model.AnalysisRequest
	Outcome     model.Outcome
	Decision    *strategy.Decision
	Stats       []model.OffsetStats
	EventsTotal int
	EventsUsed  int
}

// Pipeline runs the full analysis for one dequeued job: dividend history,
// per-event candle windows, normalization, cross-event aggregation,
// decision and notification. All state is scoped to one call.
type Pipeline struct {
	Events   collector.EventsFetcher
	Loader   *collector.Loader
	Notifier Notifier
	Loc      *time.Location
}

// New creates a Pipeline.
func New(events collector.EventsFetcher, loader *collector.Loader, n Notifier, loc *time.Location) *Pipeline {
	return &Pipeline{Events: events, Loader: loader, Notifier: n, Loc: loc}
}

// Process runs the pipeline on one job body. A non-nil error is fatal for
// the request: the caller must leave the job on the queue for redelivery.
// A nil error means the request reached a terminal outcome (including
// insufficient history) and the job can be acknowledged.
func (p *Pipeline) Process(ctx context.Context, body string) (*Result, error) {
	req, err := queue.ParseRequest(body)
	if err != nil {
		return nil, fmt.Errorf("parse job: %w", err)
	}

	events, err := p.Events.FetchDividendEvents(ctx, req.Ticker)
	if err != nil {
		return nil, fmt.Errorf("fetch dividend events for %s: %w", req.Ticker, err)
	}
	log.Printf("[INFO] %s: %d dividend events", req.Ticker, len(events))

	windows := p.Loader.CollectWindows(ctx, events)
	log.Printf("[INFO] %s: %d/%d candle windows loaded", req.Ticker, len(windows), len(events))

	rescaled := make([]model.NormalizedSeries, 0, len(windows))
	for _, ew := range windows {
		series, err := calculator.Normalize(ew.Event, ew.Window, p.Loc)
		if err != nil {
			log.Printf("[WARN] %s: skip event ex=%s: %v",
				req.Ticker, ew.Event.ExDividendDate.Format("2006-01-02"), err)
			continue
		}
		scaled, err := calculator.Rescale(series)
		if err != nil {
			log.Printf("[WARN] %s: skip event ex=%s: %v",
				req.Ticker, ew.Event.ExDividendDate.Format("2006-01-02"), err)
			continue
		}
		rescaled = append(rescaled, scaled)
	}

	result := &Result{Request: req, EventsTotal: len(events), EventsUsed: len(rescaled)}
	if len(rescaled) == 0 {
		log.Printf("[INFO] %s: insufficient history, no usable events", req.Ticker)
		result.Outcome = model.OutcomeInsufficientHistory
		return result, nil
	}

	stats := calculator.Aggregate(rescaled)
	drop, err := calculator.EstimateDrop(stats)
	if err != nil {
		log.Printf("[INFO] %s: insufficient history: %v", req.Ticker, err)
		result.Outcome = model.OutcomeInsufficientHistory
		return result, nil
	}

	dec := strategy.Evaluate(drop, float64(req.Yield))
	result.Decision = dec
	result.Stats = stats
	result.Outcome = dec.Outcome

	switch dec.Outcome {
	case model.OutcomeProfit:
		log.Printf("[INFO] %s: profit predicted, drop=%.4f yield=%.4f", req.Ticker, dec.Drop, dec.Yield)
		text := notifier.FormatTradeAlert(req, dec, stats)
		if err := p.Notifier.SendWithRetry(ctx, text, 3); err != nil {
			log.Printf("[ERROR] %s: send notification: %v", req.Ticker, err)
		}
	case model.OutcomeNegativeProfit:
		log.Printf("[INFO] %s: negative profit predicted, drop=%.4f yield=%.4f", req.Ticker, dec.Drop, dec.Yield)
	case model.OutcomeNoAction:
		log.Printf("[INFO] %s: drop equals yield at %.4f, no action", req.Ticker, dec.Drop)
	}
	return result, nil
}
